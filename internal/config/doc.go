// Package config defines the unified, format-agnostic model of the
// application's declarative input: category manifests (capability schemas)
// and pool files (instances to provision), plus the Loader interface a
// format-specific adapter implements.
package config
