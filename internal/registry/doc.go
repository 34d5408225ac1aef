// Package registry wires the two halves of a resource category together:
// the Go implementation registered by a module and the HCL manifest that
// declares its capability schema. Startup validation enforces strict parity
// between the two, so a drifting manifest is caught before any instance is
// provisioned.
package registry
