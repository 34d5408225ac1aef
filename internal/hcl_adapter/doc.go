// Package hcl_adapter is the HCL implementation of config.Loader. It parses
// category manifests and pool files, translates capability type expressions
// into schema kinds, and converts cty values into the native Go values the
// resource core matches on.
package hcl_adapter
