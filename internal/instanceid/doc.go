// Package instanceid generates and parses the identifiers assigned to
// resource instances. An id has the canonical form `{prefix}_{hex}`, where
// the prefix is the owning category name and the hex part is random and
// unique for the process lifetime.
package instanceid
