// Package resource implements the allocation and locking pool: a process-wide
// registry of resource categories (Type), a flat table of allocatable,
// lockable units (Instance), and a small declarative matching language
// (Requirements) used to pick a compatible instance for an opaque owner.
//
// Locking is cooperative bookkeeping over owner tokens, never an OS
// primitive, and no operation blocks or queues: a caller that loses the race
// for an instance gets "none" back and must decide for itself whether to
// retry. The Manager and every Base instance still guard their own fields
// with mutexes so genuinely concurrent callers are safe.
package resource
