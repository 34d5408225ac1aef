package resource

import (
	"maps"
	"sync"

	"github.com/vk/respoolgo/internal/instanceid"
)

// CapabilityMode controls whether an instance owns a private copy of the
// capability map it was constructed with, or exposes the caller's map as a
// live view.
type CapabilityMode int

const (
	// CopyCapabilities isolates the instance from later mutation of the
	// caller's map. This is the default for every category whose values are
	// plain data.
	CopyCapabilities CapabilityMode = iota

	// LiveCapabilities skips isolation. Reserved for categories whose
	// payload cannot be copied, such as one wrapping a native
	// synchronization handle; a documented exception, not a defect.
	LiveCapabilities
)

// Instance is one allocatable, lockable unit of a resource category.
type Instance interface {
	// ID returns the process-unique instance id, `{category}_{hex}`.
	ID() string

	// Type returns the owning category descriptor.
	Type() Type

	// Capabilities returns the instance's capability values. Depending on
	// the category's CapabilityMode this is a private copy or a live view.
	Capabilities() map[string]any

	// AcquireLock takes the lock for owner iff the instance is currently
	// unlocked. It never blocks.
	AcquireLock(owner string) bool

	// ReleaseLock clears the lock iff owner is the current holder;
	// otherwise it returns false and the lock is left untouched.
	ReleaseLock(owner string) bool

	// LockOwner reports the current holder, if any.
	LockOwner() (owner string, locked bool)

	// IsCompatibleWith evaluates the requirement map against the
	// instance's capabilities. A nil map is vacuously compatible.
	// Container comparators against textual operands and ordering
	// comparators across unordered kinds fail loudly with a
	// TypeMismatchError rather than silently mismatching.
	IsCompatibleWith(reqs Requirements) (bool, error)

	// CanBeReclaimed reports whether the category considers the instance
	// safe to tear down right now.
	CanBeReclaimed() bool

	// Cleanup releases whatever the instance holds. The manager invokes it
	// exactly once per instance, during deletion, and never swallows its
	// failures.
	Cleanup() error
}

// Base carries the id, capability map, and lock bookkeeping shared by every
// category's instances. Concrete instance types embed *Base and add
// CanBeReclaimed and Cleanup.
type Base struct {
	id    string
	rtype Type
	caps  map[string]any

	mu     sync.Mutex
	owner  string
	locked bool
}

// NewBase constructs the shared instance core with a freshly minted id. In
// CopyCapabilities mode the supplied map is cloned, so later external
// mutation of the caller's map cannot corrupt instance state.
func NewBase(t Type, caps map[string]any, mode CapabilityMode) *Base {
	if mode == CopyCapabilities {
		caps = maps.Clone(caps)
		if caps == nil {
			caps = map[string]any{}
		}
	}
	return &Base{
		id:    instanceid.New(t.Name()),
		rtype: t,
		caps:  caps,
	}
}

func (b *Base) ID() string { return b.id }

func (b *Base) Type() Type { return b.rtype }

func (b *Base) Capabilities() map[string]any { return b.caps }

// AcquireLock takes the lock iff it is free. Ownership is a cooperative
// token compared for equality, not an OS mutex; the internal mutex only
// makes the check-and-set atomic for concurrent callers.
func (b *Base) AcquireLock(owner string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.locked {
		return false
	}
	b.owner = owner
	b.locked = true
	return true
}

// ReleaseLock clears the lock iff owner currently holds it.
func (b *Base) ReleaseLock(owner string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.locked || b.owner != owner {
		return false
	}
	b.owner = ""
	b.locked = false
	return true
}

// LockOwner reports the current holder, if any.
func (b *Base) LockOwner() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.owner, b.locked
}

// IsCompatibleWith runs the comparator dispatch of compare.go over every
// requirement. A single failing key short-circuits the result to false.
func (b *Base) IsCompatibleWith(reqs Requirements) (bool, error) {
	if reqs == nil {
		return true, nil
	}
	for key, req := range reqs {
		ok, err := matchRequirement(b.rtype, b.caps, key, req)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
