package resource

import (
	"context"
	"sort"
	"sync"

	"github.com/vk/respoolgo/internal/ctxlog"
)

// Manager is the process-wide registry of resource categories and the flat
// table of every tracked instance. All mutating operations are serialized by
// one mutex; candidate selection and lock acquisition happen under it as a
// single atomic step, so a chosen candidate cannot be stolen between pick
// and lock. The pick-then-try-lock shape is still preserved: a failed lock
// reports "none" rather than assuming availability.
type Manager struct {
	mu        sync.Mutex
	types     map[string]Type
	instances map[string]Instance
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		types:     make(map[string]Type),
		instances: make(map[string]Instance),
	}
}

// RegisterResourceType adds a category to the registry. Registration is an
// idempotent membership add keyed by the category name.
func (m *Manager) RegisterResourceType(t Type) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types[t.Name()] = t
}

// RegisteredResourceTypes returns the sorted names of all registered
// categories.
func (m *Manager) RegisteredResourceTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.types))
	for name := range m.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateResourceInstance delegates to the category's factory and tracks the
// result, returning the new instance id. Validation and construction
// failures propagate to the caller unmodified; the manager adds no
// translation layer here so diagnostic messages stay precise.
func (m *Manager) CreateResourceInstance(ctx context.Context, t Type, caps map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.types[t.Name()]; !ok {
		return "", newPreconditionError("resource type '%s' is not registered", t.Name())
	}

	inst, err := t.CreateInstance(ctx, caps)
	if err != nil {
		return "", err
	}

	m.instances[inst.ID()] = inst
	ctxlog.FromContext(ctx).Debug("Resource instance created.",
		"id", inst.ID(), "category", t.Name())
	return inst.ID(), nil
}

// DeleteResourceInstance tears an instance down and removes it from
// tracking. A locked instance is rejected unless forceUnlock is set, in
// which case the lock is force-cleared and the action logged at warning
// level as an explicit teardown escape hatch. Cleanup failures propagate as
// a CleanupError and leave the instance tracked, so the caller can decide
// what bookkeeping state it is in.
func (m *Manager) DeleteResourceInstance(ctx context.Context, id string, forceUnlock bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	logger := ctxlog.FromContext(ctx)

	inst, ok := m.instances[id]
	if !ok {
		return newPreconditionError("unknown resource instance '%s'", id)
	}

	if owner, locked := inst.LockOwner(); locked {
		if !forceUnlock {
			return newPreconditionError(
				"resource instance '%s' is locked by '%s'; deletion requires force_unlock", id, owner)
		}
		logger.Warn("Force-unlocking locked instance for deletion.",
			"id", id, "owner", owner)
		inst.ReleaseLock(owner)
	}

	if err := inst.Cleanup(); err != nil {
		return &CleanupError{InstanceID: id, Err: err}
	}

	delete(m.instances, id)
	logger.Debug("Resource instance deleted.", "id", id)
	return nil
}

// GetCompatibleResourceInstances scans all tracked instances, filtered by
// category identity, then by lock state unless includeLocked, then by
// requirement compatibility. Results are ordered by id for determinism.
func (m *Manager) GetCompatibleResourceInstances(ctx context.Context, t Type, reqs Requirements, includeLocked bool) ([]Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.compatibleLocked(t, reqs, includeLocked)
}

// compatibleLocked is the scan behind queries and acquisition. Callers hold
// m.mu.
func (m *Manager) compatibleLocked(t Type, reqs Requirements, includeLocked bool) ([]Instance, error) {
	var out []Instance
	for _, inst := range m.instances {
		if inst.Type().Name() != t.Name() {
			continue
		}
		if _, locked := inst.LockOwner(); locked && !includeLocked {
			continue
		}
		ok, err := inst.IsCompatibleWith(reqs)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, inst)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// AcquireResourceInstanceLock computes the unlocked, compatible candidate
// set, lets the category's ranking policy choose one, and attempts to lock
// exactly that candidate for the owner. It returns the empty id when no
// candidate existed or the chosen one could not be locked; there is no
// retry loop, the caller must re-invoke if it wants another attempt.
func (m *Manager) AcquireResourceInstanceLock(ctx context.Context, owner string, t Type, reqs Requirements) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	logger := ctxlog.FromContext(ctx)

	candidates, err := m.compatibleLocked(t, reqs, false)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		logger.Info("No compatible unlocked instance available.",
			"category", t.Name(), "owner", owner)
		return "", nil
	}

	chosen := t.SelectBestCompatibleInstance(candidates, reqs)
	if chosen == nil || !chosen.AcquireLock(owner) {
		logger.Info("Chosen instance could not be locked.",
			"category", t.Name(), "owner", owner)
		return "", nil
	}

	logger.Debug("Resource instance locked.",
		"id", chosen.ID(), "owner", owner)
	return chosen.ID(), nil
}

// ReleaseResourceInstanceLock releases an instance's lock on behalf of
// owner. An unknown id or a release by a non-holder is a
// PreconditionError; a wrong-owner release leaves the lock untouched.
func (m *Manager) ReleaseResourceInstanceLock(ctx context.Context, id, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.instances[id]
	if !ok {
		return newPreconditionError("unknown resource instance '%s'", id)
	}

	if !inst.ReleaseLock(owner) {
		holder, locked := inst.LockOwner()
		if !locked {
			return newPreconditionError("resource instance '%s' is not locked", id)
		}
		return newPreconditionError(
			"resource instance '%s' is locked by '%s', not '%s'", id, holder, owner)
	}

	ctxlog.FromContext(ctx).Debug("Resource instance lock released.",
		"id", id, "owner", owner)
	return nil
}

// InstanceStatus is a point-in-time snapshot of one tracked instance, safe
// to hand out: the capability map is cloned and nothing references live
// bookkeeping.
type InstanceStatus struct {
	ID           string         `json:"id"`
	Category     string         `json:"category"`
	Capabilities map[string]any `json:"capabilities"`
	Locked       bool           `json:"locked"`
	LockedBy     string         `json:"locked_by,omitempty"`
	Reclaimable  bool           `json:"reclaimable"`
	Serializable bool           `json:"serializable"`
}

// GetResourceInstanceStatus returns a snapshot of one instance, or false if
// the id is unknown.
func (m *Manager) GetResourceInstanceStatus(id string) (InstanceStatus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.instances[id]
	if !ok {
		return InstanceStatus{}, false
	}
	return snapshot(inst), true
}

// GetResourceInstances returns snapshots of every tracked instance, ordered
// by id.
func (m *Manager) GetResourceInstances() []InstanceStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]InstanceStatus, 0, len(m.instances))
	for _, inst := range m.instances {
		out = append(out, snapshot(inst))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// cloneCapabilities deep-copies a capability bag so status snapshots never
// alias live instance state, even through nested lists and maps.
func cloneCapabilities(caps map[string]any) map[string]any {
	if caps == nil {
		return nil
	}
	out := make(map[string]any, len(caps))
	for k, v := range caps {
		out[k] = cloneCapabilityValue(v)
	}
	return out
}

func cloneCapabilityValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneCapabilities(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneCapabilityValue(e)
		}
		return out
	}
	return v
}

func snapshot(inst Instance) InstanceStatus {
	owner, locked := inst.LockOwner()
	return InstanceStatus{
		ID:           inst.ID(),
		Category:     inst.Type().Name(),
		Capabilities: cloneCapabilities(inst.Capabilities()),
		Locked:       locked,
		LockedBy:     owner,
		Reclaimable:  inst.CanBeReclaimed(),
		Serializable: SupportsSerialization(inst.Type()),
	}
}
