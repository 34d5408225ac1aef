// Package gate implements the "gate" resource category: each instance wraps
// a native sync.Mutex handle shared with whoever created it. Because the
// handle cannot be copied, gate instances deliberately skip the default
// capability isolation and expose live values instead; this is the
// documented exception to copy-on-construction, not a defect. Gates do not
// support recipe serialization for the same reason.
package gate

import (
	"context"
	"sync"

	"github.com/vk/respoolgo/internal/capability"
	"github.com/vk/respoolgo/internal/registry"
	"github.com/vk/respoolgo/internal/resource"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the category with the application registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCategory(New())
}

// Category is the gate category descriptor and factory.
type Category struct {
	resource.NoCustomRequirements
}

// New creates the category.
func New() *Category {
	return &Category{}
}

func (c *Category) Name() string { return "gate" }

func (c *Category) CapabilitySchema() capability.Schema {
	return capability.Schema{
		{Name: "name", Kind: capability.KindString, Description: "Human-readable gate name.", Required: true},
		{Name: "shared", Kind: capability.KindBool, Description: "Whether the underlying handle is shared with the creator."},
	}
}

// CreateInstance validates the capabilities, allocates a fresh mutex handle,
// and exposes the caller's capability map as a live view.
func (c *Category) CreateInstance(_ context.Context, caps map[string]any) (resource.Instance, error) {
	if err := resource.ValidateCapabilities(c.Name(), c.CapabilitySchema(), caps); err != nil {
		return nil, err
	}
	return &GateInstance{
		Base:   resource.NewBase(c, caps, resource.LiveCapabilities),
		handle: &sync.Mutex{},
	}, nil
}

// SelectBestCompatibleInstance is first-fit; one free gate is as good as
// another.
func (c *Category) SelectBestCompatibleInstance(candidates []resource.Instance, reqs resource.Requirements) resource.Instance {
	return resource.FirstFit(candidates, reqs)
}

// GateInstance is one allocatable gate around a native mutex.
type GateInstance struct {
	*resource.Base
	handle *sync.Mutex
}

// Handle returns the wrapped native synchronization handle.
func (i *GateInstance) Handle() *sync.Mutex { return i.handle }

// CanBeReclaimed reports whether no owner holds the gate.
func (i *GateInstance) CanBeReclaimed() bool {
	_, locked := i.LockOwner()
	return !locked
}

// Cleanup drops the handle reference. Anyone still blocked on the mutex
// keeps their own reference; the pool simply stops tracking it.
func (i *GateInstance) Cleanup() error {
	i.handle = nil
	return nil
}
