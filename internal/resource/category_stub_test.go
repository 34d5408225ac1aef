package resource

import (
	"context"
	"sync/atomic"

	"github.com/vk/respoolgo/internal/capability"
)

// stubCategory is the in-package test category. Ranking defaults to
// first-fit and both ranking and the custom-requirement hook can be swapped
// per test.
type stubCategory struct {
	name       string
	schema     capability.Schema
	mode       CapabilityMode
	cleanupErr error
	selectFn   func(candidates []Instance, reqs Requirements) Instance
	customFn   func(key string, required, actual any, caps map[string]any) (bool, error)
}

func newStubCategory(name string, schema capability.Schema) *stubCategory {
	return &stubCategory{name: name, schema: schema}
}

func (c *stubCategory) Name() string { return c.name }

func (c *stubCategory) CapabilitySchema() capability.Schema { return c.schema }

func (c *stubCategory) CreateInstance(_ context.Context, caps map[string]any) (Instance, error) {
	if err := ValidateCapabilities(c.name, c.schema, caps); err != nil {
		return nil, err
	}
	return &stubInstance{Base: NewBase(c, caps, c.mode), cleanupErr: c.cleanupErr}, nil
}

func (c *stubCategory) SelectBestCompatibleInstance(candidates []Instance, reqs Requirements) Instance {
	if c.selectFn != nil {
		return c.selectFn(candidates, reqs)
	}
	return FirstFit(candidates, reqs)
}

func (c *stubCategory) HandleCustomRequirement(key string, required, actual any, caps map[string]any) (bool, error) {
	if c.customFn != nil {
		return c.customFn(key, required, actual, caps)
	}
	return NoCustomRequirements{}.HandleCustomRequirement(key, required, actual, caps)
}

type stubInstance struct {
	*Base
	cleanups   atomic.Int32
	cleanupErr error
}

func (i *stubInstance) CanBeReclaimed() bool {
	_, locked := i.LockOwner()
	return !locked
}

func (i *stubInstance) Cleanup() error {
	i.cleanups.Add(1)
	return i.cleanupErr
}

// serializableStubCategory opts the stub into recipe support.
type serializableStubCategory struct {
	*stubCategory
}

func (c *serializableStubCategory) SerializeInstanceToRecipe(inst Instance) (*Recipe, error) {
	si, ok := inst.(*stubInstance)
	if !ok || si.Type().Name() != c.name {
		return nil, newTypeMismatchError("instance '%s' is not a '%s' instance", inst.ID(), c.name)
	}
	return NewRecipe(c.name, si.Capabilities()), nil
}

func (c *serializableStubCategory) DeserializeInstanceFromRecipe(ctx context.Context, r *Recipe) (Instance, error) {
	if err := r.CheckTypeName(c); err != nil {
		return nil, err
	}
	return c.CreateInstance(ctx, r.Capabilities)
}
