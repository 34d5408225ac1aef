// Package slot implements the "slot" resource category: counted scheduling
// slots whose capability values are plain data. Allocation is best-fit (the
// smallest qualifying capacity wins), and slots support recipe
// serialization.
package slot

import (
	"context"

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

// Category is the slot category descriptor and factory.
type Category struct{}

// New creates the category. One value exists per process, registered once.
func New() *Category {
	return &Category{}
}

func (c *Category) Name() string { return "slot" }

func (c *Category) CapabilitySchema() capability.Schema {
	return capability.Schema{
		{Name: "capacity", Kind: capability.KindNumber, Description: "How many units this slot can hold.", Required: true},
		{Name: "pool", Kind: capability.KindString, Description: "Logical pool the slot belongs to."},
		{Name: "tags", Kind: capability.KindList, Description: "Free-form labels for requirement matching."},
	}
}

// CreateInstance validates the supplied capabilities against the schema and
// builds a new, unlocked slot with a private copy of the values.
func (c *Category) CreateInstance(_ context.Context, caps map[string]any) (resource.Instance, error) {
	if err := resource.ValidateCapabilities(c.Name(), c.CapabilitySchema(), caps); err != nil {
		return nil, err
	}
	return &SlotInstance{Base: resource.NewBase(c, caps, resource.CopyCapabilities)}, nil
}

// SelectBestCompatibleInstance is best-fit: the candidate with the smallest
// capacity still wins, keeping large slots free for large requests.
func (c *Category) SelectBestCompatibleInstance(candidates []resource.Instance, _ resource.Requirements) resource.Instance {
	var best resource.Instance
	bestCap := 0.0
	for _, cand := range candidates {
		capVal, ok := capability.AsNumber(cand.Capabilities()["capacity"])
		if !ok {
			continue
		}
		if best == nil || capVal < bestCap {
			best = cand
			bestCap = capVal
		}
	}
	return best
}

// HandleCustomRequirement implements one custom matcher: a [low, high] pair
// that checks a numeric capability against an inclusive range.
func (c *Category) HandleCustomRequirement(key string, required, actual any, _ map[string]any) (bool, error) {
	bounds, ok := required.([]any)
	if !ok || len(bounds) != 2 {
		return false, &resource.TypeMismatchError{
			Msg: "custom requirement '" + key + "': required value must be a [low, high] pair",
		}
	}
	lo, loOK := capability.AsNumber(bounds[0])
	hi, hiOK := capability.AsNumber(bounds[1])
	val, valOK := capability.AsNumber(actual)
	if !loOK || !hiOK || !valOK {
		return false, &resource.TypeMismatchError{
			Msg: "custom requirement '" + key + "': range matching needs numeric operands",
		}
	}
	return val >= lo && val <= hi, nil
}

// SerializeInstanceToRecipe snapshots a slot's capability values.
func (c *Category) SerializeInstanceToRecipe(inst resource.Instance) (*resource.Recipe, error) {
	si, ok := inst.(*SlotInstance)
	if !ok {
		return nil, &resource.TypeMismatchError{
			Msg: "instance '" + inst.ID() + "' is not a slot instance",
		}
	}
	return resource.NewRecipe(c.Name(), si.Capabilities()), nil
}

// DeserializeInstanceFromRecipe rebuilds a slot from a recipe, delegating
// to CreateInstance so schema validation applies to restoration too.
func (c *Category) DeserializeInstanceFromRecipe(ctx context.Context, r *resource.Recipe) (resource.Instance, error) {
	if err := r.CheckTypeName(c); err != nil {
		return nil, err
	}
	return c.CreateInstance(ctx, r.Capabilities)
}

// SlotInstance is one allocatable slot.
type SlotInstance struct {
	*resource.Base
}

// CanBeReclaimed reports whether the slot is free to tear down.
func (i *SlotInstance) CanBeReclaimed() bool {
	_, locked := i.LockOwner()
	return !locked
}

// Cleanup releases nothing; a slot holds no external state.
func (i *SlotInstance) Cleanup() error { return nil }
