package resource

import (
	"context"

	"github.com/vk/respoolgo/internal/capability"
)

// Type is the category-level contract: factory, schema, and allocation
// policy shared by every instance of one resource category. Exactly one
// value of each concrete Type exists per process, registered with the
// Manager once; the registered name is the category's identity.
type Type interface {
	// Name is the category's registered identity and the id prefix of its
	// instances.
	Name() string

	// CapabilitySchema returns the ordered capability field list. Pure
	// metadata.
	CapabilitySchema() capability.Schema

	// CreateInstance builds a new, unlocked instance with a fresh id. The
	// supplied capability map is validated against the schema first; a
	// failure is a single ValidationError aggregating every violation,
	// raised before anything is constructed.
	CreateInstance(ctx context.Context, caps map[string]any) (Instance, error)

	// SelectBestCompatibleInstance ranks the already-filtered candidate
	// set and picks one, or nil for none. Ranking policy is
	// category-specific; the manager imposes no ordering of its own.
	SelectBestCompatibleInstance(candidates []Instance, reqs Requirements) Instance

	// HandleCustomRequirement is invoked only for the Custom comparator:
	// the escape hatch for matching logic the fixed operator set cannot
	// express.
	HandleCustomRequirement(key string, required, actual any, caps map[string]any) (bool, error)
}

// RecipeSupport is implemented by categories whose instances can be
// snapshotted into plain-data recipes and reconstructed later. Categories
// without it simply do not support serialization.
type RecipeSupport interface {
	// SerializeInstanceToRecipe snapshots an instance's capability values.
	// An instance of a foreign concrete kind is a TypeMismatchError.
	SerializeInstanceToRecipe(inst Instance) (*Recipe, error)

	// DeserializeInstanceFromRecipe rebuilds a behaviorally-equivalent
	// instance. The recipe's category name is checked first
	// (PreconditionError on mismatch); construction itself is delegated to
	// CreateInstance so schema validation applies to restoration exactly
	// as it does to fresh creation.
	DeserializeInstanceFromRecipe(ctx context.Context, r *Recipe) (Instance, error)
}

// SupportsSerialization reports whether a category opted into recipe
// support.
func SupportsSerialization(t Type) bool {
	_, ok := t.(RecipeSupport)
	return ok
}

// ValidateCapabilities runs the schema validator and wraps a non-empty
// report into a ValidationError for the named category. Categories call
// this at the top of CreateInstance.
func ValidateCapabilities(category string, s capability.Schema, caps map[string]any) error {
	if violations := capability.Validate(s, caps); len(violations) > 0 {
		return &ValidationError{Category: category, Violations: violations}
	}
	return nil
}

// FirstFit is the trivial ranking policy: the first candidate wins. Handy
// for categories where any compatible instance is as good as another.
func FirstFit(candidates []Instance, _ Requirements) Instance {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0]
}

// NoCustomRequirements is embedded by categories that opt out of the Custom
// comparator.
type NoCustomRequirements struct{}

// HandleCustomRequirement rejects every custom requirement.
func (NoCustomRequirements) HandleCustomRequirement(key string, _, _ any, _ map[string]any) (bool, error) {
	return false, newPreconditionError("requirement '%s': category does not support custom requirements", key)
}
