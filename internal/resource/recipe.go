package resource

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Recipe is the plain-data snapshot of one instance: enough to reconstruct
// a behaviorally-equivalent instance when the live object cannot be copied
// or serialized by general means. Only categories implementing
// RecipeSupport produce or consume recipes.
type Recipe struct {
	ResourceTypeName string         `json:"resource_type_name"`
	Capabilities     map[string]any `json:"capabilities"`
}

// NewRecipe snapshots the given capability map for a category.
func NewRecipe(categoryName string, caps map[string]any) *Recipe {
	return &Recipe{
		ResourceTypeName: categoryName,
		Capabilities:     maps.Clone(caps),
	}
}

// CheckTypeName verifies that the recipe belongs to the given category.
// Deserializers call this before constructing anything.
func (r *Recipe) CheckTypeName(t Type) error {
	if r.ResourceTypeName != t.Name() {
		return newPreconditionError(
			"recipe is for category '%s', not '%s'", r.ResourceTypeName, t.Name())
	}
	return nil
}

// Encode renders the recipe in its wire format.
func (r *Recipe) Encode() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode recipe for '%s': %w", r.ResourceTypeName, err)
	}
	return data, nil
}

// ParseRecipe decodes a wire-format recipe.
func ParseRecipe(data []byte) (*Recipe, error) {
	var r Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse recipe: %w", err)
	}
	return &r, nil
}
