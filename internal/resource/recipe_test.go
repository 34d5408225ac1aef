package resource

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSerializableSlot() *serializableStubCategory {
	return &serializableStubCategory{stubCategory: newStubCategory("slot", slotSchema)}
}

func TestSupportsSerialization(t *testing.T) {
	assert.False(t, SupportsSerialization(newStubCategory("slot", slotSchema)))
	assert.True(t, SupportsSerialization(newSerializableSlot()))
}

func TestRecipe_RoundTrip(t *testing.T) {
	cat := newSerializableSlot()
	ctx := context.Background()

	original, err := cat.CreateInstance(ctx, map[string]any{"capacity": 24.0, "pool": "default"})
	require.NoError(t, err)

	recipe, err := cat.SerializeInstanceToRecipe(original)
	require.NoError(t, err)

	// The recipe survives its wire format.
	data, err := recipe.Encode()
	require.NoError(t, err)
	parsed, err := ParseRecipe(data)
	require.NoError(t, err)

	restored, err := cat.DeserializeInstanceFromRecipe(ctx, parsed)
	require.NoError(t, err)

	assert.Equal(t, original.Capabilities(), restored.Capabilities())
	assert.NotEqual(t, original.ID(), restored.ID(), "a restored instance is a new instance")
}

func TestRecipe_WireFormat(t *testing.T) {
	recipe := NewRecipe("slot", map[string]any{"capacity": 24.0})

	data, err := recipe.Encode()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "slot", decoded["resource_type_name"])
	assert.Equal(t, map[string]any{"capacity": 24.0}, decoded["capabilities"])
}

func TestRecipe_SnapshotIsIsolated(t *testing.T) {
	caps := map[string]any{"capacity": 24.0}
	recipe := NewRecipe("slot", caps)

	caps["capacity"] = 1.0
	assert.Equal(t, 24.0, recipe.Capabilities["capacity"])
}

func TestRecipe_DeserializeCategoryMismatchFailsFirst(t *testing.T) {
	cat := newSerializableSlot()

	_, err := cat.DeserializeInstanceFromRecipe(context.Background(), &Recipe{
		ResourceTypeName: "gate",
		Capabilities:     map[string]any{},
	})

	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Contains(t, pre.Error(), "gate")
	assert.Contains(t, pre.Error(), "slot")
}

func TestRecipe_SerializeForeignInstance(t *testing.T) {
	slotCat := newSerializableSlot()
	gateCat := newStubCategory("gate", slotSchema)

	foreign, err := gateCat.CreateInstance(context.Background(), map[string]any{"capacity": 1.0})
	require.NoError(t, err)

	_, err = slotCat.SerializeInstanceToRecipe(foreign)

	var tm *TypeMismatchError
	require.ErrorAs(t, err, &tm)
}

func TestRecipe_DeserializeValidatesLikeCreate(t *testing.T) {
	cat := newSerializableSlot()

	_, err := cat.DeserializeInstanceFromRecipe(context.Background(), &Recipe{
		ResourceTypeName: "slot",
		Capabilities:     map[string]any{"pool": 42},
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr, "restoration delegates to CreateInstance, so schema validation applies")
	assert.Len(t, vErr.Violations, 2)
}
