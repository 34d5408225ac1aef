package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequirements_BareValueImpliesEquality(t *testing.T) {
	reqs, err := NewRequirements(map[string]any{"pool": "default"})
	require.NoError(t, err)

	assert.Equal(t, Requirement{Value: "default", Comparator: Equals}, reqs["pool"])
}

func TestNewRequirements_PairResolvesComparator(t *testing.T) {
	reqs, err := NewRequirements(map[string]any{
		"capacity": []any{16.0, "greater_than_or_equal"},
	})
	require.NoError(t, err)

	assert.Equal(t, Requirement{Value: 16.0, Comparator: GreaterThanOrEqual}, reqs["capacity"])
}

func TestNewRequirements_UnknownComparatorFailsBeforeMatching(t *testing.T) {
	_, err := NewRequirements(map[string]any{
		"capacity": []any{16.0, "at_least"},
	})

	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Contains(t, pre.Error(), "at_least")
}

func TestNewRequirements_NonPairSliceIsEqualityValue(t *testing.T) {
	reqs, err := NewRequirements(map[string]any{
		"tags": []any{"a", "b", "c"},
	})
	require.NoError(t, err)

	assert.Equal(t, Equal([]any{"a", "b", "c"}), reqs["tags"])
}

func TestNewRequirements_ExplicitRequirementPassesThrough(t *testing.T) {
	reqs, err := NewRequirements(map[string]any{
		"gpu": Requirement{Value: nil, Comparator: NotPresent},
	})
	require.NoError(t, err)

	assert.Equal(t, NotPresent, reqs["gpu"].Comparator)
}

func TestNewRequirements_Nil(t *testing.T) {
	reqs, err := NewRequirements(nil)
	require.NoError(t, err)
	assert.Nil(t, reqs)
}
