package gate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/respoolgo/internal/resource"
)

func TestCreateInstance_ExposesLiveCapabilities(t *testing.T) {
	caps := map[string]any{"name": "g0"}
	inst, err := New().CreateInstance(context.Background(), caps)
	require.NoError(t, err)

	caps["name"] = "renamed"
	assert.Equal(t, "renamed", inst.Capabilities()["name"],
		"gate skips capability isolation on purpose")
}

func TestCreateInstance_ValidatesFirst(t *testing.T) {
	_, err := New().CreateInstance(context.Background(), map[string]any{"shared": "yes"})

	var vErr *resource.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Violations, 2)
}

func TestHandle_IsUsableAndSurvivesLockCycles(t *testing.T) {
	inst, err := New().CreateInstance(context.Background(), map[string]any{"name": "g0"})
	require.NoError(t, err)
	gi := inst.(*GateInstance)

	require.NotNil(t, gi.Handle())
	gi.Handle().Lock()
	gi.Handle().Unlock()

	require.True(t, inst.AcquireLock("job1"))
	assert.Same(t, gi.Handle(), gi.Handle(), "pool lock state never swaps the handle")
	require.True(t, inst.ReleaseLock("job1"))
}

func TestGate_DoesNotSupportSerialization(t *testing.T) {
	assert.False(t, resource.SupportsSerialization(New()))
}

func TestCleanup_DropsHandle(t *testing.T) {
	inst, err := New().CreateInstance(context.Background(), map[string]any{"name": "g0"})
	require.NoError(t, err)
	gi := inst.(*GateInstance)

	require.NoError(t, gi.Cleanup())
	assert.Nil(t, gi.handle)
}

func TestGate_RejectsCustomRequirements(t *testing.T) {
	inst, err := New().CreateInstance(context.Background(), map[string]any{"name": "g0"})
	require.NoError(t, err)

	_, err = inst.IsCompatibleWith(resource.Requirements{
		"name": {Value: "g0", Comparator: resource.Custom},
	})

	var pre *resource.PreconditionError
	require.ErrorAs(t, err, &pre)
}
