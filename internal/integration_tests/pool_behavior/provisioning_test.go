package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/respoolgo/internal/testutil"
	"github.com/vk/respoolgo/modules/slot"
)

// TestPoolBehavior_Provisioning_DeclaredInstancesAreCreated validates that
// every instance block in the pool file becomes a tracked, unlocked instance
// of its declared category.
func TestPoolBehavior_Provisioning_DeclaredInstancesAreCreated(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	manifestHCL := `
		category "slot" {
			capability "capacity" {
				type     = number
				required = true
			}
			capability "pool" {
				type = string
			}
			capability "tags" {
				type = list
			}
		}
	`
	poolHCL := `
		instance "slot" "small" {
			capabilities = {
				capacity = 8
				pool     = "batch"
			}
		}
		instance "slot" "large" {
			capabilities = {
				capacity = 32
				tags     = ["gpu", "fast"]
			}
		}
	`
	files := map[string]string{
		"modules/slot/manifest.hcl": manifestHCL,
		"pool/main.hcl":             poolHCL,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, &slot.Module{})

	// --- Assert ---
	require.NoError(t, result.Err, "app.Run() returned an unexpected error")
	require.Contains(t, result.LogOutput, "Provisioned resource instance.")
	require.Contains(t, result.LogOutput, "🚀 Pool provisioned.")

	statuses := result.App.Manager().GetResourceInstances()
	require.Len(t, statuses, 2)

	for _, st := range statuses {
		require.Equal(t, "slot", st.Category)
		require.False(t, st.Locked)
		require.Empty(t, st.LockedBy)
	}

	capacities := map[float64]bool{}
	for _, st := range statuses {
		capVal, ok := st.Capabilities["capacity"].(float64)
		require.True(t, ok, "capacity should survive as a number")
		capacities[capVal] = true
	}
	require.True(t, capacities[8], "small slot missing")
	require.True(t, capacities[32], "large slot missing")
}
