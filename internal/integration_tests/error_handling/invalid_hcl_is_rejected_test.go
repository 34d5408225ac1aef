package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/respoolgo/internal/testutil"
	"github.com/vk/respoolgo/modules/slot"
)

// TestErrorHandling_InvalidHCL_IsRejected validates that a syntax error in a
// pool file aborts startup before anything is provisioned.
func TestErrorHandling_InvalidHCL_IsRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A clear syntax error: the capabilities object is never closed.
	invalidHCL := `
		instance "slot" "broken" {
			capabilities = {
				capacity = 8
	`
	files := map[string]string{
		"pool/main.hcl": invalidHCL,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, &slot.Module{})

	// --- Assert ---
	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "application startup panicked")
	require.Contains(t, result.Err.Error(), "failed to load configuration")
	require.Nil(t, result.App, "no app should be built from a broken pool file")
}
