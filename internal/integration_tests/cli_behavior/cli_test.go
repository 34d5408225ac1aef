package integration_tests

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/respoolgo/internal/cli"
)

// TestCLI_PoolPathSources validates the precedence of the three ways to name
// the pool path: -pool beats -p, which beats the positional argument.
func TestCLI_PoolPathSources(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "long flag", args: []string{"-pool", "a.hcl"}, expected: "a.hcl"},
		{name: "short flag", args: []string{"-p", "b.hcl"}, expected: "b.hcl"},
		{name: "positional", args: []string{"c.hcl"}, expected: "c.hcl"},
		{name: "long flag wins over short", args: []string{"-pool", "a.hcl", "-p", "b.hcl"}, expected: "a.hcl"},
		{name: "short flag wins over positional", args: []string{"-p", "b.hcl", "c.hcl"}, expected: "b.hcl"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			cfg, shouldExit, err := cli.Parse(tc.args, &out)
			require.NoError(t, err)
			require.False(t, shouldExit)
			require.Equal(t, tc.expected, cfg.PoolPath)
		})
	}
}

// TestCLI_Defaults validates the default values applied when only the pool
// path is given.
func TestCLI_Defaults(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := cli.Parse([]string{"pool.hcl"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "modules", cfg.ModulesPath)
	require.Zero(t, cfg.StatusPort)
}

// TestCLI_NoArguments_PrintsUsage validates that a bare invocation prints
// usage and asks for a clean exit instead of erroring.
func TestCLI_NoArguments_PrintsUsage(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := cli.Parse(nil, &out)
	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "Usage:")
	require.Contains(t, out.String(), "POOL_PATH")
}

// TestCLI_InvalidValues_AreRejected validates that bad enum-style flag values
// come back as ExitError with a usage exit code.
func TestCLI_InvalidValues_AreRejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
	}{
		{name: "bad log format", args: []string{"-log-format", "xml", "pool.hcl"}},
		{name: "bad log level", args: []string{"-log-level", "loud", "pool.hcl"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			_, _, err := cli.Parse(tc.args, &out)
			var exitErr *cli.ExitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, 2, exitErr.Code)
		})
	}
}

// TestCLI_AllFlags_PopulateConfig validates the full flag surface in one
// invocation.
func TestCLI_AllFlags_PopulateConfig(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := cli.Parse([]string{
		"-pool", "prod/pool",
		"-modules-path", "prod/modules",
		"-status-port", "8475",
		"-log-format", "text",
		"-log-level", "debug",
	}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	require.Equal(t, "prod/pool", cfg.PoolPath)
	require.Equal(t, "prod/modules", cfg.ModulesPath)
	require.Equal(t, 8475, cfg.StatusPort)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, "debug", cfg.LogLevel)
}
