// Package testutil provides the shared harness for integration tests: it
// materializes HCL fixtures into a temp directory, boots the app with an
// isolated logger, and captures panics and log output for assertions.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/respoolgo/internal/app"
	"github.com/vk/respoolgo/internal/hcl_adapter"
	"github.com/vk/respoolgo/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// RunIntegrationTest provides a standardized harness for running integration
// tests using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, modules...)
}

// RunIntegrationTestWithContext provides a standardized harness for running
// integration tests with a specific context provided by the caller.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	// 1. Create a temporary root directory for the test.
	tmpDir, err := os.MkdirTemp("", ".tmp-integration-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	poolDir := filepath.Join(tmpDir, "pool")
	modulesDir := filepath.Join(tmpDir, "modules")
	require.NoError(t, os.Mkdir(poolDir, 0755))
	require.NoError(t, os.Mkdir(modulesDir, 0755))

	// 2. Write all HCL files to the temporary directory. The test provides
	//    relative paths (e.g. "modules/slot/manifest.hcl"), which naturally
	//    creates the subdirectory structure within tmpDir.
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		dir := filepath.Dir(filePath)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	// 3. Configure the app to use the dedicated, non-overlapping
	//    subdirectories.
	appConfig := &app.Config{
		PoolPath:    poolDir,
		ModulesPath: modulesDir,
		LogLevel:    "debug",
		LogFormat:   "text",
	}

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, hcl_adapter.NewLoader(), modules...)
	}()

	result := &HarnessResult{App: testApp}
	if panicErr != nil {
		result.Err = fmt.Errorf("application startup panicked: %v", panicErr)
		result.LogOutput = logBuffer.String()
		return result
	}

	result.Err = testApp.Run(ctx, appConfig)
	result.LogOutput = logBuffer.String()
	return result
}
