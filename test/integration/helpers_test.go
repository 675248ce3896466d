//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/outline-labs/opc/internal/command"
	"github.com/outline-labs/opc/internal/config"
	"github.com/spf13/viper"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // HOME, holds ~/.opc/config.yaml
	WorkDir string // parent directory for created and extracted projects
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them so user settings never leak into the test. The env vars are restored
// after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
		WorkDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	return env
}

// exec parses args and runs them against root, failing the test on error.
func (env *testEnv) exec(t *testing.T, root string, args ...string) *command.Outcome {
	t.Helper()
	out, err := env.try(t, root, args...)
	if err != nil {
		t.Fatalf("opc %s: %v", strings.Join(args, " "), err)
	}
	return out
}

// try parses args and runs them against root, returning the error.
func (env *testEnv) try(t *testing.T, root string, args ...string) (*command.Outcome, error) {
	t.Helper()
	c, err := command.Parse(args)
	if err != nil {
		t.Fatalf("parsing %q: %v", args, err)
	}
	return env.run(root, c)
}

// run executes an already resolved command against root.
func (env *testEnv) run(root string, c command.Command) (*command.Outcome, error) {
	e := &command.Executor{Root: root, Config: config.Defaults()}
	return e.Execute(context.Background(), c)
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readFile returns the file contents, failing the test on error.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// loadConfig reads settings from the isolated HOME and resets them after
// the test.
func loadConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.Load()
}
