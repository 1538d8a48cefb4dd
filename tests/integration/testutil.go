// Package integration runs the built power binary end to end.
package integration

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var (
	// powerBin is the path to the built power binary.
	powerBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with the compiler output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot walks up from the working directory to the one holding go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// TestEnv is an isolated config directory for one test.
type TestEnv struct {
	t      *testing.T
	Config string
}

// NewTestEnv creates a test environment with an empty config directory.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	if buildErr != nil {
		t.Fatalf("failed to build power: %v", buildErr)
	}
	if powerBin == "" {
		t.Fatal("power binary not built")
	}
	return &TestEnv{t: t, Config: t.TempDir()}
}

// WriteConfig writes config.yaml into the environment's config directory.
func (e *TestEnv) WriteConfig(content string) {
	e.t.Helper()
	if err := os.WriteFile(filepath.Join(e.Config, "config.yaml"), []byte(content), 0o644); err != nil {
		e.t.Fatalf("write config: %v", err)
	}
}

// CmdResult holds the result of one power invocation.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes power with args, feeding stdin to the process.
func (e *TestEnv) Run(stdin string, args ...string) CmdResult {
	e.t.Helper()

	cmd := exec.Command(powerBin, append([]string{"--config-dir", e.Config}, args...)...)
	cmd.Env = append(filteredEnv(), "POWER_LOG_LEVEL=error")
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	exitCode := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			e.t.Fatalf("failed to run power: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}
	return CmdResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode}
}

// filteredEnv drops POWER_* variables inherited from the caller.
func filteredEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "POWER_") {
			env = append(env, kv)
		}
	}
	return env
}
