// Package e2e contains end-to-end tests for git-hooks.
//
// helper_test.go provides shared test utilities:
//   - buildBinary: builds the git-hooks binary for testing
//   - runGitHooks: executes git-hooks and returns combined output
//   - runGitHooksStdout: executes git-hooks and returns stdout/stderr separately
//   - exitCode: extracts the process exit code from an error
package e2e

import (
	"bytes"
	"errors"
	"os"
	osexec "os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/k1LoW/exec"
)

func TestMain(m *testing.M) {
	// Prevent the user's global/system git config from leaking into tests.
	// See: https://git-scm.com/docs/git-config#ENVIRONMENT (Git 2.32+)
	os.Setenv("GIT_CONFIG_GLOBAL", "/dev/null")
	os.Setenv("GIT_CONFIG_SYSTEM", "/dev/null")
	// go-git and the git-hooks config file both look under HOME.
	home, err := os.MkdirTemp("", "git-hooks-e2e-home")
	if err != nil {
		panic(err)
	}
	os.Setenv("HOME", home)
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	code := m.Run()
	os.RemoveAll(home)
	os.Exit(code)
}

// buildBinary builds git-hooks binary for testing and returns the path.
func buildBinary(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	binPath := filepath.Join(tmpDir, "git-hooks")

	cmd := exec.Command("go", "build", "-o", binPath, "..")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to build binary: %v", err)
	}

	return binPath
}

// runGitHooks runs git-hooks command and returns combined output (stdout + stderr).
func runGitHooks(t *testing.T, binPath, dir string, args ...string) (string, error) {
	t.Helper()

	cmd := exec.Command(binPath, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// runGitHooksStdout runs git-hooks command and returns stdout and stderr untrimmed,
// so tests can check hook output byte for byte.
func runGitHooksStdout(t *testing.T, binPath, dir string, args ...string) (stdout string, stderr string, err error) {
	t.Helper()

	cmd := exec.Command(binPath, args...)
	cmd.Dir = dir
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	err = cmd.Run()
	return stdoutBuf.String(), stderrBuf.String(), err
}

// exitCode returns the exit code carried by err, 0 for nil, or -1.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *osexec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
