package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// CLIRepo is a repository backed by the git binary. Every lookup runs
// `git -C <dir> ...`, so it sees exactly what git itself would see,
// including includeIf and other config features go-git does not implement.
type CLIRepo struct {
	dir     string
	gitDir  string
	workDir string
	bare    bool
}

// OpenCLI opens the repository containing dir using the git binary.
func OpenCLI(ctx context.Context, dir string) (*CLIRepo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	gitDir, err := revParse(ctx, abs, "--absolute-git-dir")
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %s: %w", abs, err)
	}
	bare, err := revParse(ctx, abs, "--is-bare-repository")
	if err != nil {
		return nil, err
	}

	r := &CLIRepo{
		dir:    abs,
		gitDir: filepath.Clean(gitDir),
		bare:   bare == "true",
	}
	if !r.bare {
		// show-toplevel fails inside the git dir itself; treat that like bare.
		if top, err := revParse(ctx, abs, "--show-toplevel"); err == nil && top != "" {
			r.workDir = filepath.Clean(top)
		}
	}
	return r, nil
}

// GitDir returns the absolute path of the repository metadata directory.
func (r *CLIRepo) GitDir() string {
	return r.gitDir
}

// WorkDir returns the worktree root, or false for a bare repository.
func (r *CLIRepo) WorkDir() (string, bool) {
	if r.workDir == "" {
		return "", false
	}
	return r.workDir, true
}

// Bare reports whether the repository has no working tree.
func (r *CLIRepo) Bare() bool {
	return r.bare
}

// ConfigString retrieves a git config value.
// The boolean is false when the key is not set.
func (r *CLIRepo) ConfigString(key string) (string, bool, error) {
	return GitConfig(context.Background(), r.dir, key)
}

// GitConfig retrieves a git config value as seen from dir.
func GitConfig(ctx context.Context, dir, key string) (string, bool, error) {
	cmd, err := gitCommand(ctx, dir, "config", "--get", key)
	if err != nil {
		return "", false, err
	}
	out, err := cmd.Output()
	if err != nil {
		// git config returns exit code 1 if key is not found
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", false, nil
		}
		return "", false, fmt.Errorf("git config --get %s: %w", key, err)
	}
	return strings.TrimRight(string(out), "\r\n"), true, nil
}

func revParse(ctx context.Context, dir string, args ...string) (string, error) {
	cmd, err := gitCommand(ctx, dir, append([]string{"rev-parse"}, args...)...)
	if err != nil {
		return "", err
	}
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
