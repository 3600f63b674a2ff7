// Package testutil provides temporary git repositories and hook scripts for tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/k1LoW/exec"
)

// TestRepo represents a temporary git repository for testing.
type TestRepo struct {
	Root   string // worktree root for a normal repository, the repository itself when bare (symlink-resolved)
	GitDir string // metadata directory
	Bare   bool
	t      *testing.T
}

// NewTestRepo creates a temporary non-bare repository on branch "main".
// The repository directory is named "repo" inside a fresh temp dir.
func NewTestRepo(t *testing.T) *TestRepo {
	t.Helper()

	root := filepath.Join(tempDir(t), "repo")
	gitCmd(t, "", "init", "-b", "main", root)
	gitCmd(t, root, "config", "user.email", "test@example.com")
	gitCmd(t, root, "config", "user.name", "Test")

	return &TestRepo{
		Root:   root,
		GitDir: filepath.Join(root, ".git"),
		t:      t,
	}
}

// NewBareTestRepo creates a temporary bare repository with one commit on "main".
func NewBareTestRepo(t *testing.T) *TestRepo {
	t.Helper()

	dir := tempDir(t)
	seed := filepath.Join(dir, "seed")
	gitCmd(t, "", "init", "-b", "main", seed)
	if err := os.WriteFile(filepath.Join(seed, "README.md"), []byte("# Test"), 0600); err != nil {
		t.Fatal(err)
	}
	gitCmd(t, seed, "add", ".")
	gitCmd(t, seed, "-c", "user.email=test@example.com", "-c", "user.name=Test", "commit", "-m", "initial commit")

	root := filepath.Join(dir, "repo.git")
	gitCmd(t, "", "clone", "--bare", seed, root)

	return &TestRepo{
		Root:   root,
		GitDir: root,
		Bare:   true,
		t:      t,
	}
}

// ParentDir returns the directory containing the repository.
func (r *TestRepo) ParentDir() string {
	return filepath.Dir(r.Root)
}

// HooksDir returns the repository's default hooks directory.
func (r *TestRepo) HooksDir() string {
	return filepath.Join(r.GitDir, "hooks")
}

// Git runs a git command in the repository and returns its trimmed output.
func (r *TestRepo) Git(args ...string) string {
	r.t.Helper()
	return gitCmd(r.t, r.Root, args...)
}

// CreateFile writes a file relative to the repository root, creating parent directories.
func (r *TestRepo) CreateFile(name, content string) string {
	r.t.Helper()
	return WriteFile(r.t, filepath.Join(r.Root, name), content, 0600)
}

// Commit stages everything and commits it.
func (r *TestRepo) Commit(msg string) {
	r.t.Helper()
	r.Git("add", "-A")
	r.Git("commit", "--no-verify", "-m", msg)
}

// AddWorktree commits the current tree and adds a linked worktree on a new
// branch next to the repository. It returns the worktree root.
func (r *TestRepo) AddWorktree(name string) string {
	r.t.Helper()
	r.CreateFile(".keep", "")
	r.Commit("initial commit")
	path := filepath.Join(r.ParentDir(), name)
	r.Git("worktree", "add", "-b", name, path)
	return path
}

// CreateHook writes an executable hook script into the default hooks directory.
func (r *TestRepo) CreateHook(name, script string) string {
	r.t.Helper()
	return CreateHookIn(r.t, r.HooksDir(), name, script)
}

// Chdir changes the working directory to the repository root and returns a restore function.
func (r *TestRepo) Chdir() func() {
	r.t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		r.t.Fatalf("failed to get cwd: %v", err)
	}
	if err := os.Chdir(r.Root); err != nil {
		r.t.Fatalf("failed to chdir: %v", err)
	}
	return func() {
		if err := os.Chdir(orig); err != nil {
			r.t.Fatalf("failed to restore cwd: %v", err)
		}
	}
}

// CreateHookIn writes an executable hook script named name into dir.
func CreateHookIn(t *testing.T, dir, name, script string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, name), script, 0755)
}

// WriteFile writes content to path with perm, creating parent directories.
// The mode is applied explicitly so the umask does not strip execute bits.
func WriteFile(t *testing.T, path, content string, perm os.FileMode) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatal(err)
	}
	if runtime.GOOS != "windows" {
		if err := os.Chmod(path, perm); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

// SetGlobalConfig writes content as the global git config for the rest of the
// test. git finds it through GIT_CONFIG_GLOBAL, go-git through XDG_CONFIG_HOME.
func SetGlobalConfig(t *testing.T, content string) string {
	t.Helper()
	xdg := tempDir(t)
	path := WriteFile(t, filepath.Join(xdg, "git", "config"), content, 0600)
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("GIT_CONFIG_GLOBAL", path)
	return path
}

// tempDir returns a symlink-resolved temp dir (macOS /var -> /private/var).
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func gitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v (dir=%s): %v\n%s", args, dir, err, string(out))
	}
	return strings.TrimSpace(string(out))
}
