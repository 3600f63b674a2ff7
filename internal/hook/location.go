package hook

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/k1LoW/git-hooks/internal/git"
)

const (
	configKeyHooksPath = "core.hooksPath"
	defaultHooksDir    = "hooks"
)

// Repository is the read-only view of a repository that hook resolution needs.
type Repository interface {
	// GitDir returns the absolute path of the metadata directory.
	GitDir() string
	// WorkDir returns the worktree root, or false for a bare repository.
	WorkDir() (string, bool)
	// ConfigString returns a config value; false means the key is not set.
	ConfigString(key string) (string, bool, error)
}

// Location is a resolved hook: where the script is and where it runs.
type Location struct {
	Name    string
	GitDir  string
	Path    string // may not exist
	WorkDir string
}

// Resolve finds the hook script for name.
//
// core.hooksPath always takes precedence. If it is set and has no such hook,
// that is "no hook", not a reason to search other directories. Otherwise the
// default hooks directory is checked first, followed by searchPaths in order.
// Relative search paths are taken relative to the git dir. When nothing is
// found the default location is returned; use Found before running it.
func Resolve(repo Repository, searchPaths []string, name string) (*Location, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	gitDir, err := filepath.Abs(repo.GitDir())
	if err != nil {
		return nil, err
	}
	// githooks(5): hooks run from the root of the working tree, or from
	// $GIT_DIR in a bare repository.
	pwd := gitDir
	if wd, ok := repo.WorkDir(); ok {
		if pwd, err = filepath.Abs(wd); err != nil {
			return nil, err
		}
	}

	loc := &Location{
		Name:    name,
		GitDir:  gitDir,
		WorkDir: pwd,
	}

	hooksPath, ok, err := repo.ConfigString(configKeyHooksPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", configKeyHooksPath, err)
	}
	if ok {
		// Expand before joining so "$DIR/.." is not cleaned away unexpanded.
		dir, err := expandHooksPath(hooksPath, pwd)
		if err != nil {
			return nil, err
		}
		loc.Path = filepath.Join(dir, name)
		return loc, nil
	}

	loc.Path = findHook(gitDir, searchPaths, name)
	return loc, nil
}

// validateName keeps name inside the hooks directory it is joined to.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/`+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q", ErrInvalidHookName, name)
	}
	return nil
}

// expandHooksPath expands ~ and environment variables in path. A relative
// result is relative to the directory hooks run from (git-config(1)), never
// to the git dir.
func expandHooksPath(path, pwd string) (string, error) {
	expanded, err := git.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPathEncoding, err)
	}
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(pwd, expanded), nil
}

func findHook(gitDir string, searchPaths []string, name string) string {
	dirs := make([]string, 0, len(searchPaths)+1)
	dirs = append(dirs, defaultHooksDir)
	for _, p := range searchPaths {
		if trimmed := strings.TrimRight(p, `/`+string(filepath.Separator)); trimmed != "" {
			dirs = append(dirs, trimmed)
		} else if p != "" {
			dirs = append(dirs, p[:1])
		}
	}

	for _, dir := range dirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(gitDir, dir)
		}
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(gitDir, defaultHooksDir, name)
}

// Found reports whether the hook exists and is executable.
func (l *Location) Found() bool {
	info, err := os.Stat(l.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Error("failed to stat hook", "hook", l.Path, "error", err)
		}
		return false
	}
	return !info.IsDir() && isExecutable(info)
}
