package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	format "github.com/go-git/go-git/v5/plumbing/format/config"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// Repo is a repository opened with go-git. It needs no git binary.
type Repo struct {
	repo    *gogit.Repository
	gitDir  string
	workDir string
}

// Open opens the repository containing path. Like git, each directory from
// path up to the root is checked for a .git entry and then as a bare
// repository. Linked worktrees read the main repository's config.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	repo, err := discover(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", abs, err)
	}

	storage, ok := repo.Storer.(*filesystem.Storage)
	if !ok {
		return nil, fmt.Errorf("unsupported repository storage %T", repo.Storer)
	}

	r := &Repo{
		repo:   repo,
		gitDir: filepath.Clean(storage.Filesystem().Root()),
	}

	wt, err := repo.Worktree()
	switch {
	case errors.Is(err, gogit.ErrIsBareRepository):
	case err != nil:
		return nil, err
	default:
		r.workDir = filepath.Clean(wt.Filesystem.Root())
	}
	return r, nil
}

// GitDir returns the absolute path of the repository metadata directory.
func (r *Repo) GitDir() string {
	return r.gitDir
}

// WorkDir returns the worktree root, or false for a bare repository.
func (r *Repo) WorkDir() (string, bool) {
	if r.workDir == "" {
		return "", false
	}
	return r.workDir, true
}

// Bare reports whether the repository has no working tree.
func (r *Repo) Bare() bool {
	return r.workDir == ""
}

// ConfigString looks up a dotted config key (section.name or
// section.subsection.name) in the local, global and system config, in that
// order. Section and option names are matched case-insensitively, the
// subsection exactly, like git. The boolean is false when the key is not set.
func (r *Repo) ConfigString(key string) (string, bool, error) {
	section, subsection, name, err := splitKey(key)
	if err != nil {
		return "", false, err
	}

	local, err := r.repo.Config()
	if err != nil {
		return "", false, fmt.Errorf("failed to read repository config: %w", err)
	}
	if v, ok := lookup(local.Raw, section, subsection, name); ok {
		return v, true, nil
	}

	// Not ConfigScoped: its merge is shallow, so a local [core] section
	// would hide core.hooksPath set globally.
	for _, scope := range []config.Scope{config.GlobalScope, config.SystemScope} {
		cfg, err := config.LoadConfig(scope)
		if err != nil {
			return "", false, fmt.Errorf("failed to read %s config: %w", scopeName(scope), err)
		}
		if v, ok := lookup(cfg.Raw, section, subsection, name); ok {
			return v, true, nil
		}
	}
	return "", false, nil
}

// discover opens the first repository found walking up from dir.
func discover(dir string) (*gogit.Repository, error) {
	for {
		repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
			EnableDotGitCommonDir: true,
		})
		if err == nil {
			return repo, nil
		}
		if !errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, err
		}
		dir = parent
	}
}

func lookup(raw *format.Config, section, subsection, name string) (string, bool) {
	if raw == nil || !raw.HasSection(section) {
		return "", false
	}
	s := raw.Section(section)
	if subsection == "" {
		if !s.HasOption(name) {
			return "", false
		}
		return s.Option(name), true
	}
	if !s.HasSubsection(subsection) {
		return "", false
	}
	ss := s.Subsection(subsection)
	if !ss.HasOption(name) {
		return "", false
	}
	return ss.Option(name), true
}

func scopeName(scope config.Scope) string {
	if scope == config.SystemScope {
		return "system"
	}
	return "global"
}

func splitKey(key string) (section, subsection, name string, err error) {
	first := strings.Index(key, ".")
	last := strings.LastIndex(key, ".")
	if first <= 0 || last == len(key)-1 {
		return "", "", "", fmt.Errorf("invalid config key %q", key)
	}
	section = key[:first]
	name = key[last+1:]
	if first != last {
		subsection = key[first+1 : last]
	}
	return section, subsection, name, nil
}
