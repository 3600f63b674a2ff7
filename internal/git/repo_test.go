package git

import (
	"errors"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/k1LoW/git-hooks/testutil"
)

func TestOpen(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.CreateFile("subdir/file.txt", "content")

	for _, dir := range []string{repo.Root, filepath.Join(repo.Root, "subdir")} {
		r, err := Open(dir)
		if err != nil {
			t.Fatalf("Open(%q): %v", dir, err)
		}
		if r.GitDir() != repo.GitDir {
			t.Errorf("GitDir() = %q, want %q", r.GitDir(), repo.GitDir) //nostyle:errorstrings
		}
		wd, ok := r.WorkDir()
		if !ok || wd != repo.Root {
			t.Errorf("WorkDir() = %q, %v, want %q", wd, ok, repo.Root) //nostyle:errorstrings
		}
	}
}

func TestOpen_BareRepo(t *testing.T) {
	repo := testutil.NewBareTestRepo(t)

	r, err := Open(repo.Root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Bare() {
		t.Error("Bare() should be true for bare repository")
	}
	if r.GitDir() != repo.Root {
		t.Errorf("GitDir() = %q, want %q", r.GitDir(), repo.Root) //nostyle:errorstrings
	}
}

func TestOpen_BareRepoSubdir(t *testing.T) {
	repo := testutil.NewBareTestRepo(t)

	r, err := Open(filepath.Join(repo.Root, "refs", "heads"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.GitDir() != repo.Root {
		t.Errorf("GitDir() = %q, want %q", r.GitDir(), repo.Root) //nostyle:errorstrings
	}
}

func TestOpen_LinkedWorktree(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	wt := repo.AddWorktree("wt")

	r, err := Open(wt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(repo.GitDir, "worktrees", "wt"); r.GitDir() != want {
		t.Errorf("GitDir() = %q, want %q", r.GitDir(), want) //nostyle:errorstrings
	}
	wd, ok := r.WorkDir()
	if !ok || wd != wt {
		t.Errorf("WorkDir() = %q, %v, want %q", wd, ok, wt) //nostyle:errorstrings
	}

	// Repository config lives in the common dir, not the worktree's git dir.
	repo.Git("config", "core.hooksPath", ".githooks")
	got, ok, err := r.ConfigString("core.hooksPath")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || got != ".githooks" {
		t.Errorf("ConfigString(core.hooksPath) = %q, %v, want %q, true", got, ok, ".githooks") //nostyle:errorstrings
	}
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(t.TempDir())
	if !errors.Is(err, gogit.ErrRepositoryNotExists) {
		t.Fatalf("expected ErrRepositoryNotExists, got: %v", err)
	}
}

func TestRepoConfigString(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.Git("config", "core.hooksPath", ".githooks")
	repo.Git("config", "remote.origin.url", "https://example.com/repo.git")
	repo.Git("config", "--add", "multi.value", "first")
	repo.Git("config", "--add", "multi.value", "last")

	r, err := Open(repo.Root)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		key    string
		want   string
		wantOK bool
	}{
		{"set", "core.hooksPath", ".githooks", true},
		{"case-insensitive", "CORE.HOOKSPATH", ".githooks", true},
		{"unset option", "core.editor", "", false},
		{"unset section", "nosuch.key", "", false},
		{"subsection", "remote.origin.url", "https://example.com/repo.git", true},
		{"missing subsection", "remote.upstream.url", "", false},
		{"last value wins", "multi.value", "last", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := r.ConfigString(tt.key)
			if err != nil {
				t.Fatalf("ConfigString(%q) error = %v", tt.key, err)
			}
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ConfigString(%q) = %q, %v, want %q, %v", tt.key, got, ok, tt.want, tt.wantOK) //nostyle:errorstrings
			}
		})
	}
}

func TestRepoConfigString_Scopes(t *testing.T) {
	testutil.SetGlobalConfig(t, "[core]\n\thooksPath = /shared/hooks\n[user]\n\tname = Global\n")
	repo := testutil.NewTestRepo(t)

	r, err := Open(repo.Root)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		// The local config has a [core] section, but no hooksPath in it.
		{"core.hooksPath", "/shared/hooks", true},
		{"user.name", "Test", true},
		{"core.editor", "", false},
	}
	for _, tt := range tests {
		got, ok, err := r.ConfigString(tt.key)
		if err != nil {
			t.Fatalf("ConfigString(%q) error = %v", tt.key, err)
		}
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ConfigString(%q) = %q, %v, want %q, %v", tt.key, got, ok, tt.want, tt.wantOK) //nostyle:errorstrings
		}
		cli, cliOK, err := GitConfig(t.Context(), repo.Root, tt.key)
		if err != nil {
			t.Fatalf("GitConfig(%q) error = %v", tt.key, err)
		}
		if cli != got || cliOK != ok {
			t.Errorf("GitConfig(%q) = %q, %v, go-git gave %q, %v", tt.key, cli, cliOK, got, ok)
		}
	}
}

func TestSplitKey(t *testing.T) {
	tests := []struct {
		key                     string
		section, subsection, nm string
		wantErr                 bool
	}{
		{"core.hooksPath", "core", "", "hooksPath", false},
		{"remote.origin.url", "remote", "origin", "url", false},
		{"url.https://x.y/.insteadOf", "url", "https://x.y/", "insteadOf", false},
		{"core", "", "", "", true},
		{".name", "", "", "", true},
		{"core.", "", "", "", true},
	}
	for _, tt := range tests {
		section, subsection, name, err := splitKey(tt.key)
		if (err != nil) != tt.wantErr {
			t.Fatalf("splitKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
		}
		if section != tt.section || subsection != tt.subsection || name != tt.nm {
			t.Errorf("splitKey(%q) = %q, %q, %q", tt.key, section, subsection, name)
		}
	}
}
