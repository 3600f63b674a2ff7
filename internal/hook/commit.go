package hook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// commitMsgFile is the file, relative to the git dir, through which the
// commit message is handed to prepare-commit-msg and commit-msg.
const commitMsgFile = "COMMIT_EDITMSG"

// PrepareCommitMsgSource is the source of the commit message passed to
// prepare-commit-msg as its second argument.
type PrepareCommitMsgSource struct {
	Name   string
	Commit string // only for the "commit" source
}

var (
	// SourceMessage: the message was given with -m or -F.
	SourceMessage = PrepareCommitMsgSource{Name: "message"}
	// SourceTemplate: the message was given with -t or commit.template.
	SourceTemplate = PrepareCommitMsgSource{Name: "template"}
	// SourceMerge: the commit is a merge or .git/MERGE_MSG exists.
	SourceMerge = PrepareCommitMsgSource{Name: "merge"}
	// SourceSquash: .git/SQUASH_MSG exists.
	SourceSquash = PrepareCommitMsgSource{Name: "squash"}
)

// SourceCommit is the source for -c, -C or --amend, reusing the message of commit.
func SourceCommit(commit string) PrepareCommitMsgSource {
	return PrepareCommitMsgSource{Name: "commit", Commit: commit}
}

// ParsePrepareCommitMsgSource converts a source name (and the commit for
// "commit") into a PrepareCommitMsgSource.
func ParsePrepareCommitMsgSource(name, commit string) (PrepareCommitMsgSource, error) {
	switch name {
	case SourceMessage.Name, SourceTemplate.Name, SourceMerge.Name, SourceSquash.Name:
		return PrepareCommitMsgSource{Name: name}, nil
	case "commit":
		if commit == "" {
			return PrepareCommitMsgSource{}, fmt.Errorf("source %q requires a commit", name)
		}
		return SourceCommit(commit), nil
	default:
		return PrepareCommitMsgSource{}, fmt.Errorf("unknown prepare-commit-msg source %q (supported: message, template, merge, squash, commit)", name)
	}
}

func (s PrepareCommitMsgSource) args() []string {
	if s.Name == "commit" {
		return []string{s.Name, s.Commit}
	}
	return []string{s.Name}
}

// RunHook resolves and runs the hook called name with args.
func RunHook(ctx context.Context, repo Repository, searchPaths []string, name string, args ...string) (Result, error) {
	loc, err := Resolve(repo, searchPaths, name)
	if err != nil {
		return nil, err
	}
	return Run(ctx, loc, args...)
}

// RunPreCommit runs the pre-commit hook.
func RunPreCommit(ctx context.Context, repo Repository, searchPaths []string) (Result, error) {
	return RunHook(ctx, repo, searchPaths, PreCommit)
}

// RunPostCommit runs the post-commit hook.
func RunPostCommit(ctx context.Context, repo Repository, searchPaths []string) (Result, error) {
	return RunHook(ctx, repo, searchPaths, PostCommit)
}

// RunCommitMsg runs the commit-msg hook on msg. The hook may edit the
// message; msg is updated with whatever the hook left in the file.
func RunCommitMsg(ctx context.Context, repo Repository, searchPaths []string, msg *string) (Result, error) {
	return runWithMsgFile(ctx, repo, searchPaths, CommitMsg, msg)
}

// RunPrepareCommitMsg runs the prepare-commit-msg hook on msg with the given source.
// msg is updated with whatever the hook left in the file.
func RunPrepareCommitMsg(ctx context.Context, repo Repository, searchPaths []string, source PrepareCommitMsgSource, msg *string) (Result, error) {
	return runWithMsgFile(ctx, repo, searchPaths, PrepareCommitMsg, msg, source.args()...)
}

func runWithMsgFile(ctx context.Context, repo Repository, searchPaths []string, name string, msg *string, extra ...string) (Result, error) {
	loc, err := Resolve(repo, searchPaths, name)
	if err != nil {
		return nil, err
	}
	if !loc.Found() {
		return NotRun{Hook: loc.Path}, nil
	}

	file := filepath.Join(loc.GitDir, commitMsgFile)
	if err := os.WriteFile(file, []byte(*msg), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", file, err)
	}

	res, err := Run(ctx, loc, append([]string{file}, extra...)...)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read back %s: %w", file, err)
	}
	*msg = string(b)
	return res, nil
}
