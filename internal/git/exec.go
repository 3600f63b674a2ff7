package git

import (
	"context"
	"os/exec"

	kexec "github.com/k1LoW/exec"
)

// gitCommand creates an exec.Cmd for git running in dir with the given arguments.
// It uses exec.LookPath to look up the git binary path.
func gitCommand(ctx context.Context, dir string, args ...string) (*exec.Cmd, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, err
	}
	cmd := kexec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir
	return cmd, nil
}
