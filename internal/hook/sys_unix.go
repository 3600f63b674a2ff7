//go:build unix

package hook

import (
	"os/exec"

	"golang.org/x/sys/unix"
)

// errExecFormat is returned by execve for a file without a known binary
// format or #! line.
var errExecFormat error = unix.ENOEXEC

// setProcAttr keeps the hook in the caller's process group, as git does, so
// it can read from the terminal and receives Ctrl-C. Cancellation still
// reaches the hook itself.
func setProcAttr(cmd *exec.Cmd) {
	if cmd.SysProcAttr != nil {
		cmd.SysProcAttr.Setpgid = false
	}
}
