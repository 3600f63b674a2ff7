//go:build !unix && !windows

package hook

import (
	"errors"
	"os/exec"
)

// No exec format error to recover from on this platform.
var errExecFormat = errors.New("exec format error")

func setProcAttr(*exec.Cmd) {}
