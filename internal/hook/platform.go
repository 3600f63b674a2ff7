package hook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	kexec "github.com/k1LoW/exec"
)

// Platform describes how hooks are launched on a host.
type Platform struct {
	// ShellOnly runs every hook through Shell instead of executing it directly.
	ShellOnly bool
	// Shell is a POSIX shell used for shell launches and the exec format fallback.
	Shell string
	// ShellArgs are passed to Shell before anything else.
	ShellArgs []string
}

const waitDelay = time.Second

var hostPlatform = sync.OnceValue(func() Platform {
	if runtime.GOOS == "windows" {
		// -l so the login profile puts the usual tools on PATH.
		return Platform{ShellOnly: true, Shell: windowsShell(), ShellArgs: []string{"-l"}}
	}
	return Platform{Shell: "/bin/sh"}
})

// HostPlatform returns the Platform for the running OS.
func HostPlatform() Platform {
	return hostPlatform()
}

// Run runs the hook at loc with args on the host platform.
func Run(ctx context.Context, loc *Location, args ...string) (Result, error) {
	return HostPlatform().Run(ctx, loc, args...)
}

// Run runs the hook at loc with args, following the conventions of githooks(5).
// It blocks until the hook exits. Stdin is not connected and output is captured.
// A missing or non-executable hook yields NotRun.
func (p Platform) Run(ctx context.Context, loc *Location, args ...string) (Result, error) {
	if !loc.Found() {
		return NotRun{Hook: loc.Path}, nil
	}

	l := p.launcher()
	slog.Debug("run hook", "hook", loc.Path, "dir", loc.WorkDir, "launcher", l.name())

	var stdout, stderr bytes.Buffer
	cmd, err := l.start(ctx, loc, args, &stdout, &stderr)
	if err != nil {
		return nil, err
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s: %w", ErrProcessLaunch, loc.Path, err)
		}
		return Failed{
			Hook:     loc.Path,
			ExitCode: exitErr.ExitCode(),
			Stdout:   decodeOutput(stdout.Bytes()),
			Stderr:   decodeOutput(stderr.Bytes()),
		}, nil
	}
	return Ok{Hook: loc.Path}, nil
}

func (p Platform) launcher() launcher {
	if p.ShellOnly {
		return shellLauncher{p}
	}
	return directLauncher{p}
}

// launcher starts a hook process. The returned command has been started.
type launcher interface {
	name() string
	start(ctx context.Context, loc *Location, args []string, stdout, stderr io.Writer) (*exec.Cmd, error)
}

// directLauncher executes the hook as a program. Files the kernel rejects
// with an exec format error (no #! line) are run through the shell instead,
// which is what git does for such scripts.
type directLauncher struct {
	p Platform
}

func (directLauncher) name() string { return "direct" }

func (d directLauncher) start(ctx context.Context, loc *Location, args []string, stdout, stderr io.Writer) (*exec.Cmd, error) {
	cmd := command(ctx, loc, stdout, stderr, loc.Path, args...)
	err := cmd.Start()
	if err == nil {
		return cmd, nil
	}
	if !errors.Is(err, errExecFormat) {
		return nil, fmt.Errorf("%w: %s: %w", ErrProcessLaunch, loc.Path, err)
	}

	slog.Debug("hook is not a binary, retrying with shell", "hook", loc.Path, "shell", d.p.Shell)
	shellArgs := append(append(append([]string{}, d.p.ShellArgs...), loc.Path), args...)
	cmd = command(ctx, loc, stdout, stderr, d.p.Shell, shellArgs...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrProcessLaunch, d.p.Shell, err)
	}
	return cmd, nil
}

// shellLauncher always runs the hook through the shell:
//
//	sh -c "'<hook>' \"$@\"" <hook> args...
//
// The hook is passed again as $0 so "$@" expands to exactly args.
type shellLauncher struct {
	p Platform
}

func (shellLauncher) name() string { return "shell" }

func (s shellLauncher) start(ctx context.Context, loc *Location, args []string, stdout, stderr io.Writer) (*exec.Cmd, error) {
	script, err := shellCommand(loc.Path)
	if err != nil {
		return nil, err
	}
	shellArgs := make([]string, 0, len(s.p.ShellArgs)+3+len(args))
	shellArgs = append(shellArgs, s.p.ShellArgs...)
	shellArgs = append(shellArgs, "-c", script, loc.Path)
	shellArgs = append(shellArgs, args...)

	cmd := command(ctx, loc, stdout, stderr, s.p.Shell, shellArgs...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrProcessLaunch, s.p.Shell, err)
	}
	return cmd, nil
}

func command(ctx context.Context, loc *Location, stdout, stderr io.Writer, name string, args ...string) *exec.Cmd {
	cmd := kexec.CommandContext(ctx, name, args...)
	cmd.Dir = loc.WorkDir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// A cancelled hook may leave children holding the output pipes.
	cmd.WaitDelay = waitDelay
	setProcAttr(cmd)
	return cmd
}

// shellCommand builds the -c script for shellLauncher.
func shellCommand(hookPath string) (string, error) {
	quoted, err := shellQuote(hookPath)
	if err != nil {
		return "", err
	}
	return quoted + ` "$@"`, nil
}

// windowsShell locates the sh.exe shipped with Git for Windows, relative to
// git.exe on PATH (<root>\cmd\git.exe or <root>\mingw64\bin\git.exe).
func windowsShell() string {
	gitPath, err := exec.LookPath("git")
	if err == nil {
		dir := filepath.Dir(gitPath)
		for _, root := range []string{filepath.Dir(dir), filepath.Dir(filepath.Dir(dir))} {
			for _, c := range []string{
				filepath.Join(root, "bin", "sh.exe"),
				filepath.Join(root, "usr", "bin", "sh.exe"),
			} {
				if _, err := os.Stat(c); err == nil {
					return c
				}
			}
		}
	}
	return "sh"
}

// decodeOutput converts captured output to text, replacing invalid UTF-8.
func decodeOutput(b []byte) string {
	return strings.ToValidUTF8(string(b), "\uFFFD")
}
