package hook

import "errors"

var (
	// ErrPathEncoding reports a hook path or hooks directory that cannot be
	// expanded, or cannot be represented on the shell command line.
	ErrPathEncoding = errors.New("hook path cannot be encoded")
	// ErrInvalidHookName reports a hook name that is not a plain file name.
	ErrInvalidHookName = errors.New("invalid hook name")
	// ErrProcessLaunch reports that no process could be started for the hook.
	// It never describes a hook that ran and failed; see Failed for that.
	ErrProcessLaunch = errors.New("failed to launch hook")
)
