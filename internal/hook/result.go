package hook

// Result is the outcome of a hook invocation: Ok, NotRun or Failed.
// It is produced once per invocation and never mutated.
type Result interface {
	result()
}

// Ok means the hook ran and exited with status 0.
type Ok struct {
	Hook string
}

// NotRun means there was no runnable hook at the resolved path.
type NotRun struct {
	Hook string
}

// Failed means the hook exited non-zero or was terminated by a signal.
type Failed struct {
	Hook string
	// ExitCode is the hook's exit status, or -1 if it was terminated by a signal.
	ExitCode int
	Stdout   string
	Stderr   string
}

func (Ok) result()     {}
func (NotRun) result() {}
func (Failed) result() {}

// Signaled reports whether the hook was terminated by a signal and so has no exit code.
func (f Failed) Signaled() bool {
	return f.ExitCode < 0
}

// Output returns stdout followed by stderr.
func (f Failed) Output() string {
	return f.Stdout + f.Stderr
}

// Succeeded reports whether r lets the triggering operation proceed.
// A missing hook counts as success.
func Succeeded(r Result) bool {
	switch r.(type) {
	case Ok, NotRun:
		return true
	default:
		return false
	}
}
