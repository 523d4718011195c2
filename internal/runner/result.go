package runner

import "time"

// Result holds the normalized outcome of one command invocation.
type Result struct {
	ID        string        // unique identifier for this invocation
	ExitCode  int           // process exit code, or StartFailure
	Stdout    []byte        // captured stdout (may be truncated)
	Stderr    []byte        // captured stderr (may be truncated)
	Truncated bool          // true if output exceeded the size cap
	StartedAt time.Time     // when the invocation began
	Duration  time.Duration // wall time until the child terminated
}

// OK reports whether the command ran and exited with status zero.
func (r *Result) OK() bool {
	return r.ExitCode == 0
}
