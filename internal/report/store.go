// Package report provides persistence and retrieval of external CLI
// invocation records, so that past runs can be inspected after the
// opaque console output has scrolled away.
package report

import "time"

// Op identifies which external CLI operation an invocation performed.
type Op string

const (
	OpCreate Op = "create"
	OpStatus Op = "status"
	OpList   Op = "list"
	OpResult Op = "result"
	OpRetry  Op = "retry"
	OpCancel Op = "cancel"
)

// Record holds the normalized outcome of one external CLI invocation.
// Stdout and Stderr are opaque text from the external tool; nothing in
// this module interprets them.
type Record struct {
	ID        string        `json:"id"`
	Op        Op            `json:"op"`
	TaskID    string        `json:"task_id,omitempty"`
	Command   string        `json:"command"`
	ExitCode  int           `json:"exit_code"`
	Stdout    string        `json:"stdout,omitempty"`
	Stderr    string        `json:"stderr,omitempty"`
	Truncated bool          `json:"truncated,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// OK reports whether the underlying command exited with status zero.
// Exit code is the sole success signal; output is never inspected.
func (r *Record) OK() bool {
	return r.ExitCode == 0
}

// Store persists and retrieves invocation records.
type Store interface {
	Save(record *Record) error
	Load(id string) (*Record, error)
	// Recent returns up to n records, most recent first.
	Recent(n int) ([]*Record, error)
}

// FilterOp returns the records matching op, preserving order.
func FilterOp(records []*Record, op Op) []*Record {
	var out []*Record
	for _, r := range records {
		if r.Op == op {
			out = append(out, r)
		}
	}
	return out
}

// FilterTask returns the records touching the given task ID, preserving order.
func FilterTask(records []*Record, taskID string) []*Record {
	var out []*Record
	for _, r := range records {
		if r.TaskID == taskID {
			out = append(out, r)
		}
	}
	return out
}
