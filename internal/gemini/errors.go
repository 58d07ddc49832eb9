package gemini

import "fmt"

// ErrorKind classifies a generation failure so callers can branch on the
// tag instead of matching error strings.
type ErrorKind string

const (
	// KindRemote covers network, auth and quota failures of the model call.
	KindRemote ErrorKind = "remote"
	// KindParse covers replies that are not valid JSON after fence
	// stripping, or that lack the expected shape.
	KindParse ErrorKind = "parse"
)

// Error is a failed generation operation. Any chunk failing aborts the
// whole operation; per-chunk successes computed before the failure are
// discarded and never cached.
type Error struct {
	Kind ErrorKind
	Op   string // "summarize" or "generate quiz"
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
