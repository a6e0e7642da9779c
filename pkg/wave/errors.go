package wave

import "fmt"

// Code is the abstract error taxonomy from the wave engine's contract
// with its host (spec §7). The host maps each code onto its own wire
// representation; the engine never recovers from one itself.
type Code int

const (
	// CodeSyntax marks an argument count, type, or range violation.
	CodeSyntax Code = iota
	// CodeWrongType marks a key that exists but is not a wave.
	CodeWrongType
	// CodeNoKey marks a key absent from the host's store.
	CodeNoKey
	// CodeTooBig marks incr > R.
	CodeTooBig
	// CodeOOM marks an allocation failure.
	CodeOOM
	// CodeInternal marks a violated invariant; fatal, never expected.
	CodeInternal
)

func (c Code) String() string {
	switch c {
	case CodeSyntax:
		return "syntax"
	case CodeWrongType:
		return "wrong-type"
	case CodeNoKey:
		return "no-such-key"
	case CodeTooBig:
		return "too-big"
	case CodeOOM:
		return "oom"
	case CodeInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the error type returned across the wave engine's boundary.
type Error struct {
	Code Code
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func errSyntax(format string, args ...any) error {
	return &Error{Code: CodeSyntax, Msg: fmt.Sprintf(format, args...)}
}

func errTooBig(v, r int64) error {
	return &Error{Code: CodeTooBig, Msg: fmt.Sprintf("incr %d > R %d", v, r)}
}

func errInternal(format string, args ...any) error {
	return &Error{Code: CodeInternal, Msg: fmt.Sprintf(format, args...)}
}
