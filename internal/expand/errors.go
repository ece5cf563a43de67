package expand

import "fmt"

// ExpansionError reports that the external expansion tool timed out or exited
// non-zero while expanding a member. Output carries the tool's diagnostic
// text. Failed expansions are never cached, so a later request for the same
// member starts a fresh invocation.
type ExpansionError struct {
	Member string
	Output string
	Err    error
}

func (e *ExpansionError) Error() string {
	msg := fmt.Sprintf("expanding %s: %v", e.Member, e.Err)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *ExpansionError) Unwrap() error { return e.Err }

// MalformedOutputError reports that the expansion tool exited successfully
// but produced output that is not the expected JSON object shape.
type MalformedOutputError struct {
	Member string
	Err    error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("expanding %s: malformed tool output: %v", e.Member, e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// EmptySetError reports that a member expanded to zero AS numbers and the
// resolver's empty-result policy is PolicyError.
type EmptySetError struct {
	Member string
}

func (e *EmptySetError) Error() string {
	return fmt.Sprintf("as-set %s expanded to zero members", e.Member)
}
