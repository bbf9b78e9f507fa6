package domain

import "errors"

// Domain errors represent error conditions surfaced by a capture
// session. They are returned by the public API and can be checked
// with errors.Is.
var (
	// ErrReadTimeout is returned by a byte source when no data arrives
	// within the configured read timeout. The session driver treats it
	// as the normal end of a session.
	ErrReadTimeout = errors.New("serlog: read timeout")

	// ErrTruncatedRecord is returned when the stream ends after a
	// sentinel was matched but before the full payload arrived. It is
	// fatal for the session; no partial record is emitted.
	ErrTruncatedRecord = errors.New("serlog: truncated record")

	// ErrEmptySentinel is returned when a synchronizer is constructed
	// with a zero-length sentinel.
	ErrEmptySentinel = errors.New("serlog: sentinel must not be empty")
)
