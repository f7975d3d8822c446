package changelog

import "errors"

var (
	// ErrStorage wraps failures of the underlying table.
	ErrStorage = errors.New("changelog: storage failure")
	// ErrCorruptState reports a malformed counter, key, or payload.
	ErrCorruptState = errors.New("changelog: corrupt state")
	// ErrSequenceExhausted is returned once every sequence number has been assigned.
	ErrSequenceExhausted = errors.New("changelog: sequence numbers exhausted")
)
