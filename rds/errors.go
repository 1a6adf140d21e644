package rds

import "errors"

// Error taxonomy per the bounds/validation and configuration kinds.
// These are sentinels rather than exception types: callers compare
// with errors.Is, and every setter returns the previous value
// unchanged on rejection (all-or-nothing at the field level).
var (
	// ErrOutOfRange marks a value rejected because it fell outside the
	// field's valid domain (e.g. PTY > 31, AF outside 87.6..107.9).
	ErrOutOfRange = errors.New("rds: value out of range")

	// ErrAFListFull marks an add_af call rejected because the AF list
	// already holds the maximum of 25 entries.
	ErrAFListFull = errors.New("rds: AF list full")

	// ErrMalformedCommand marks a control-transport line that could
	// not be parsed; the line is dropped and the next one is still
	// processed.
	ErrMalformedCommand = errors.New("rds: malformed control command")
)
