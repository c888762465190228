package memscan

import "errors"

// Error kinds per the adapter/core error taxonomy. Callers match with
// errors.Is; layers above add context with fmt.Errorf("...: %w", err).
var (
	// ErrPermission is returned when the adapter denies an open, read, or
	// write because the handle lacks the requested access rights.
	ErrPermission = errors.New("memscan: permission denied")

	// ErrNotFound covers missing processes: opening an absent pid on Linux,
	// or no process matching a name in ListByName.
	ErrNotFound = errors.New("memscan: not found")

	// ErrIO covers short transfers, enumeration failures, and malformed
	// platform data (e.g. an unparsable /proc/<pid>/maps line).
	ErrIO = errors.New("memscan: i/o error")

	// ErrBadInput covers unparsable arguments to the write command
	// (address, type, or value). An unparsable filter literal is not
	// reported as an error: it clears the targeted scan set instead.
	ErrBadInput = errors.New("memscan: bad input")
)
