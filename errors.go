package turing

import "errors"

var (
	// ErrInvalidDirection is returned when a direction field is not L, N, or R.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrInvalidEndState is returned when an end-state field is not y, n, or h.
	ErrInvalidEndState = errors.New("invalid end state")

	// ErrInvalidState is returned when a state-out field is neither a
	// non-negative integer nor a recognized end-state letter.
	ErrInvalidState = errors.New("invalid state")

	// ErrVectorLength is returned when a read or write vector does not have
	// exactly k entries for a k-tape table.
	ErrVectorLength = errors.New("vector length mismatch")

	// ErrUnknownSymbol names the use of a symbol outside the declared
	// alphabet (and not one of the two distinguished symbols). No function
	// in this package returns it; the encoding package reports that case
	// with its own ErrUnknownSymbolInLine.
	ErrUnknownSymbol = errors.New("symbol not in alphabet")

	// ErrInvalidTapeCount is returned when a table is constructed with fewer
	// than one tape.
	ErrInvalidTapeCount = errors.New("invalid tape count")
)

// InvariantError reports a fatal violation of a tape invariant detected
// during execution: overwriting the sentinel, or moving left past it. It is
// returned rather than panicked so a caller can recover and report which
// tape and step the source machine broke down at.
type InvariantError struct {
	Tape int
	Step uint64
	Msg  string
}

func (e *InvariantError) Error() string {
	return e.Msg
}

// Is reports whether target is ErrInvariantViolation, so callers can match
// with errors.Is without depending on the concrete *InvariantError shape.
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariantViolation
}

// ErrInvariantViolation is the sentinel matched by errors.Is against any
// *InvariantError.
var ErrInvariantViolation = errors.New("tape invariant violation")
