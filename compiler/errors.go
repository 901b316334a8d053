package compiler

import "errors"

var (
	// ErrNilTable is returned when Compile is given a nil source table.
	ErrNilTable = errors.New("compiler: nil source table")

	// ErrOutputTapeRange is returned when WithOutputTape names a tape index
	// outside [0, k).
	ErrOutputTapeRange = errors.New("compiler: output tape out of range")
)
