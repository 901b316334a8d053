package turing

import "fmt"

// EndState is one of the three terminal tags a machine can halt in.
type EndState uint8

const (
	// Accept is the terminal tag for a successful recognition.
	Accept EndState = iota
	// Reject is the terminal tag for a failed recognition, and the implicit
	// default for any undefined transition.
	Reject
	// Halt is the terminal tag for a machine that produces output rather
	// than a yes/no answer.
	Halt
)

// String renders the end state using the encoded table's one-letter form.
func (e EndState) String() string {
	switch e {
	case Accept:
		return "y"
	case Reject:
		return "n"
	case Halt:
		return "h"
	default:
		return fmt.Sprintf("EndState(%d)", uint8(e))
	}
}

// ParseEndState parses one of "y", "n", "h".
func ParseEndState(s string) (EndState, error) {
	switch s {
	case "y":
		return Accept, nil
	case "n":
		return Reject, nil
	case "h":
		return Halt, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidEndState, s)
	}
}

// State is the tagged sum an execution or next-state field holds: either a
// non-negative active state (ActiveState) or a terminal EndState. It is
// modeled as an interface rather than a magic integer sentinel so that a
// type switch, not an out-of-band comparison, decides whether a machine has
// halted.
type State interface {
	isState()
	fmt.Stringer
}

// ActiveState is a non-negative integer identifying a non-terminal state.
type ActiveState int

func (ActiveState) isState() {}

// String renders the active state as its bare integer.
func (a ActiveState) String() string {
	return fmt.Sprintf("%d", int(a))
}

func (EndState) isState() {}

// IsEnd reports whether s is a terminal state.
func IsEnd(s State) bool {
	_, ok := s.(EndState)
	return ok
}

// AsEndState returns the wrapped EndState and true if s is terminal.
func AsEndState(s State) (EndState, bool) {
	e, ok := s.(EndState)
	return e, ok
}

// AsActiveState returns the wrapped ActiveState and true if s is non-terminal.
func AsActiveState(s State) (ActiveState, bool) {
	a, ok := s.(ActiveState)
	return a, ok
}

// ParseState parses a state-out field: a non-negative integer, or one of the
// three end-state letters.
func ParseState(s string) (State, error) {
	if end, err := ParseEndState(s); err == nil {
		return end, nil
	}
	n, err := parseNonNegativeInt(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidState, s)
	}
	return ActiveState(n), nil
}
