package turing

import (
	"context"
	"errors"
	"strconv"
)

// Option configures a Machine at construction time.
type Option func(*Machine)

// WithMaxSteps bounds the number of steps Run will take before returning
// ErrStepsExceeded. Zero (the default) means unbounded — the executor itself
// never times out or retries (spec §4.3); this is the orthogonal bounded-step
// wrapper the spec allows a consumer to add.
func WithMaxSteps(n uint64) Option {
	return func(m *Machine) { m.maxSteps = n }
}

// WithTapeKind selects the cell granularity used for every tape the machine
// constructs. Defaults to SingleSymbolCells.
func WithTapeKind(kind TapeKind) Option {
	return func(m *Machine) { m.tapeKind = kind }
}

// ErrStepsExceeded is returned by Run when a configured WithMaxSteps bound is
// reached without the machine reaching a terminal state.
var ErrStepsExceeded = errors.New("step bound exceeded")

// Machine drives a TransitionTable across k tapes in lockstep, one step at a
// time, until it reaches a terminal state. It is single-threaded and
// deterministic: there is no suspension point inside a step.
type Machine struct {
	table    *TransitionTable
	tapes    []Tape
	state    State
	steps    uint64
	tapeKind TapeKind
	maxSteps uint64
}

// NewMachine constructs a Machine driven by table. opts may further
// configure step bounds and tape representation.
func NewMachine(table *TransitionTable, opts ...Option) *Machine {
	m := &Machine{table: table}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run resets the machine, seeds tape 0 with input, and steps until a
// terminal state is reached (or the configured step bound is hit). It is
// equivalent to RunCtx(context.Background(), input).
func (m *Machine) Run(input []Symbol) (EndState, error) {
	return m.RunCtx(context.Background(), input)
}

// RunCtx is Run with a cancellable context, checked once per step.
func (m *Machine) RunCtx(ctx context.Context, input []Symbol) (EndState, error) {
	m.reset(input)
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		end, halted, err := m.step()
		if err != nil {
			return 0, err
		}
		if halted {
			return end, nil
		}
		if m.maxSteps > 0 && m.steps >= m.maxSteps {
			return 0, ErrStepsExceeded
		}
	}
}

func (m *Machine) reset(input []Symbol) {
	m.state = ActiveState(0)
	m.steps = 0
	m.tapes = make([]Tape, m.table.Tapes)
	for i := range m.tapes {
		if i == 0 {
			m.tapes[i] = m.tapeKind.newTape(input)
		} else {
			m.tapes[i] = m.tapeKind.newTape(nil)
		}
	}
}

// step performs exactly one simulated step: snapshot every tape's read
// symbol before any writes are applied (so a tape's own read and write this
// step cannot interfere), look up the transition, write every tape, move
// every tape, then commit the next state. No partial state is committed if a
// write or move reports a fatal invariant violation.
func (m *Machine) step() (EndState, bool, error) {
	active, ok := AsActiveState(m.state)
	if !ok {
		end, _ := AsEndState(m.state)
		return end, true, nil
	}

	read := make([]Symbol, len(m.tapes))
	for i, tape := range m.tapes {
		read[i] = tape.Read()
	}

	out := m.table.Lookup(active, read)

	// Check every tape's write and move before touching any tape, so a
	// violation on one tape leaves every tape as it was.
	for i, tape := range m.tapes {
		a, atSentinel := out.Actions[i], tape.Head() == 0
		switch {
		case atSentinel && a.Write != StartSentinel:
			return 0, false, annotateInvariant(&InvariantError{Msg: "write: sentinel at cell 0 cannot be overwritten"}, i, m.steps)
		case !atSentinel && a.Write == StartSentinel:
			return 0, false, annotateInvariant(&InvariantError{Msg: "write: sentinel cannot be written outside cell 0"}, i, m.steps)
		case atSentinel && a.Move == Left:
			return 0, false, annotateInvariant(&InvariantError{Msg: "move: head cannot move left past the sentinel"}, i, m.steps)
		}
	}

	for i, tape := range m.tapes {
		if err := tape.Write(out.Actions[i].Write); err != nil {
			return 0, false, annotateInvariant(err, i, m.steps)
		}
	}
	for i, tape := range m.tapes {
		if err := tape.Move(out.Actions[i].Move); err != nil {
			return 0, false, annotateInvariant(err, i, m.steps)
		}
	}

	m.state = out.Next
	m.steps++

	if end, ok := AsEndState(m.state); ok {
		return end, true, nil
	}
	return 0, false, nil
}

func annotateInvariant(err error, tape int, step uint64) error {
	if ie, ok := err.(*InvariantError); ok {
		ie.Tape = tape
		ie.Step = step
		return ie
	}
	return err
}

// Accepts runs the machine on input and reports whether it halted in Accept.
func (m *Machine) Accepts(input []Symbol) (bool, error) {
	end, err := m.Run(input)
	if err != nil {
		return false, err
	}
	return end == Accept, nil
}

// Rejects runs the machine on input and reports whether it halted in Reject.
func (m *Machine) Rejects(input []Symbol) (bool, error) {
	end, err := m.Run(input)
	if err != nil {
		return false, err
	}
	return end == Reject, nil
}

// Result runs the machine on input and returns the designated output tape's
// output if the machine halts via Halt, or "" if it Accepts or Rejects
// instead. The designated output tape is the last tape (tape k-1), per the
// convention spec §4.4 assumes for the compiler's source machines.
func (m *Machine) Result(input []Symbol) (string, error) {
	end, err := m.Run(input)
	if err != nil {
		return "", err
	}
	if end != Halt {
		return "", nil
	}
	return m.tapes[len(m.tapes)-1].Output(), nil
}

// Runtime runs the machine on input and returns the number of steps taken to
// reach a terminal state.
func (m *Machine) Runtime(input []Symbol) (uint64, error) {
	if _, err := m.Run(input); err != nil {
		return 0, err
	}
	return m.steps, nil
}

// LastStepCount returns the step count from the most recent Run/RunCtx call,
// without needing a second run the way recomputing runtime() would.
func (m *Machine) LastStepCount() uint64 {
	return m.steps
}

// Tape returns the i'th tape from the most recent run, for inspection after
// Run/RunCtx returns (e.g. to read an output tape other than the last, or to
// render a snapshot).
func (m *Machine) Tape(i int) Tape {
	return m.tapes[i]
}

// Snapshot renders every tape alongside the current state and step count,
// in the style of a full machine configuration dump.
func (m *Machine) Snapshot() string {
	s := "step: " + strconv.FormatUint(m.steps, 10) + ", state: " + m.state.String() + "\ntapes:\n"
	for _, tape := range m.tapes {
		s += tape.Render() + "\n"
	}
	return s
}
