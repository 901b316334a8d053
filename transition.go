package turing

import (
	"fmt"
	"strings"
)

// Action is a single tape's contribution to a transition's output: the
// symbol to write and the direction to move afterward.
type Action struct {
	Write Symbol
	Move  Direction
}

// TransitionIn is the lookup key for a transition: the current state and the
// vector of symbols read from each tape, in tape order.
type TransitionIn struct {
	State ActiveState
	Read  []Symbol
}

// TransitionOut is the result of a transition: the next state (which may be
// terminal) and the per-tape actions to apply, in tape order.
type TransitionOut struct {
	Next    State
	Actions []Action
}

// key renders a TransitionIn as a comparable map key. Symbol is already a
// string type, so joining with a separator not expected in any symbol name
// gives a cheap, collision-free key without a nested map layer.
func (in TransitionIn) key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", int(in.State))
	for _, s := range in.Read {
		b.WriteByte(0)
		b.WriteString(string(s))
	}
	return b.String()
}

// TransitionTable is a pure mapping from (state, read-vector) to (next
// state, write-vector, direction-vector), defaulting to reject-in-place for
// any key it was never given.
type TransitionTable struct {
	Tapes    int
	entries  map[string]TransitionOut
	inserted []TransitionIn // insertion order, for serialization only
}

// NewTransitionTable creates an empty table over the given number of tapes.
func NewTransitionTable(tapes int) (*TransitionTable, error) {
	if tapes < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTapeCount, tapes)
	}
	return &TransitionTable{
		Tapes:   tapes,
		entries: make(map[string]TransitionOut),
	}, nil
}

// Insert replaces any prior entry at in's key with out. Vector lengths are
// validated against the table's declared tape count.
func (t *TransitionTable) Insert(in TransitionIn, out TransitionOut) error {
	if len(in.Read) != t.Tapes {
		return fmt.Errorf("%w: read vector has %d entries, want %d", ErrVectorLength, len(in.Read), t.Tapes)
	}
	if len(out.Actions) != t.Tapes {
		return fmt.Errorf("%w: action vector has %d entries, want %d", ErrVectorLength, len(out.Actions), t.Tapes)
	}
	key := in.key()
	if _, exists := t.entries[key]; !exists {
		t.inserted = append(t.inserted, in)
	}
	t.entries[key] = out
	return nil
}

// Lookup returns the stored transition for (state, read), or the implicit
// default (Reject, every tape keeps its symbol and stays put) if none was
// stored. Lookup never fails.
func (t *TransitionTable) Lookup(state ActiveState, read []Symbol) TransitionOut {
	key := TransitionIn{State: state, Read: read}.key()
	if out, ok := t.entries[key]; ok {
		return out
	}
	actions := make([]Action, len(read))
	for i, sym := range read {
		actions[i] = Action{Write: sym, Move: Neutral}
	}
	return TransitionOut{Next: Reject, Actions: actions}
}

// Has reports whether a transition was explicitly stored for (state, read),
// distinguishing a stored-Reject entry from the implicit default.
func (t *TransitionTable) Has(state ActiveState, read []Symbol) bool {
	_, ok := t.entries[TransitionIn{State: state, Read: read}.key()]
	return ok
}

// Entries iterates stored entries in insertion order. Algorithms must not
// depend on any ordering beyond "consistent with the order they were
// inserted"; this exists for serialization only.
func (t *TransitionTable) Entries() []struct {
	In  TransitionIn
	Out TransitionOut
} {
	out := make([]struct {
		In  TransitionIn
		Out TransitionOut
	}, 0, len(t.inserted))
	for _, in := range t.inserted {
		out = append(out, struct {
			In  TransitionIn
			Out TransitionOut
		}{In: in, Out: t.entries[in.key()]})
	}
	return out
}

// Len returns the number of explicitly stored transitions.
func (t *TransitionTable) Len() int {
	return len(t.entries)
}

// States returns the distinct non-terminal states referenced anywhere in the
// table, either as a key's state or as an entry's next state.
func (t *TransitionTable) States() map[ActiveState]struct{} {
	states := make(map[ActiveState]struct{})
	for _, in := range t.inserted {
		states[in.State] = struct{}{}
		if active, ok := AsActiveState(t.entries[in.key()].Next); ok {
			states[active] = struct{}{}
		}
	}
	return states
}
