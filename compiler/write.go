package compiler

import (
	turing "github.com/turinglab/tm"
)

// getOrCreateWriteState is the compiler's Writing map: (source next-state,
// action vector) → compiled state. Writing sweeps left from the terminating
// blank column, overwriting each marked head's cell-symbol with that tape's
// looked-up write value, until it reaches the all-S start symbol. If next is
// Accept or Reject, the compiled tape's contents no longer matter, so Write
// hands off directly to that terminal state instead of running Move-Right,
// Move-Left, and Cleanup for no observable benefit (spec §4.4 Writing phase;
// the short-circuit is a deliberate simplification — accept/reject
// correctness never depends on tape mechanics).
func (c *Compiler) getOrCreateWriteState(next turing.State, actions []turing.Action) turing.ActiveState {
	key := next.String() + "\x00" + encodeActions(actions)
	if id, ok := c.writeStates[key]; ok {
		return id
	}
	id := c.alloc()
	c.writeStates[key] = id
	actionsCopy := append([]turing.Action(nil), actions...)
	c.enqueue(func() { c.buildWriteState(id, next, actionsCopy) })
	return id
}

func (c *Compiler) buildWriteState(id turing.ActiveState, next turing.State, actions []turing.Action) {
	if end, ok := turing.AsEndState(next); ok && end != turing.Halt {
		c.buildWriteTerminal(id, end, actions)
		return
	}

	for _, heads := range bitCombos(c.k) {
		for _, cells := range cartesian(c.cellAlphabet, c.k) {
			written := append([]turing.Symbol(nil), cells...)
			introducesStart := false
			for t := 0; t < c.k; t++ {
				if !heads[t] {
					continue
				}
				if actions[t].Write == turing.StartSentinel {
					// Writing S outside column 0 can never happen on a real
					// tape; omit, inheriting implicit Reject.
					introducesStart = true
					break
				}
				written[t] = actions[t].Write
			}
			if introducesStart {
				continue
			}
			sym := compressedSymbol{heads: heads, cells: cells}.encode()
			out := compressedSymbol{heads: heads, cells: written}.encode()
			c.insert(
				turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
				turing.TransitionOut{Next: id, Actions: []turing.Action{{Write: out, Move: turing.Left}}},
			)
		}
	}

	for _, heads := range bitCombos(c.k) {
		sym := startSymbol(c.k, heads)
		if anyTrue(heads) {
			continue // start column never carries a marked head in practice
		}
		moveRight := c.getOrCreateMoveState(turing.Right, next, dirsOf(actions), allFalse(c.k))
		c.insert(
			turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
			turing.TransitionOut{Next: moveRight, Actions: []turing.Action{{Write: sym, Move: turing.Right}}},
		)
	}
}

func (c *Compiler) buildWriteTerminal(id turing.ActiveState, end turing.EndState, actions []turing.Action) {
	for _, heads := range bitCombos(c.k) {
		for _, cells := range cartesian(c.cellAlphabet, c.k) {
			sym := compressedSymbol{heads: heads, cells: cells}.encode()
			c.insert(
				turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
				turing.TransitionOut{Next: end, Actions: []turing.Action{{Write: sym, Move: turing.Neutral}}},
			)
		}
		sym := startSymbol(c.k, heads)
		c.insert(
			turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
			turing.TransitionOut{Next: end, Actions: []turing.Action{{Write: sym, Move: turing.Neutral}}},
		)
	}
}

// dirsOf extracts the per-tape move directions from an action vector.
func dirsOf(actions []turing.Action) []turing.Direction {
	dirs := make([]turing.Direction, len(actions))
	for i, a := range actions {
		dirs[i] = a.Move
	}
	return dirs
}
