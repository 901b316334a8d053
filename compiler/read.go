package compiler

import (
	turing "github.com/turinglab/tm"
)

// getOrCreateReadState is the compiler's Reading map: (source state, partial
// save vector) → compiled state. save holds, for each tape, either the
// cell-symbol already captured at that tape's marked head column or
// unfilledSentinel if the sweep hasn't reached it yet. Reading sweeps right
// from the all-S start symbol, filling in save as marked columns go by, and
// at the terminating all-blank column completes any still-unfilled slots
// with Blank (a tape whose head already sits at its own right edge reads
// Blank there, which is exactly the value Read would have recorded anyway)
// before consulting the source table (spec §4.4 Reading phase).
func (c *Compiler) getOrCreateReadState(state turing.ActiveState, save []turing.Symbol) turing.ActiveState {
	key := state.String() + "\x00" + encodeSave(save)
	if id, ok := c.readStates[key]; ok {
		return id
	}
	id := c.alloc()
	c.readStates[key] = id
	saveCopy := append([]turing.Symbol(nil), save...)
	c.enqueue(func() { c.buildReadState(id, state, saveCopy) })
	return id
}

func (c *Compiler) buildReadState(id turing.ActiveState, state turing.ActiveState, save []turing.Symbol) {
	// The all-S start symbol only appears here when this is the very first
	// read of a macro-cycle (save is all-unfilled); sweeping right over it
	// changes nothing.
	for _, heads := range bitCombos(c.k) {
		sym := startSymbol(c.k, heads)
		next := c.getOrCreateReadState(state, save)
		c.insert(
			turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
			turing.TransitionOut{Next: next, Actions: []turing.Action{{Write: sym, Move: turing.Right}}},
		)
	}

	for _, heads := range bitCombos(c.k) {
		for _, cells := range cartesian(c.cellAlphabet, c.k) {
			if allBlank(cells) {
				continue // terminating column, handled separately below
			}
			sym := compressedSymbol{heads: heads, cells: cells}.encode()

			updated := append([]turing.Symbol(nil), save...)
			skip := false
			for t := 0; t < c.k; t++ {
				if !heads[t] {
					continue
				}
				if save[t] != unfilledSentinel {
					// This tape's head is already marked at an earlier column
					// too — an unreachable combination under the compiled
					// invariants. Omit it; it inherits implicit Reject.
					skip = true
					break
				}
				updated[t] = cells[t]
			}
			if skip {
				continue
			}
			next := c.getOrCreateReadState(state, updated)
			c.insert(
				turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
				turing.TransitionOut{Next: next, Actions: []turing.Action{{Write: sym, Move: turing.Right}}},
			)
		}
	}

	// Terminating column: every tape's cell-symbol is Blank. Complete any
	// still-unfilled slots with Blank, look up the source transition, and
	// hand off to Write sweeping left. Enumerate every head pattern — a
	// tape's own head can legitimately sit exactly at this frontier column.
	for _, heads := range bitCombos(c.k) {
		completed := append([]turing.Symbol(nil), save...)
		skip := false
		for t := 0; t < c.k; t++ {
			if heads[t] {
				if completed[t] != unfilledSentinel {
					skip = true
					break
				}
				completed[t] = turing.Blank
			} else if completed[t] == unfilledSentinel {
				completed[t] = turing.Blank
			}
		}
		if skip {
			continue
		}
		if !c.src.Has(state, completed) {
			continue // implicit Reject: no compiled transition emitted
		}
		out := c.src.Lookup(state, completed)
		sym := blankSymbol(c.k, heads)
		// A head marked on this column gets its write applied here, since
		// Write's leftward sweep starts one column further left.
		written := make([]turing.Symbol, c.k)
		for t := 0; t < c.k; t++ {
			written[t] = turing.Blank
			if heads[t] {
				written[t] = out.Actions[t].Write
			}
			if written[t] == turing.StartSentinel {
				skip = true // writing S outside column 0: omit, implicit Reject
			}
		}
		if skip {
			continue
		}
		here := compressedSymbol{heads: heads, cells: written}.encode()
		next := c.getOrCreateWriteState(out.Next, out.Actions)
		c.insert(
			turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
			turing.TransitionOut{Next: next, Actions: []turing.Action{{Write: here, Move: turing.Left}}},
		)
		if !anyTrue(heads) {
			// The raw Blank the tape grows into past its materialized end is
			// the same terminating column; write it back in compressed form.
			c.insert(
				turing.TransitionIn{State: id, Read: []turing.Symbol{turing.Blank}},
				turing.TransitionOut{Next: next, Actions: []turing.Action{{Write: sym, Move: turing.Left}}},
			)
		}
	}
}
