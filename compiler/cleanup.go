package compiler

import (
	turing "github.com/turinglab/tm"
)

// getOrCreateCleanupState returns Cleanup's single entry state: a rightward
// sweep, starting at physical position 2 (conceptual column 1, the first
// column after the all-S start symbol — exactly where Move-Left's final
// Move:Right handoff lands), that rewrites every compressed symbol unchanged
// until it finds the all-blank column at the right end of the compressed
// tape, then hands off to the leftward shift, which turns every column back
// into the output tape's raw symbol (spec §4.4 Cleanup phase).
func (c *Compiler) getOrCreateCleanupState() turing.ActiveState {
	const key = "cleanupSweepRight"
	if id, ok := c.cleanupStates[key]; ok {
		return id
	}
	id := c.alloc()
	c.cleanupStates[key] = id
	c.enqueue(func() { c.buildCleanupSweepRight(id) })
	return id
}

func (c *Compiler) buildCleanupSweepRight(id turing.ActiveState) {
	for _, heads := range bitCombos(c.k) {
		for _, cells := range cartesian(c.cellAlphabet, c.k) {
			sym := compressedSymbol{heads: heads, cells: cells}.encode()
			if allBlank(cells) {
				shift := c.shiftState(turing.Blank)
				c.insert(
					turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
					turing.TransitionOut{Next: shift, Actions: []turing.Action{{Write: turing.Blank, Move: turing.Left}}},
				)
				continue
			}
			c.insert(
				turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
				turing.TransitionOut{Next: id, Actions: []turing.Action{{Write: sym, Move: turing.Right}}},
			)
		}
	}
}

// shiftState is the compiler's leftward shift-extraction map, keyed by the
// raw output symbol captured one column to the right. Each step writes that
// remembered symbol here — collapsing this compressed column down to the
// single raw symbol belonging one position to its right, since the compiled
// tape's physical position p holds conceptual column p-1 — and computes the
// next remembered value directly from the compressed symbol it just read, so
// no runtime read-after-write ordering is needed (the same technique
// Init-Copy's shift-right pass uses, mirrored leftward).
func (c *Compiler) shiftState(remembered turing.Symbol) turing.ActiveState {
	key := "shift\x00" + string(remembered)
	if id, ok := c.cleanupStates[key]; ok {
		return id
	}
	id := c.alloc()
	c.cleanupStates[key] = id
	c.enqueue(func() { c.buildShiftState(id, remembered) })
	return id
}

func (c *Compiler) buildShiftState(id turing.ActiveState, remembered turing.Symbol) {
	for _, heads := range bitCombos(c.k) {
		for _, cells := range cartesian(c.cellAlphabet, c.k) {
			sym := compressedSymbol{heads: heads, cells: cells}.encode()
			next := c.shiftState(cells[c.outputTape])
			c.insert(
				turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
				turing.TransitionOut{Next: next, Actions: []turing.Action{{Write: remembered, Move: turing.Left}}},
			)
		}
	}

	// A raw Blank is accepted too, and shifted like a column whose output
	// cell is Blank.
	blankNext := c.shiftState(turing.Blank)
	c.insert(
		turing.TransitionIn{State: id, Read: []turing.Symbol{turing.Blank}},
		turing.TransitionOut{Next: blankNext, Actions: []turing.Action{{Write: remembered, Move: turing.Left}}},
	)

	for _, heads := range bitCombos(c.k) {
		sym := startSymbol(c.k, heads)
		c.insert(
			turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
			turing.TransitionOut{Next: turing.Halt, Actions: []turing.Action{{Write: remembered, Move: turing.Neutral}}},
		)
	}
}
