package compiler

import (
	turing "github.com/turinglab/tm"
)

// buildInitCopy wires the one-time startup pass that turns the compiled
// tape's raw seeded input (S, raw_0, ..., raw_n-1, _ — exactly what
// turing.Machine.reset gives any tape) into the compressed layout Read
// expects: the all-S compressed symbol at physical position 1 (conceptual
// column 0), then each raw symbol shifted one cell right into its own
// compressed symbol, heads marked at conceptual column 1 for every tape
// (every source tape's head starts there, per the same head=1 convention
// turing.Tape uses for every tape it constructs) and unmarked afterward
// (spec §4.4 steps 1-5).
//
// This always allocates compiled state 0 first, matching
// turing.Machine.reset's fixed ActiveState(0) entry point.
func (c *Compiler) buildInitCopy() {
	start := c.alloc() // ActiveState(0): the compiled machine's entry point.

	for _, sym := range c.cellAlphabet {
		if sym == turing.Blank {
			c.buildEmptyInputShortCircuit(start)
			continue
		}
		next := c.copyState(sym, false)
		c.insert(
			turing.TransitionIn{State: start, Read: []turing.Symbol{sym}},
			turing.TransitionOut{
				Next:    next,
				Actions: []turing.Action{{Write: startSymbol(c.k, allFalse(c.k)), Move: turing.Right}},
			},
		)
	}
}

// buildEmptyInputShortCircuit handles spec §4.4 step 5: an empty raw input
// (position 1 already blank) skips the shift-and-reverse loop entirely.
func (c *Compiler) buildEmptyInputShortCircuit(start turing.ActiveState) {
	empty := c.alloc()
	c.insert(
		turing.TransitionIn{State: start, Read: []turing.Symbol{turing.Blank}},
		turing.TransitionOut{
			Next:    empty,
			Actions: []turing.Action{{Write: startSymbol(c.k, allFalse(c.k)), Move: turing.Right}},
		},
	)

	sweepLeft := c.sweepLeftState()
	c.insert(
		turing.TransitionIn{State: empty, Read: []turing.Symbol{turing.Blank}},
		turing.TransitionOut{
			Next:    sweepLeft,
			Actions: []turing.Action{{Write: blankSymbol(c.k, allTrue(c.k)), Move: turing.Left}},
		},
	)
}

// copyState is the compiler's Copying map: (remembered source symbol,
// placed-first?) → state, for the rightward shift-and-mark pass. placedFirst
// is false only for the very first compressed cell written (conceptual
// column 1, where every tape's head starts) and true for every one after.
func (c *Compiler) copyState(remembered turing.Symbol, placedFirst bool) turing.ActiveState {
	key := "copy\x00" + string(remembered) + "\x00" + encodeBits([]bool{placedFirst})
	if id, ok := c.copyStates[key]; ok {
		return id
	}
	id := c.alloc()
	c.copyStates[key] = id
	c.enqueue(func() { c.buildCopyState(id, remembered, placedFirst) })
	return id
}

func (c *Compiler) buildCopyState(id turing.ActiveState, remembered turing.Symbol, placedFirst bool) {
	heads := allFalse(c.k)
	if !placedFirst {
		heads = allTrue(c.k)
	}
	cells := make([]turing.Symbol, c.k)
	cells[0] = remembered
	for i := 1; i < c.k; i++ {
		cells[i] = turing.Blank
	}
	placed := compressedSymbol{heads: heads, cells: cells}.encode()

	for _, sym := range c.cellAlphabet {
		if sym == turing.Blank {
			sweepLeft := c.sweepLeftState()
			c.insert(
				turing.TransitionIn{State: id, Read: []turing.Symbol{turing.Blank}},
				turing.TransitionOut{Next: sweepLeft, Actions: []turing.Action{{Write: placed, Move: turing.Left}}},
			)
			continue
		}
		next := c.copyState(sym, true)
		c.insert(
			turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
			turing.TransitionOut{Next: next, Actions: []turing.Action{{Write: placed, Move: turing.Right}}},
		)
	}
}

// sweepLeftState is the single fixed state that scans leftward (writing
// nothing further) until it finds the all-S compressed symbol at physical
// position 1, then hands off to Read for source state 0 — spec §4.4 step 4.
func (c *Compiler) sweepLeftState() turing.ActiveState {
	const key = "sweepLeft"
	if id, ok := c.copyStates[key]; ok {
		return id
	}
	id := c.alloc()
	c.copyStates[key] = id
	c.enqueue(func() { c.buildSweepLeft(id) })
	return id
}

func (c *Compiler) buildSweepLeft(id turing.ActiveState) {
	for _, heads := range bitCombos(c.k) {
		sym := startSymbol(c.k, heads)
		readEntry := c.getOrCreateReadState(turing.ActiveState(0), unfilledSave(c.k))
		c.insert(
			turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
			turing.TransitionOut{Next: readEntry, Actions: []turing.Action{{Write: sym, Move: turing.Right}}},
		)
	}

	// Every other compressed symbol Init-Copy could have produced: keep
	// sweeping left. Only tape 0 ever carries real data during this pass, so
	// only the heads=all-true (the very first placed cell) and heads=all-false
	// (every later one) patterns actually occur.
	for _, heads := range [][]bool{allFalse(c.k), allTrue(c.k)} {
		for _, sym0 := range c.cellAlphabet {
			cells := make([]turing.Symbol, c.k)
			cells[0] = sym0
			for i := 1; i < c.k; i++ {
				cells[i] = turing.Blank
			}
			sym := compressedSymbol{heads: heads, cells: cells}.encode()
			c.insert(
				turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
				turing.TransitionOut{Next: id, Actions: []turing.Action{{Write: sym, Move: turing.Left}}},
			)
		}
	}
}
