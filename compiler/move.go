package compiler

import (
	turing "github.com/turinglab/tm"
)

// getOrCreateMoveState is the compiler's Moving-Right/Moving-Left map:
// (sweep direction, source next-state, per-tape direction vector, currently
// carried head-bits) → compiled state. A tape whose direction is Right (resp.
// Left) has its head-marker picked up from the column Write left it at and
// carried one column further right (resp. left) before being dropped back
// onto the tape; a tape whose direction is Neutral never moves, so its
// marker is untouched throughout (spec §4.4 Moving phases).
func (c *Compiler) getOrCreateMoveState(sweep turing.Direction, next turing.State, dirs []turing.Direction, carried []bool) turing.ActiveState {
	key := sweep.String() + "\x00" + next.String() + "\x00" + encodeDirs(dirs) + "\x00" + encodeBits(carried)
	if id, ok := c.moveStates[key]; ok {
		return id
	}
	id := c.alloc()
	c.moveStates[key] = id
	dirsCopy := append([]turing.Direction(nil), dirs...)
	carriedCopy := append([]bool(nil), carried...)
	c.enqueue(func() { c.buildMoveState(id, sweep, next, dirsCopy, carriedCopy) })
	return id
}

func (c *Compiler) buildMoveState(id turing.ActiveState, sweep turing.Direction, next turing.State, dirs []turing.Direction, carried []bool) {
	if sweep == turing.Right {
		c.buildMoveRight(id, next, dirs, carried)
		return
	}
	c.buildMoveLeft(id, next, dirs, carried)
}

// buildMoveRight sweeps right picking up any tape whose direction is Right
// from the column it's currently marked at, dropping any tape it was already
// carrying one column further over. A tape whose direction is Neutral (or
// Left, until Move-Left's own sweep) keeps its marker exactly where it is —
// only a tape actually being carried this sweep loses its old mark. At the
// frontier it either keeps growing right (still carrying something) or
// reverses into Move-Left (empty-handed).
func (c *Compiler) buildMoveRight(id turing.ActiveState, next turing.State, dirs []turing.Direction, carried []bool) {
	for _, heads := range bitCombos(c.k) {
		for _, cells := range cartesian(c.cellAlphabet, c.k) {
			if allBlank(cells) {
				continue // frontier, handled below
			}
			outHeads := make([]bool, c.k)
			nextCarried := make([]bool, c.k)
			for t := 0; t < c.k; t++ {
				dropHere := carried[t]
				pickUpHere := heads[t] && dirs[t] == turing.Right
				outHeads[t] = dropHere || (heads[t] && !pickUpHere)
				nextCarried[t] = pickUpHere
			}
			sym := compressedSymbol{heads: heads, cells: cells}.encode()
			out := compressedSymbol{heads: outHeads, cells: cells}.encode()
			nextState := c.getOrCreateMoveState(turing.Right, next, dirs, nextCarried)
			c.insert(
				turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
				turing.TransitionOut{Next: nextState, Actions: []turing.Action{{Write: out, Move: turing.Right}}},
			)
		}
	}

	// Frontier: every tape's cell-symbol is blank, whether rendered as the
	// proper all-blank compressed symbol (any head pattern — a tape may sit
	// at its own right edge) or as the raw Blank the underlying tape's
	// auto-grow produces the first time the head passes its materialized end.
	for _, heads := range bitCombos(c.k) {
		c.buildMoveRightFrontier(id, next, dirs, carried, blankSymbol(c.k, heads), heads)
	}
	c.buildMoveRightFrontier(id, next, dirs, carried, turing.Blank, allFalse(c.k))
}

func (c *Compiler) buildMoveRightFrontier(id turing.ActiveState, next turing.State, dirs []turing.Direction, carried []bool, sym turing.Symbol, heads []bool) {
	outHeads := make([]bool, c.k)
	nextCarried := make([]bool, c.k)
	stillCarrying := false
	for t := 0; t < c.k; t++ {
		dropHere := carried[t]
		pickUpHere := heads[t] && dirs[t] == turing.Right
		outHeads[t] = dropHere || (heads[t] && !pickUpHere)
		nextCarried[t] = pickUpHere
		if pickUpHere {
			stillCarrying = true
		}
	}
	out := blankSymbol(c.k, outHeads)

	if stillCarrying {
		nextState := c.getOrCreateMoveState(turing.Right, next, dirs, nextCarried)
		c.insert(
			turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
			turing.TransitionOut{Next: nextState, Actions: []turing.Action{{Write: out, Move: turing.Right}}},
		)
		return
	}

	moveLeft := c.getOrCreateMoveState(turing.Left, next, dirs, allFalse(c.k))
	c.insert(
		turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
		turing.TransitionOut{Next: moveLeft, Actions: []turing.Action{{Write: out, Move: turing.Left}}},
	)
}

// buildMoveLeft sweeps left symmetrically to buildMoveRight — a tape not
// being carried this sweep keeps its marker untouched — needing no growth
// handling since physical position 1 is a fixed left boundary. At the
// all-S start column any still-carried heads are dropped there, and the
// macro-cycle either hands off to Cleanup (source halted via Halt), the
// matching terminal state directly (Accept/Reject, kept defensively though
// Write's short-circuit means this is unreachable in practice), or back to
// Read for the source's next active state.
func (c *Compiler) buildMoveLeft(id turing.ActiveState, next turing.State, dirs []turing.Direction, carried []bool) {
	for _, heads := range bitCombos(c.k) {
		for _, cells := range cartesian(c.cellAlphabet, c.k) {
			if allBlank(cells) {
				continue // Move-Left never revisits the frontier
			}
			outHeads := make([]bool, c.k)
			nextCarried := make([]bool, c.k)
			for t := 0; t < c.k; t++ {
				dropHere := carried[t]
				pickUpHere := heads[t] && dirs[t] == turing.Left
				outHeads[t] = dropHere || (heads[t] && !pickUpHere)
				nextCarried[t] = pickUpHere
			}
			sym := compressedSymbol{heads: heads, cells: cells}.encode()
			out := compressedSymbol{heads: outHeads, cells: cells}.encode()
			nextState := c.getOrCreateMoveState(turing.Left, next, dirs, nextCarried)
			c.insert(
				turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
				turing.TransitionOut{Next: nextState, Actions: []turing.Action{{Write: out, Move: turing.Left}}},
			)
		}
	}

	for _, heads := range bitCombos(c.k) {
		pickUpHere := make([]bool, c.k)
		for t := 0; t < c.k; t++ {
			pickUpHere[t] = heads[t] && dirs[t] == turing.Left
		}
		outHeads := make([]bool, c.k)
		for t := 0; t < c.k; t++ {
			outHeads[t] = carried[t] || pickUpHere[t]
		}
		sym := startSymbol(c.k, heads)
		out := startSymbol(c.k, outHeads)

		nextState := c.moveLeftDone(next)
		c.insert(
			turing.TransitionIn{State: id, Read: []turing.Symbol{sym}},
			turing.TransitionOut{Next: nextState, Actions: []turing.Action{{Write: out, Move: turing.Right}}},
		)
	}
}

// moveLeftDone resolves what Move-Left hands off to once it reaches the
// start column, based on the source machine's next state.
func (c *Compiler) moveLeftDone(next turing.State) turing.State {
	if end, ok := turing.AsEndState(next); ok {
		if end == turing.Halt {
			return c.getOrCreateCleanupState()
		}
		return end
	}
	active, _ := turing.AsActiveState(next)
	return c.getOrCreateReadState(active, unfilledSave(c.k))
}
