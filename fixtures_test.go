package turing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	turing "github.com/turinglab/tm"
)

// newUnaryCounterTable builds the scenario-1 machine: every input symbol
// becomes '1', halting with output "111...1" matching the input length.
func newUnaryCounterTable(t *testing.T) *turing.TransitionTable {
	t.Helper()
	table, err := turing.NewTransitionTable(1)
	require.NoError(t, err)

	insert := func(read turing.Symbol, next turing.State, write turing.Symbol, dir turing.Direction) {
		err := table.Insert(
			turing.TransitionIn{State: 0, Read: []turing.Symbol{read}},
			turing.TransitionOut{Next: next, Actions: []turing.Action{{Write: write, Move: dir}}},
		)
		require.NoError(t, err)
	}
	insert("0", turing.ActiveState(0), "1", turing.Right)
	insert("1", turing.ActiveState(0), "1", turing.Right)
	insert(turing.Blank, turing.Halt, turing.Blank, turing.Neutral)
	return table
}

// newEqualCountsTable builds the scenario-2 machine: accepts exactly
// {0^n 1^n 0^n : n >= 0} on a single tape, by marking matched triples with
// X (first block), Y (second block), Z (third block).
func newEqualCountsTable(t *testing.T) *turing.TransitionTable {
	t.Helper()
	table, err := turing.NewTransitionTable(1)
	require.NoError(t, err)

	const (
		q0 = turing.ActiveState(0) // seek next unmarked leading 0
		q1 = turing.ActiveState(1) // seek matching 1, skipping 0s and Ys
		q2 = turing.ActiveState(2) // seek matching trailing 0, skipping 1s and Zs
		q3 = turing.ActiveState(3) // return to q0's start
		q4 = turing.ActiveState(4) // verify no unmarked symbols remain
	)

	insert := func(state turing.ActiveState, read turing.Symbol, next turing.State, write turing.Symbol, dir turing.Direction) {
		err := table.Insert(
			turing.TransitionIn{State: state, Read: []turing.Symbol{read}},
			turing.TransitionOut{Next: next, Actions: []turing.Action{{Write: write, Move: dir}}},
		)
		require.NoError(t, err)
	}

	insert(q0, "X", q0, "X", turing.Right)
	insert(q0, "0", q1, "X", turing.Right)
	insert(q0, "Y", q4, "Y", turing.Right)
	insert(q0, turing.Blank, turing.Accept, turing.Blank, turing.Neutral)

	insert(q1, "0", q1, "0", turing.Right)
	insert(q1, "Y", q1, "Y", turing.Right)
	insert(q1, "1", q2, "Y", turing.Right)

	insert(q2, "1", q2, "1", turing.Right)
	insert(q2, "Y", q2, "Y", turing.Right)
	insert(q2, "Z", q2, "Z", turing.Right)
	insert(q2, "0", q3, "Z", turing.Left)

	insert(q3, "X", q0, "X", turing.Right)
	insert(q3, "0", q3, "0", turing.Left)
	insert(q3, "1", q3, "1", turing.Left)
	insert(q3, "Y", q3, "Y", turing.Left)
	insert(q3, "Z", q3, "Z", turing.Left)

	insert(q4, "Y", q4, "Y", turing.Right)
	insert(q4, "Z", q4, "Z", turing.Right)
	insert(q4, turing.Blank, turing.Accept, turing.Blank, turing.Neutral)

	return table
}

// newCopyMachineTable builds the scenario-4 machine: a 2-tape machine that
// halts with tape 0's input copied unchanged onto tape 1.
func newCopyMachineTable(t *testing.T) *turing.TransitionTable {
	t.Helper()
	table, err := turing.NewTransitionTable(2)
	require.NoError(t, err)

	insert := func(read turing.Symbol, next turing.State, write turing.Symbol, dir turing.Direction) {
		err := table.Insert(
			turing.TransitionIn{State: 0, Read: []turing.Symbol{read, turing.Blank}},
			turing.TransitionOut{
				Next: next,
				Actions: []turing.Action{
					{Write: read, Move: dir},
					{Write: write, Move: dir},
				},
			},
		)
		require.NoError(t, err)
	}
	insert("0", turing.ActiveState(0), "0", turing.Right)
	insert("1", turing.ActiveState(0), "1", turing.Right)
	insert(turing.Blank, turing.Halt, turing.Blank, turing.Neutral)
	return table
}

// newBinaryAdditionTable builds the scenario-3 machine: a 5-tape machine
// reading "x$y" (LSB on the right) on tape 0 and halting with x+y in binary
// on tape 4 (the designated output tape).
//
// Tape roles: 0 = frozen input scratch, 1 = x scan (copy of the full
// input, walked right-to-left over x's digits), 2 = y scan (copy of the
// full input, walked right-to-left over y's digits), 3 = sum scratch built
// least-significant-digit first, 4 = output built most-significant-digit
// first by a reversing copy of tape 3.
func newBinaryAdditionTable(t *testing.T) *turing.TransitionTable {
	t.Helper()
	table, err := turing.NewTransitionTable(5)
	require.NoError(t, err)

	const (
		sCopy    = turing.ActiveState(0)
		sSeekX   = turing.ActiveState(1)
		sAdd0    = turing.ActiveState(2)
		sAdd1    = turing.ActiveState(3)
		sRevSeek = turing.ActiveState(4)
		sRevCopy = turing.ActiveState(5)
	)

	insert := func(state turing.ActiveState, read []turing.Symbol, next turing.State, actions []turing.Action) {
		err := table.Insert(
			turing.TransitionIn{State: state, Read: read},
			turing.TransitionOut{Next: next, Actions: actions},
		)
		require.NoError(t, err)
	}

	// S_COPY: duplicate tape 0 onto tapes 1 and 2 until the blank.
	for _, sym := range []turing.Symbol{"0", "1", "$"} {
		insert(sCopy,
			[]turing.Symbol{sym, turing.Blank, turing.Blank, turing.Blank, turing.Blank},
			sCopy,
			[]turing.Action{
				{Write: sym, Move: turing.Right},
				{Write: sym, Move: turing.Right},
				{Write: sym, Move: turing.Right},
				{Write: turing.Blank, Move: turing.Neutral},
				{Write: turing.Blank, Move: turing.Neutral},
			},
		)
	}
	insert(sCopy,
		[]turing.Symbol{turing.Blank, turing.Blank, turing.Blank, turing.Blank, turing.Blank},
		sSeekX,
		[]turing.Action{
			{Write: turing.Blank, Move: turing.Neutral},
			{Write: turing.Blank, Move: turing.Left},
			{Write: turing.Blank, Move: turing.Left},
			{Write: turing.Blank, Move: turing.Neutral},
			{Write: turing.Blank, Move: turing.Neutral},
		},
	)

	// S_SEEK_X: walk tape 1 left past y's digits and the separator, to land
	// on x's last digit; tape 2 is already on y's last digit and stays put.
	for _, t2sym := range []turing.Symbol{"0", "1"} {
		for _, t1sym := range []turing.Symbol{"0", "1"} {
			insert(sSeekX,
				[]turing.Symbol{turing.Blank, t1sym, t2sym, turing.Blank, turing.Blank},
				sSeekX,
				[]turing.Action{
					{Write: turing.Blank, Move: turing.Neutral},
					{Write: t1sym, Move: turing.Left},
					{Write: t2sym, Move: turing.Neutral},
					{Write: turing.Blank, Move: turing.Neutral},
					{Write: turing.Blank, Move: turing.Neutral},
				},
			)
		}
		insert(sSeekX,
			[]turing.Symbol{turing.Blank, "$", t2sym, turing.Blank, turing.Blank},
			sAdd0,
			[]turing.Action{
				{Write: turing.Blank, Move: turing.Neutral},
				{Write: "$", Move: turing.Left},
				{Write: t2sym, Move: turing.Neutral},
				{Write: turing.Blank, Move: turing.Neutral},
				{Write: turing.Blank, Move: turing.Neutral},
			},
		)
	}

	// S_ADD{0,1}: add one column per step, carrying between steps via the
	// state itself; 'S' on tape 1 / '$' on tape 2 mean that operand is
	// exhausted and contributes a 0 bit from then on.
	addStep := func(carryIn int, t1sym, t2sym turing.Symbol) {
		state := sAdd0
		if carryIn == 1 {
			state = sAdd1
		}
		exhaustedX := t1sym == turing.StartSentinel
		exhaustedY := t2sym == "$"
		if exhaustedX && exhaustedY {
			// Both operands exhausted: emit the final carry bit (if any)
			// and move on to reversing tape 3 into the output tape.
			actions3 := turing.Action{Write: turing.Blank, Move: turing.Neutral}
			if carryIn == 1 {
				actions3 = turing.Action{Write: "1", Move: turing.Right}
			}
			insert(state,
				[]turing.Symbol{turing.Blank, t1sym, t2sym, turing.Blank, turing.Blank},
				sRevSeek,
				[]turing.Action{
					{Write: turing.Blank, Move: turing.Neutral},
					{Write: t1sym, Move: turing.Neutral},
					{Write: t2sym, Move: turing.Neutral},
					actions3,
					{Write: turing.Blank, Move: turing.Neutral},
				},
			)
			return
		}
		xbit := 0
		if !exhaustedX {
			xbit = digit(t1sym)
		}
		ybit := 0
		if !exhaustedY {
			ybit = digit(t2sym)
		}
		total := xbit + ybit + carryIn
		sumBit := turing.Symbol("0")
		if total%2 == 1 {
			sumBit = "1"
		}
		carryOut := sAdd0
		if total/2 == 1 {
			carryOut = sAdd1
		}
		t1Move := turing.Left
		if exhaustedX {
			t1Move = turing.Neutral
		}
		t2Move := turing.Left
		if exhaustedY {
			t2Move = turing.Neutral
		}
		insert(state,
			[]turing.Symbol{turing.Blank, t1sym, t2sym, turing.Blank, turing.Blank},
			carryOut,
			[]turing.Action{
				{Write: turing.Blank, Move: turing.Neutral},
				{Write: t1sym, Move: t1Move},
				{Write: t2sym, Move: t2Move},
				{Write: sumBit, Move: turing.Right},
				{Write: turing.Blank, Move: turing.Neutral},
			},
		)
	}
	t1Values := []turing.Symbol{"0", "1", turing.StartSentinel}
	t2Values := []turing.Symbol{"0", "1", "$"}
	for _, carryIn := range []int{0, 1} {
		for _, t1sym := range t1Values {
			for _, t2sym := range t2Values {
				addStep(carryIn, t1sym, t2sym)
			}
		}
	}

	// S_REV_SEEK: step tape 3 left from the blank onto its last written
	// digit (the sum's most significant bit).
	insert(sRevSeek,
		[]turing.Symbol{turing.Blank, turing.StartSentinel, "$", turing.Blank, turing.Blank},
		sRevCopy,
		[]turing.Action{
			{Write: turing.Blank, Move: turing.Neutral},
			{Write: turing.StartSentinel, Move: turing.Neutral},
			{Write: "$", Move: turing.Neutral},
			{Write: turing.Blank, Move: turing.Left},
			{Write: turing.Blank, Move: turing.Neutral},
		},
	)

	// S_REV_COPY: walk tape 3 from MSB to LSB, copying each digit onto the
	// output tape left to right, which reverses it back into normal order.
	for _, sym := range []turing.Symbol{"0", "1"} {
		insert(sRevCopy,
			[]turing.Symbol{turing.Blank, turing.StartSentinel, "$", sym, turing.Blank},
			sRevCopy,
			[]turing.Action{
				{Write: turing.Blank, Move: turing.Neutral},
				{Write: turing.StartSentinel, Move: turing.Neutral},
				{Write: "$", Move: turing.Neutral},
				{Write: sym, Move: turing.Left},
				{Write: sym, Move: turing.Right},
			},
		)
	}
	insert(sRevCopy,
		[]turing.Symbol{turing.Blank, turing.StartSentinel, "$", turing.StartSentinel, turing.Blank},
		turing.Halt,
		[]turing.Action{
			{Write: turing.Blank, Move: turing.Neutral},
			{Write: turing.StartSentinel, Move: turing.Neutral},
			{Write: "$", Move: turing.Neutral},
			{Write: turing.StartSentinel, Move: turing.Neutral},
			{Write: turing.Blank, Move: turing.Neutral},
		},
	)

	return table
}

func digit(s turing.Symbol) int {
	if s == "1" {
		return 1
	}
	return 0
}
