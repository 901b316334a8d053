package turing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	turing "github.com/turinglab/tm"
)

func TestNewTransitionTable_RejectsBadTapeCount(t *testing.T) {
	t.Parallel()

	_, err := turing.NewTransitionTable(0)
	require.ErrorIs(t, err, turing.ErrInvalidTapeCount)
}

func TestTransitionTable_InsertValidatesVectorLength(t *testing.T) {
	t.Parallel()

	table, err := turing.NewTransitionTable(2)
	require.NoError(t, err)

	err = table.Insert(
		turing.TransitionIn{State: 0, Read: []turing.Symbol{"0"}},
		turing.TransitionOut{Next: turing.Halt, Actions: []turing.Action{{Write: "0", Move: turing.Neutral}, {Write: "0", Move: turing.Neutral}}},
	)
	require.ErrorIs(t, err, turing.ErrVectorLength)

	err = table.Insert(
		turing.TransitionIn{State: 0, Read: []turing.Symbol{"0", "0"}},
		turing.TransitionOut{Next: turing.Halt, Actions: []turing.Action{{Write: "0", Move: turing.Neutral}}},
	)
	require.ErrorIs(t, err, turing.ErrVectorLength)
}

func TestTransitionTable_LookupDefaultsToReject(t *testing.T) {
	t.Parallel()

	table, err := turing.NewTransitionTable(1)
	require.NoError(t, err)

	out := table.Lookup(0, []turing.Symbol{"0"})
	assert.Equal(t, turing.Reject, out.Next)
	assert.Equal(t, []turing.Action{{Write: "0", Move: turing.Neutral}}, out.Actions)
	assert.False(t, table.Has(0, []turing.Symbol{"0"}))
}

func TestTransitionTable_InsertOverwritesSameKey(t *testing.T) {
	t.Parallel()

	table, err := turing.NewTransitionTable(1)
	require.NoError(t, err)

	in := turing.TransitionIn{State: 0, Read: []turing.Symbol{"0"}}
	require.NoError(t, table.Insert(in, turing.TransitionOut{Next: turing.ActiveState(1), Actions: []turing.Action{{Write: "1", Move: turing.Right}}}))
	require.NoError(t, table.Insert(in, turing.TransitionOut{Next: turing.Accept, Actions: []turing.Action{{Write: "2", Move: turing.Left}}}))

	assert.Equal(t, 1, table.Len())
	out := table.Lookup(0, []turing.Symbol{"0"})
	assert.Equal(t, turing.Accept, out.Next)
}

func TestTransitionTable_EntriesInInsertionOrder(t *testing.T) {
	t.Parallel()

	table, err := turing.NewTransitionTable(1)
	require.NoError(t, err)

	for _, sym := range []turing.Symbol{"1", "0", "2"} {
		require.NoError(t, table.Insert(
			turing.TransitionIn{State: 0, Read: []turing.Symbol{sym}},
			turing.TransitionOut{Next: turing.Halt, Actions: []turing.Action{{Write: sym, Move: turing.Neutral}}},
		))
	}

	entries := table.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, turing.Symbol("1"), entries[0].In.Read[0])
	assert.Equal(t, turing.Symbol("0"), entries[1].In.Read[0])
	assert.Equal(t, turing.Symbol("2"), entries[2].In.Read[0])
}

func TestTransitionTable_States(t *testing.T) {
	t.Parallel()

	table, err := turing.NewTransitionTable(1)
	require.NoError(t, err)
	require.NoError(t, table.Insert(
		turing.TransitionIn{State: 0, Read: []turing.Symbol{"0"}},
		turing.TransitionOut{Next: turing.ActiveState(1), Actions: []turing.Action{{Write: "0", Move: turing.Right}}},
	))
	require.NoError(t, table.Insert(
		turing.TransitionIn{State: 1, Read: []turing.Symbol{turing.Blank}},
		turing.TransitionOut{Next: turing.Halt, Actions: []turing.Action{{Write: turing.Blank, Move: turing.Neutral}}},
	))

	states := table.States()
	assert.Len(t, states, 2)
	_, ok0 := states[turing.ActiveState(0)]
	_, ok1 := states[turing.ActiveState(1)]
	assert.True(t, ok0)
	assert.True(t, ok1)
}
