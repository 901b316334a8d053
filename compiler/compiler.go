// Package compiler implements the k-tape-to-1-tape compiler: given a
// TransitionTable driving k tapes, it produces a single-tape TransitionTable
// whose runs correspond to the source machine's runs under the compressed
// alphabet described in spec §4.4 — halting iff the source halts, agreeing
// on accept/reject, and agreeing on halt output modulo which tape carries
// it. Step counts are not preserved; each source step expands into a whole
// Read/Write/Move-Right/Move-Left macro-cycle on the compiled tape.
package compiler

import (
	"context"
	"fmt"
	"sort"

	turing "github.com/turinglab/tm"
)

// Option configures a Compiler at construction time.
type Option func(*Compiler)

// WithOutputTape selects which source tape Cleanup extracts onto the
// compiled machine's single tape when the source halts via Halt. Defaults to
// tape k-1, the convention turing.Machine.Result already assumes.
func WithOutputTape(i int) Option {
	return func(c *Compiler) { c.outputTape = i }
}

// Compiler builds a compiled single-tape TransitionTable from a source
// k-tape table, allocating compiled states lazily and memoizing them by the
// same structured keys spec §4.4 names (copying, reading, writing,
// moving-right, moving-left, cleanup maps) so that requesting the same
// compiled state twice — inevitable once the macro-cycle loops back to Read
// — returns the same id rather than building it twice.
type Compiler struct {
	src          *turing.TransitionTable
	k            int
	cellAlphabet []turing.Symbol // observed Σ ∪ {Blank}, sorted, deterministic
	outputTape   int

	out  *turing.TransitionTable
	next turing.ActiveState
	err  error

	readStates    map[string]turing.ActiveState
	writeStates   map[string]turing.ActiveState
	moveStates    map[string]turing.ActiveState
	copyStates    map[string]turing.ActiveState
	cleanupStates map[string]turing.ActiveState

	queue []func()
}

// Compile is CompileCtx with context.Background().
func Compile(src *turing.TransitionTable, opts ...Option) (*turing.TransitionTable, error) {
	return CompileCtx(context.Background(), src, opts...)
}

// CompileCtx compiles src, a k-tape TransitionTable, into an equivalent
// single-tape TransitionTable. ctx is checked between compiled-state builds,
// not inside them — the compiler itself never runs the machine, so there is
// no per-simulated-step cancellation point, only a per-generated-state one.
func CompileCtx(ctx context.Context, src *turing.TransitionTable, opts ...Option) (*turing.TransitionTable, error) {
	if src == nil {
		return nil, ErrNilTable
	}
	k := src.Tapes

	out, err := turing.NewTransitionTable(1)
	if err != nil {
		return nil, err
	}

	c := &Compiler{
		src:           src,
		k:             k,
		outputTape:    k - 1,
		out:           out,
		readStates:    make(map[string]turing.ActiveState),
		writeStates:   make(map[string]turing.ActiveState),
		moveStates:    make(map[string]turing.ActiveState),
		copyStates:    make(map[string]turing.ActiveState),
		cleanupStates: make(map[string]turing.ActiveState),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.outputTape < 0 || c.outputTape >= k {
		return nil, fmt.Errorf("%w: %d", ErrOutputTapeRange, c.outputTape)
	}
	c.cellAlphabet = observedAlphabet(src)

	c.buildInitCopy()
	for len(c.queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		job := c.queue[0]
		c.queue = c.queue[1:]
		job()
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.out, nil
}

// observedAlphabet derives the compile-time cell alphabet from every symbol
// src's entries actually read or write, excluding the two distinguished
// symbols (handled by dedicated start/blank machinery), plus Blank itself —
// every tape reads Blank at some point, whether or not src's author ever
// wrote one. Sorted for a deterministic, reproducible compile regardless of
// map iteration order (spec §9's "deterministic allocator" note).
func observedAlphabet(table *turing.TransitionTable) []turing.Symbol {
	set := make(map[turing.Symbol]struct{})
	for _, e := range table.Entries() {
		for _, s := range e.In.Read {
			if s != turing.StartSentinel && s != turing.Blank {
				set[s] = struct{}{}
			}
		}
		for _, a := range e.Out.Actions {
			if a.Write != turing.StartSentinel && a.Write != turing.Blank {
				set[a.Write] = struct{}{}
			}
		}
	}
	out := make([]turing.Symbol, 0, len(set)+1)
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	out = append(out, turing.Blank)
	return out
}

func (c *Compiler) alloc() turing.ActiveState {
	id := c.next
	c.next++
	return id
}

func (c *Compiler) enqueue(f func()) {
	c.queue = append(c.queue, f)
}

// insert records a compiled transition, deferring the first error seen so
// every caller can stay a one-liner instead of threading an error return
// through every stage builder.
func (c *Compiler) insert(in turing.TransitionIn, out turing.TransitionOut) {
	if c.err != nil {
		return
	}
	if err := c.out.Insert(in, out); err != nil {
		c.err = fmt.Errorf("compiler: %w", err)
	}
}
