package compiler

import (
	"strings"

	turing "github.com/turinglab/tm"
)

// compressedSymbol is one cell of the compiled tape: for each of the k
// source tapes, whether that tape's head currently sits at this column
// (head-marker) and what that tape's cell-symbol is at this column. A
// compressed symbol is a "start" symbol when every cell-symbol is
// turing.StartSentinel, and a "non-start" symbol when none of them are — the
// two families never mix, because cell 0 is S for every tape simultaneously
// and no other tape position ever holds S (spec §4.4).
type compressedSymbol struct {
	heads []bool
	cells []turing.Symbol
}

// newCompressedSymbol allocates a zero-valued compressed symbol for k tapes:
// no heads, and every cell-symbol the empty string (not turing.Blank).
func newCompressedSymbol(k int) compressedSymbol {
	return compressedSymbol{heads: make([]bool, k), cells: make([]turing.Symbol, k)}
}

// encode renders the compressed symbol as a turing.Symbol: a comma-joined
// sequence of (marker, cell-symbol) pairs, one per tape, in tape order. The
// marker is "*" when that tape's head is here, "-" otherwise. This is the
// single-tape alphabet the compiled machine actually runs on; equal
// (heads, cells) pairs always render to the same string, which is exactly
// what map-keyed transition lookup needs.
func (c compressedSymbol) encode() turing.Symbol {
	parts := make([]string, len(c.cells))
	for i, cell := range c.cells {
		marker := "-"
		if c.heads[i] {
			marker = "*"
		}
		parts[i] = marker + string(cell)
	}
	return turing.Symbol(strings.Join(parts, ","))
}

// withCells returns a copy of c with its cell-symbols replaced.
func (c compressedSymbol) withCells(cells []turing.Symbol) compressedSymbol {
	return compressedSymbol{heads: c.heads, cells: cells}
}

// withHeads returns a copy of c with its head-markers replaced.
func (c compressedSymbol) withHeads(heads []bool) compressedSymbol {
	return compressedSymbol{heads: heads, cells: c.cells}
}

// startSymbol builds the compressed symbol representing conceptual column 0
// (every tape's cell-symbol is S) with the given head-marker pattern.
func startSymbol(k int, heads []bool) turing.Symbol {
	cells := make([]turing.Symbol, k)
	for i := range cells {
		cells[i] = turing.StartSentinel
	}
	return compressedSymbol{heads: heads, cells: cells}.encode()
}

// blankSymbol builds the compressed symbol representing a column where every
// tape's cell-symbol is blank, with the given head-marker pattern. This is
// the "terminating" column Read/Move-Right recognize, though its heads need
// not all be false: a tape whose head legitimately sits at the tape's
// current right edge reads blank there too.
func blankSymbol(k int, heads []bool) turing.Symbol {
	cells := make([]turing.Symbol, k)
	for i := range cells {
		cells[i] = turing.Blank
	}
	return compressedSymbol{heads: heads, cells: cells}.encode()
}

// allFalse returns a fresh all-false bit vector of length k.
func allFalse(k int) []bool {
	return make([]bool, k)
}

// bitCombos enumerates all 2^k boolean vectors of length k, in counting
// order (vector i's bits are i's binary digits, tape 0 the least
// significant) — a fixed, deterministic enumeration order, not a
// semantically meaningful one (spec §9 design note on the compiler's
// allocator).
func bitCombos(k int) [][]bool {
	n := 1 << uint(k)
	out := make([][]bool, n)
	for i := 0; i < n; i++ {
		v := make([]bool, k)
		for b := 0; b < k; b++ {
			v[b] = (i>>uint(b))&1 == 1
		}
		out[i] = v
	}
	return out
}

// cartesian enumerates the cartesian product of alphabet repeated k times,
// in lexicographic order over alphabet's given order (tape k-1 varies
// fastest). Used to build every reachable compressed-symbol combination a
// stage must define a transition for.
func cartesian(alphabet []turing.Symbol, k int) [][]turing.Symbol {
	if k == 0 {
		return [][]turing.Symbol{{}}
	}
	rest := cartesian(alphabet, k-1)
	out := make([][]turing.Symbol, 0, len(alphabet)*len(rest))
	for _, sym := range alphabet {
		for _, tail := range rest {
			combo := make([]turing.Symbol, 0, k)
			combo = append(combo, sym)
			combo = append(combo, tail...)
			out = append(out, combo)
		}
	}
	return out
}

// encodeDirs renders a direction vector as a map-key-safe string.
func encodeDirs(dirs []turing.Direction) string {
	var b strings.Builder
	for _, d := range dirs {
		b.WriteString(d.String())
	}
	return b.String()
}

// encodeActions renders an action vector (writes and directions) as a
// map-key-safe string, distinct per distinct (write, move) vector.
func encodeActions(actions []turing.Action) string {
	var b strings.Builder
	for _, a := range actions {
		b.WriteString(string(a.Write))
		b.WriteByte(0)
		b.WriteString(a.Move.String())
		b.WriteByte(0)
	}
	return b.String()
}

// encodeBits renders a bit vector as a map-key-safe string of '0'/'1'.
func encodeBits(bits []bool) string {
	buf := make([]byte, len(bits))
	for i, b := range bits {
		if b {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// encodeSave renders a partial-save vector as a map-key-safe string. unfilled
// slots use a NUL byte, which never collides with a real symbol rendered by
// compressedSymbol.encode (those always contain a leading marker byte).
const unfilledMarker = "\x00"

func encodeSave(save []turing.Symbol) string {
	var b strings.Builder
	for _, s := range save {
		if s == unfilledSentinel {
			b.WriteString(unfilledMarker)
		} else {
			b.WriteString(string(s))
		}
		b.WriteByte(0)
	}
	return b.String()
}

// unfilledSentinel marks a partial-save slot that has not yet been filled in
// by a Read sweep. It is a turing.Symbol value that can never be produced by
// compressedSymbol.encode (no cell-symbol is ever the NUL byte), so it is
// safe to use internally without risk of colliding with a real tape symbol.
const unfilledSentinel turing.Symbol = unfilledMarker

// unfilledSave returns a fresh length-k partial save with every slot unfilled.
func unfilledSave(k int) []turing.Symbol {
	s := make([]turing.Symbol, k)
	for i := range s {
		s[i] = unfilledSentinel
	}
	return s
}

// allTrue returns a fresh all-true bit vector of length k.
func allTrue(k int) []bool {
	v := make([]bool, k)
	for i := range v {
		v[i] = true
	}
	return v
}

// anyTrue reports whether any bit in bits is set.
func anyTrue(bits []bool) bool {
	for _, b := range bits {
		if b {
			return true
		}
	}
	return false
}

// allBlank reports whether every cell-symbol is Blank.
func allBlank(cells []turing.Symbol) bool {
	for _, c := range cells {
		if c != turing.Blank {
			return false
		}
	}
	return true
}

// allStart reports whether every cell-symbol is StartSentinel.
func allStart(cells []turing.Symbol) bool {
	for _, c := range cells {
		if c != turing.StartSentinel {
			return false
		}
	}
	return true
}
