// Package encoding reads and writes the textual transition-table format:
//
//	<# comment line, optional, any number>
//	<n_states> <n_tapes> <alphabet_size> <n_transitions>
//	<sym_1>,<sym_2>,...,<sym_alphabet_size>
//	<transition line 1>
//	...
//	<transition line n_transitions>
//
// Each transition line has 2 + 3*n_tapes comma-separated fields with
// arbitrary surrounding whitespace: state_in, read_1..read_k, state_out,
// write_1, dir_1, ..., write_k, dir_k. Lines beginning with '#' (after
// removing whitespace) are comments, recognized anywhere a line is expected.
package encoding

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	turing "github.com/turinglab/tm"
)

var (
	// ErrMalformedHeader is returned when the header line does not have
	// exactly four integers.
	ErrMalformedHeader = errors.New("malformed header line")

	// ErrMalformedTransition is returned when a transition line does not
	// have the expected field count or a field cannot be parsed.
	ErrMalformedTransition = errors.New("malformed transition line")

	// ErrAlphabetSize is returned when the declared alphabet size does not
	// match the number of symbols actually listed.
	ErrAlphabetSize = errors.New("alphabet size mismatch")

	// ErrLineCount is returned when the declared transition count does not
	// match the number of transition lines observed.
	ErrLineCount = errors.New("transition line count mismatch")

	// ErrStateCount is returned when the declared state count does not
	// match the number of distinct non-terminal states observed.
	ErrStateCount = errors.New("state count mismatch")

	// ErrUnexpectedEOF is returned when the file ends before the header or
	// alphabet line is found.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
)

// ReadFile opens path and parses its contents as an encoded transition
// table. It is equivalent to ReadFileCtx(context.Background(), path).
func ReadFile(path string) (*turing.TransitionTable, error) {
	return ReadFileCtx(context.Background(), path)
}

// ReadFileCtx opens path and parses its contents, checking ctx between
// lines so a long parse can be cancelled.
func ReadFileCtx(ctx context.Context, path string) (*turing.TransitionTable, error) {
	clean := filepath.Clean(path)

	if _, err := os.Stat(clean); err != nil {
		return nil, fmt.Errorf("file %q does not exist: %w", clean, err)
	}

	f, err := os.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", clean, err)
	}
	defer func() {
		_ = f.Close()
	}()

	return ReadCtx(ctx, f)
}

// Read parses an encoded transition table from r. It is equivalent to
// ReadCtx(context.Background(), r).
func Read(r io.Reader) (*turing.TransitionTable, error) {
	return ReadCtx(context.Background(), r)
}

// ReadCtx parses an encoded transition table from r, checking ctx between
// lines.
func ReadCtx(ctx context.Context, r io.Reader) (*turing.TransitionTable, error) {
	sc := newCommentSkippingScanner(r)

	header, ok := sc.next()
	if !ok {
		return nil, ErrUnexpectedEOF
	}
	nStates, nTapes, alphabetSize, nTransitions, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	alphabetLine, ok := sc.next()
	if !ok {
		return nil, ErrUnexpectedEOF
	}
	symbols := splitAlphabet(alphabetLine)
	if len(symbols) != alphabetSize {
		return nil, fmt.Errorf("%w: declared %d, found %d", ErrAlphabetSize, alphabetSize, len(symbols))
	}
	alphabet := turing.NewAlphabet(symbols)

	table, err := turing.NewTransitionTable(nTapes)
	if err != nil {
		return nil, err
	}

	observedLines := 0
	observedStates := make(map[turing.ActiveState]struct{})

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, ok := sc.next()
		if !ok {
			break
		}
		in, out, err := parseTransitionLine(line, nTapes)
		if err != nil {
			return nil, err
		}
		for _, sym := range in.Read {
			if !alphabet.Contains(sym) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownSymbolInLine, sym)
			}
		}
		for _, a := range out.Actions {
			if !alphabet.Contains(a.Write) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownSymbolInLine, a.Write)
			}
		}
		if err := table.Insert(in, out); err != nil {
			return nil, err
		}
		observedStates[in.State] = struct{}{}
		if active, ok := turing.AsActiveState(out.Next); ok {
			observedStates[active] = struct{}{}
		}
		observedLines++
	}

	if observedLines != nTransitions {
		return nil, fmt.Errorf("%w: declared %d, observed %d", ErrLineCount, nTransitions, observedLines)
	}
	if len(observedStates) != nStates {
		return nil, fmt.Errorf("%w: declared %d, observed %d", ErrStateCount, nStates, len(observedStates))
	}

	return table, nil
}

// ErrUnknownSymbolInLine is returned when a transition line mentions a
// symbol outside the declared alphabet (and not one of the two
// distinguished symbols).
var ErrUnknownSymbolInLine = errors.New("symbol not in alphabet")

func parseHeader(line string) (nStates, nTapes, alphabetSize, nTransitions int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
	}
	nums := make([]int, 4)
	for i, f := range fields {
		n, convErr := strconv.Atoi(f)
		if convErr != nil {
			return 0, 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nums[3], nil
}

func splitAlphabet(line string) []turing.Symbol {
	fields := strings.Split(sanitize(line), ",")
	symbols := make([]turing.Symbol, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		symbols = append(symbols, turing.Symbol(f))
	}
	return symbols
}

func parseTransitionLine(line string, nTapes int) (turing.TransitionIn, turing.TransitionOut, error) {
	fields := strings.Split(sanitize(line), ",")
	want := 2 + 3*nTapes
	if len(fields) != want {
		return turing.TransitionIn{}, turing.TransitionOut{}, fmt.Errorf("%w: %q - expected %d fields, got %d", ErrMalformedTransition, line, want, len(fields))
	}

	stateIn, err := strconv.Atoi(fields[0])
	if err != nil || stateIn < 0 {
		return turing.TransitionIn{}, turing.TransitionOut{}, fmt.Errorf("%w: bad state in %q", ErrMalformedTransition, line)
	}

	read := make([]turing.Symbol, nTapes)
	for i := 0; i < nTapes; i++ {
		read[i] = turing.Symbol(fields[1+i])
	}

	stateOut, err := turing.ParseState(fields[1+nTapes])
	if err != nil {
		return turing.TransitionIn{}, turing.TransitionOut{}, fmt.Errorf("%w: %s", ErrMalformedTransition, err)
	}

	rest := fields[2+nTapes:]
	actions := make([]turing.Action, nTapes)
	for i := 0; i < nTapes; i++ {
		write := turing.Symbol(rest[2*i])
		dir, err := turing.ParseDirection(rest[2*i+1])
		if err != nil {
			return turing.TransitionIn{}, turing.TransitionOut{}, fmt.Errorf("%w: %s", ErrMalformedTransition, err)
		}
		actions[i] = turing.Action{Write: write, Move: dir}
	}

	return turing.TransitionIn{State: turing.ActiveState(stateIn), Read: read},
		turing.TransitionOut{Next: stateOut, Actions: actions},
		nil
}

func sanitize(line string) string {
	var b strings.Builder
	for _, r := range line {
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// commentSkippingScanner yields successive non-comment, non-blank lines.
type commentSkippingScanner struct {
	sc *bufio.Scanner
}

func newCommentSkippingScanner(r io.Reader) *commentSkippingScanner {
	return &commentSkippingScanner{sc: bufio.NewScanner(r)}
}

func (s *commentSkippingScanner) next() (string, bool) {
	for s.sc.Scan() {
		line := s.sc.Text()
		trimmed := sanitize(line)
		if trimmed == "" {
			continue
		}
		if trimmed[0] == '#' {
			continue
		}
		return line, true
	}
	return "", false
}

// Write serializes table to w in the encoded transition-table format,
// declaring symbols and counts from the table and the supplied alphabet. The
// caller supplies the alphabet since TransitionTable itself only tracks
// which symbols were used, not the declared superset.
func Write(w io.Writer, table *turing.TransitionTable, alphabet *turing.Alphabet) error {
	states := table.States()
	entries := table.Entries()

	symbols := alphabet.Symbols()
	symbolStrs := make([]string, len(symbols))
	for i, s := range symbols {
		symbolStrs[i] = string(s)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d %d %d\n", len(states), table.Tapes, len(symbols), len(entries)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(bw, strings.Join(symbolStrs, ",")); err != nil {
		return err
	}
	for _, e := range entries {
		if err := writeTransitionLine(bw, e.In, e.Out); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeTransitionLine(w *bufio.Writer, in turing.TransitionIn, out turing.TransitionOut) error {
	fields := make([]string, 0, 2+3*len(in.Read))
	fields = append(fields, strconv.Itoa(int(in.State)))
	for _, s := range in.Read {
		fields = append(fields, string(s))
	}
	fields = append(fields, out.Next.String())
	for _, a := range out.Actions {
		fields = append(fields, string(a.Write), a.Move.String())
	}
	_, err := fmt.Fprintln(w, strings.Join(fields, ","))
	return err
}
