package turing

import (
	"strconv"
	"strings"
	"text/tabwriter"
)

// String renders the table as a grid of state-in, read-vector, state-out,
// write-vector, direction-vector, for diagnostics. No table-formatting
// library appears anywhere in the retrieved corpus for this domain, so this
// uses the standard library's tabwriter rather than inventing a dependency.
func (t *TransitionTable) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 2, 2, ' ', 0)
	fprintln(w, "state in\tread\tstate out\twrite\tdirections")
	for _, e := range t.Entries() {
		reads := make([]string, len(e.In.Read))
		for i, s := range e.In.Read {
			reads[i] = string(s)
		}
		writes := make([]string, len(e.Out.Actions))
		dirs := make([]string, len(e.Out.Actions))
		for i, a := range e.Out.Actions {
			writes[i] = string(a.Write)
			dirs[i] = a.Move.String()
		}
		fprintln(w, strconv.Itoa(int(e.In.State))+"\t"+
			strings.Join(reads, ",")+"\t"+
			e.Out.Next.String()+"\t"+
			strings.Join(writes, ",")+"\t"+
			strings.Join(dirs, ","))
	}
	_ = w.Flush()
	return b.String()
}

func fprintln(w *tabwriter.Writer, s string) {
	_, _ = w.Write([]byte(s + "\n"))
}
