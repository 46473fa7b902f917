// Package dot writes a [bdd.Diagram] in the Graphviz DOT language.
//
// Terminals are boxes filled red (0) and green (1). Every internal node is
// drawn once, labelled with its variable, with a dashed red edge to its low
// child and a solid green edge to its high child. Node IDs are store
// handles, so they are stable for the lifetime of the store.
package dot

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/matzehuels/robdd/pkg/bdd"
)

// Terminal colours.
const (
	FalseColor = "#AB1111"
	TrueColor  = "#67A15B"
)

// Options configures DOT output.
type Options struct {
	// Name is the graph name. Empty means "ROBDD".
	Name string

	// Ranks groups nodes of the same variable on one row, ordered top to
	// bottom by the variable order.
	Ranks bool
}

// ToDOT returns the DOT document for d.
func ToDOT(d *bdd.Diagram, opts Options) string {
	var buf bytes.Buffer
	_ = Write(&buf, d, opts)
	return buf.String()
}

// Write writes the DOT document for d to w.
func Write(w io.Writer, d *bdd.Diagram, opts Options) error {
	name := opts.Name
	if name == "" {
		name = "ROBDD"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", strconv.Quote(name))
	fmt.Fprintf(&buf, "  0 [shape=box, label=\"0\", style=filled, fillcolor=%q, color=%q];\n", FalseColor, FalseColor)
	fmt.Fprintf(&buf, "  1 [shape=box, label=\"1\", style=filled, fillcolor=%q, color=%q];\n", TrueColor, TrueColor)

	nodes := d.Nodes()
	for _, n := range nodes {
		if n.IsTerminal() {
			continue
		}
		fmt.Fprintf(&buf, "  %d [label=%q];\n", n.Handle, n.Var)
		fmt.Fprintf(&buf, "  %d -> %d [style=dashed, color=%q, fontcolor=%q, label=\"0\"];\n", n.Handle, n.Low, FalseColor, FalseColor)
		fmt.Fprintf(&buf, "  %d -> %d [style=solid, color=%q, fontcolor=%q, label=\"1\"];\n", n.Handle, n.High, TrueColor, TrueColor)
	}

	if opts.Ranks {
		writeRanks(&buf, d, nodes)
	}

	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func writeRanks(buf *bytes.Buffer, d *bdd.Diagram, nodes []bdd.Node) {
	byVar := make(map[string][]bdd.Handle)
	for _, n := range nodes {
		if !n.IsTerminal() {
			byVar[n.Var] = append(byVar[n.Var], n.Handle)
		}
	}
	for _, v := range d.Order() {
		hs := byVar[v]
		if len(hs) == 0 {
			continue
		}
		buf.WriteString("  { rank=same;")
		for _, h := range hs {
			fmt.Fprintf(buf, " %d;", h)
		}
		buf.WriteString(" }\n")
	}
	buf.WriteString("  { rank=sink; 0; 1; }\n")
}
