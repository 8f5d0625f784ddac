package lp

import (
	"fmt"
	"io"
)

// nodeDecision records what the branch-and-bound driver did with an
// explored node, adapted from jjhbw-GoMILP's bnbDecision/BnbMiddleware.
type nodeDecision int

const (
	decisionBranched nodeDecision = iota
	decisionIncumbent
	decisionPruned
)

func (d nodeDecision) String() string {
	switch d {
	case decisionBranched:
		return "branched"
	case decisionIncumbent:
		return "new incumbent"
	case decisionPruned:
		return "pruned"
	default:
		return "unknown"
	}
}

// SolveTrace is an optional instrumentation hook into SolveMIPTrace, called
// synchronously once per explored node. SolveMIPTrace never explores two
// nodes concurrently, so an implementation need not be goroutine-safe.
type SolveTrace interface {
	// NodeSolved is called right after a node's LP relaxation has been
	// solved, before the driver classifies the node.
	NodeSolved(node mipNode, sol Solution)
	// Decision is called once the driver has classified the node.
	Decision(node mipNode, decision nodeDecision)
}

// DOTWriter is a SolveTrace that renders the explored search tree as
// Graphviz DOT, adapted from jjhbw-GoMILP's TreeLogger.ToDOT. Call Close
// once the solve returns to emit the closing brace.
type DOTWriter struct {
	w       io.Writer
	started bool
	ids     map[*boundOverrides]int
	nextID  int
}

// NewDOTWriter wraps w as a SolveTrace.
func NewDOTWriter(w io.Writer) *DOTWriter {
	return &DOTWriter{w: w, ids: make(map[*boundOverrides]int)}
}

func (d *DOTWriter) idFor(o *boundOverrides) int {
	if id, ok := d.ids[o]; ok {
		return id
	}
	id := d.nextID
	d.nextID++
	d.ids[o] = id
	return id
}

// NodeSolved implements SolveTrace.
func (d *DOTWriter) NodeSolved(node mipNode, sol Solution) {
	if !d.started {
		fmt.Fprintln(d.w, "digraph bnb {")
		fmt.Fprintln(d.w, "  node [fontname=Courier,shape=rectangle];")
		d.started = true
	}

	id := d.idFor(node.overrides)
	label := sol.Status.String()
	if sol.ObjectiveValue != nil {
		label = fmt.Sprintf("%s\\nz=%.4g", label, *sol.ObjectiveValue)
	}
	color := "Pink"
	switch sol.Status {
	case StatusOptimal:
		color = "Green"
	case StatusInfeasible:
		color = "Red"
	}
	fmt.Fprintf(d.w, "  n%d [label=%q,color=%s];\n", id, label, color)

	if node.overrides != nil {
		parentID := d.idFor(node.overrides.parent)
		fmt.Fprintf(d.w, "  n%d -> n%d [label=%q];\n", parentID, id, node.overrides.describe())
	}
}

// Decision implements SolveTrace. The decision is written at once as an
// extra xlabel statement for the node already emitted by NodeSolved, since
// DOT output is write-once.
func (d *DOTWriter) Decision(node mipNode, decision nodeDecision) {
	id := d.idFor(node.overrides)
	fmt.Fprintf(d.w, "  n%d [xlabel=%q];\n", id, decision.String())
}

// Close writes the closing brace of the DOT graph.
func (d *DOTWriter) Close() error {
	if !d.started {
		return nil
	}
	_, err := fmt.Fprintln(d.w, "}")
	return err
}

func (o *boundOverrides) describe() string {
	if o == nil {
		return "root"
	}
	if o.b.lower > o.b.upper {
		return fmt.Sprintf("%s infeasible", o.name)
	}
	return fmt.Sprintf("%s in [%v, %v]", o.name, o.b.lower, o.b.upper)
}
