package lp

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// bound is one variable's effective [lower, upper] pair at a search node.
type bound struct {
	lower float64
	upper float64
}

// boundOverrides is a persistent (structurally shared) linked list of
// variable bound tightenings layered over a Problem's own variables. A
// child node's overrides share every ancestor's entries instead of
// deep-copying them; spec.md §9 flags jjhbw-GoMILP's subProblem.copy
// (which recopies bnbConstraints at every node) as the thing to avoid.
type boundOverrides struct {
	parent *boundOverrides
	name   string
	b      bound
}

func (o *boundOverrides) lookup(name string) (bound, bool) {
	for n := o; n != nil; n = n.parent {
		if n.name == name {
			return n.b, true
		}
	}
	return bound{}, false
}

func (o *boundOverrides) with(name string, b bound) *boundOverrides {
	return &boundOverrides{parent: o, name: name, b: b}
}

// effectiveBounds returns v's bounds as tightened by overrides, or its own
// bounds if overrides is nil or has nothing for v.
func (v *Variable) effectiveBounds(overrides *boundOverrides) (float64, float64) {
	lower, upper := v.bounds()
	if overrides != nil {
		if b, ok := overrides.lookup(v.name); ok {
			return b.lower, b.upper
		}
	}
	return lower, upper
}

// mipNode is one unit of branch-and-bound search: the Problem is shared
// across every node, only the bound overrides differ.
type mipNode struct {
	overrides *boundOverrides
	depth     int
}

const (
	bnbNodeFloor   = 64
	bnbNodePerVar  = 20
	bnbNodeCeiling = 1024
)

// SolveMIP solves the mixed-integer program by branch-and-bound over the
// LP relaxation, per spec.md §4.5: depth-first search, most-fractional
// variable selection, pruning against the running incumbent.
func (p *Problem) SolveMIP(ctx context.Context, opts SolveOptions) Solution {
	return p.SolveMIPTrace(ctx, opts, nil)
}

// SolveMIPTrace is SolveMIP with an optional SolveTrace for instrumentation.
func (p *Problem) SolveMIPTrace(ctx context.Context, opts SolveOptions, trace SolveTrace) Solution {
	opts = opts.withTol()

	integerVars := make([]*Variable, 0, len(p.variables))
	for _, v := range p.variables {
		if v.integer {
			integerVars = append(integerVars, v)
		}
	}
	if len(integerVars) == 0 {
		return p.Solve(ctx, opts)
	}

	// maxNodes is fixed at clamp(intVarCount*20, 64, 1024); see
	// SPEC_FULL.md §4.5 for why this constant was adopted verbatim from
	// mcp-optimizer's branch_and_cut.py.
	maxNodes := len(integerVars) * bnbNodePerVar
	if maxNodes < bnbNodeFloor {
		maxNodes = bnbNodeFloor
	}
	if maxNodes > bnbNodeCeiling {
		maxNodes = bnbNodeCeiling
	}

	// senseFactor makes "better than incumbent" a single comparison
	// regardless of min/max, since the relaxation's objective is already
	// in the Problem's native sense by the time mapSolution returns it.
	senseFactor := 1.0
	if p.sense == Minimize {
		senseFactor = -1.0
	}

	nodeOpts := opts
	nodeOpts.ReturnDuals = false

	var incumbent *Solution
	totalIterations := 0
	nodesExplored := 0

	stack := []mipNode{{overrides: nil, depth: 0}}

	for len(stack) > 0 && nodesExplored < maxNodes {
		if err := ctx.Err(); err != nil {
			break
		}

		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodesExplored++

		sol := p.solveNode(ctx, node, nodeOpts)
		totalIterations += sol.Iterations
		if trace != nil {
			trace.NodeSolved(node, sol)
		}

		switch sol.Status {
		case StatusInfeasible, StatusIterationLimit:
			if trace != nil {
				trace.Decision(node, decisionPruned)
			}
			continue
		case StatusUnbounded:
			return unboundedSolution(totalIterations, "LP relaxation is unbounded; the mixed-integer program is unbounded.")
		}
		if sol.ObjectiveValue == nil {
			continue
		}

		if incumbent != nil && senseFactor*(*sol.ObjectiveValue) <= senseFactor*(*incumbent.ObjectiveValue)+opts.Tol {
			if trace != nil {
				trace.Decision(node, decisionPruned)
			}
			continue
		}

		branchVar, value, isFractional := mostFractional(integerVars, sol.Primal, opts.Tol)
		if !isFractional {
			incumbent = &sol
			if trace != nil {
				trace.Decision(node, decisionIncumbent)
			}
			continue
		}

		if trace != nil {
			trace.Decision(node, decisionBranched)
		}

		floorBound, canFloor := tightenUpper(branchVar, node.overrides, math.Floor(value), opts.Tol)
		ceilBound, canCeil := tightenLower(branchVar, node.overrides, math.Ceil(value), opts.Tol)

		// Push the ceiling branch first so the floor branch is explored
		// first (LIFO stack): matches jjhbw-GoMILP's subProblem.branch,
		// which always formulates the "smaller-or-equal" child first.
		if canCeil {
			stack = append(stack, mipNode{overrides: ceilBound, depth: node.depth + 1})
		}
		if canFloor {
			stack = append(stack, mipNode{overrides: floorBound, depth: node.depth + 1})
		}
	}

	if incumbent == nil {
		if nodesExplored >= maxNodes {
			return iterationLimitSolution(totalIterations, "Reached the branch-and-bound node limit before finding an integer-feasible solution.")
		}
		return infeasibleSolution(totalIterations, "No integer-feasible assignment satisfies the constraints.")
	}

	result := *incumbent
	result.Iterations = totalIterations
	result.Message = fmt.Sprintf("Explored nodes: %d", nodesExplored)
	return result
}

// solveNode compiles and solves a single branch-and-bound node's LP
// relaxation under the node's bound overrides.
func (p *Problem) solveNode(ctx context.Context, node mipNode, opts SolveOptions) Solution {
	sf, err := p.compileWithBounds(opts.Tol, node.overrides)
	if err != nil {
		return infeasibleSolution(0, err.Error())
	}
	res := solveStandardForm(ctx, sf, opts)
	return mapSolution(sf, res, p.sense, opts)
}

// mostFractional picks the integer variable whose relaxed value is
// farthest from the nearest integer, per spec.md §4.5's "most-fractional"
// selection rule. It reports found=false once every integer variable's
// value is within tol of an integer.
func mostFractional(integerVars []*Variable, primal map[string]float64, tol float64) (v *Variable, value float64, found bool) {
	var candidates []*Variable
	var values []float64
	var gaps []float64

	for _, iv := range integerVars {
		val, ok := primal[iv.name]
		if !ok {
			continue
		}
		gap := math.Abs(val - math.Round(val))
		if gap > tol {
			candidates = append(candidates, iv)
			values = append(values, val)
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) == 0 {
		return nil, 0, false
	}

	best := floats.MaxIdx(gaps)
	return candidates[best], values[best], true
}

// tightenUpper returns overrides extended with v's upper bound tightened to
// newUpper, or ok=false if the tightening is redundant (no improvement over
// the current bound, which would loop forever) or renders the node
// infeasible outright (lower would exceed upper).
func tightenUpper(v *Variable, overrides *boundOverrides, newUpper, tol float64) (*boundOverrides, bool) {
	lower, upper := v.effectiveBounds(overrides)
	if !math.IsInf(upper, 1) && upper <= newUpper+tol {
		return nil, false
	}
	if lower > newUpper+tol {
		return nil, false
	}
	return overrides.with(v.name, bound{lower: lower, upper: newUpper}), true
}

// tightenLower is tightenUpper's mirror image for the lower bound.
func tightenLower(v *Variable, overrides *boundOverrides, newLower, tol float64) (*boundOverrides, bool) {
	lower, upper := v.effectiveBounds(overrides)
	if !math.IsInf(lower, -1) && lower >= newLower-tol {
		return nil, false
	}
	if newLower > upper+tol {
		return nil, false
	}
	return overrides.with(v.name, bound{lower: newLower, upper: upper}), true
}
