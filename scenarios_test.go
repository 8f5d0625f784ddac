package lp

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Seed scenario 1: min 3x + 2y, s.t. x + 2y >= 8, 3x + y >= 6, x,y >= 0.
func TestScenario1_minWithTwoGEConstraints(t *testing.T) {
	p := NewProblem("s1", Minimize)
	x := p.AddVariable("x")
	y := p.AddVariable("y")
	p.AddConstraint("c1", GE, 8).AddTerm(1, x).AddTerm(2, y)
	p.AddConstraint("c2", GE, 6).AddTerm(3, x).AddTerm(1, y)
	p.SetObjective(NewExpr().AddTerm(3, x).AddTerm(2, y))

	sol := p.Solve(context.Background(), DefaultOptions())
	require.Equal(t, StatusOptimal, sol.Status)
	require.NotNil(t, sol.ObjectiveValue)
	assert.InDelta(t, 9.6, *sol.ObjectiveValue, 1e-6)
	assert.InDelta(t, 0.8, sol.Primal["x"], 1e-6)
	assert.InDelta(t, 3.6, sol.Primal["y"], 1e-6)
}

// Seed scenario 2: max x + y, s.t. x + y <= 1, 0 <= x,y <= 1, x,y integer.
func TestScenario2_binaryKnapsackStyle(t *testing.T) {
	p := NewProblem("s2", Maximize)
	x := p.AddVariable("x").SetBounds(0, 1).SetInteger()
	y := p.AddVariable("y").SetBounds(0, 1).SetInteger()
	p.AddConstraint("c1", LE, 1).AddTerm(1, x).AddTerm(1, y)
	p.SetObjective(NewExpr().AddTerm(1, x).AddTerm(1, y))

	sol := p.SolveMIP(context.Background(), DefaultOptions())
	require.Equal(t, StatusOptimal, sol.Status)
	assert.InDelta(t, 1.0, *sol.ObjectiveValue, 1e-9)

	xv, yv := sol.Primal["x"], sol.Primal["y"]
	assert.True(t, (math.Abs(xv-1) < 1e-9 && math.Abs(yv) < 1e-9) ||
		(math.Abs(xv) < 1e-9 && math.Abs(yv-1) < 1e-9))
}

// Seed scenario 3: min x + y, s.t. x + y = 4, x - y = 0, x,y >= 0.
func TestScenario3_equalityDualSign(t *testing.T) {
	p := NewProblem("s3", Minimize)
	x := p.AddVariable("x")
	y := p.AddVariable("y")
	p.AddConstraint("eq1", EQ, 4).AddTerm(1, x).AddTerm(1, y)
	p.AddConstraint("eq2", EQ, 0).AddTerm(1, x).AddTerm(-1, y)
	p.SetObjective(NewExpr().AddTerm(1, x).AddTerm(1, y))

	sol := p.Solve(context.Background(), DefaultOptions())
	require.Equal(t, StatusOptimal, sol.Status)
	assert.InDelta(t, 4.0, *sol.ObjectiveValue, 1e-6)
	assert.InDelta(t, 2.0, sol.Primal["x"], 1e-6)
	assert.InDelta(t, 2.0, sol.Primal["y"], 1e-6)
	require.NotNil(t, sol.Duals)
	assert.InDelta(t, -1.0, sol.Duals["eq1"], 1e-6)
}

// Seed scenario 4: max x, s.t. x >= 0, no upper bound.
func TestScenario4_unbounded(t *testing.T) {
	p := NewProblem("s4", Maximize)
	x := p.AddVariable("x")
	p.SetObjective(NewExpr().AddTerm(1, x))

	sol := p.Solve(context.Background(), DefaultOptions())
	assert.Equal(t, StatusUnbounded, sol.Status)
	assert.Nil(t, sol.ObjectiveValue)
}

// Seed scenario 5: min x, s.t. x >= 2, x <= 1.
func TestScenario5_infeasible(t *testing.T) {
	p := NewProblem("s5", Minimize)
	x := p.AddVariable("x").SetBounds(0, 1)
	p.AddConstraint("c1", GE, 2).AddTerm(1, x)
	p.SetObjective(NewExpr().AddTerm(1, x))

	sol := p.Solve(context.Background(), DefaultOptions())
	assert.Equal(t, StatusInfeasible, sol.Status)
}

// Seed scenario 6: max x + y, s.t. x + y <= 5, x <= 3, y <= 3.
func TestScenario6_boundedByMultipleUpperBounds(t *testing.T) {
	p := NewProblem("s6", Maximize)
	x := p.AddVariable("x").SetBounds(0, 3)
	y := p.AddVariable("y").SetBounds(0, 3)
	p.AddConstraint("c1", LE, 5).AddTerm(1, x).AddTerm(1, y)
	p.SetObjective(NewExpr().AddTerm(1, x).AddTerm(1, y))

	sol := p.Solve(context.Background(), DefaultOptions())
	require.Equal(t, StatusOptimal, sol.Status)
	assert.InDelta(t, 5.0, *sol.ObjectiveValue, 1e-6)
}

// --- universal testable properties (spec.md §8) ---

func assertFeasibilityWitness(t *testing.T, p *Problem, sol Solution, tol float64) {
	t.Helper()
	for _, v := range p.variables {
		val := sol.Primal[v.name]
		lower, upper := v.bounds()
		assert.GreaterOrEqual(t, val, lower-tol)
		if !math.IsInf(upper, 1) {
			assert.LessOrEqual(t, val, upper+tol)
		}
	}
	for _, c := range p.constraints {
		lhs := c.lhs.Constant
		for _, term := range c.lhs.Terms {
			lhs += term.Coef * sol.Primal[term.Var.name]
		}
		switch c.cmp {
		case LE:
			assert.LessOrEqual(t, lhs, c.rhs+tol)
		case GE:
			assert.GreaterOrEqual(t, lhs, c.rhs-tol)
		case EQ:
			assert.InDelta(t, c.rhs, lhs, tol)
		}
	}
}

func TestProperty_feasibilityWitnessAndObjectiveConsistency(t *testing.T) {
	p := NewProblem("prop1", Minimize)
	x := p.AddVariable("x")
	y := p.AddVariable("y")
	p.AddConstraint("c1", GE, 8).AddTerm(1, x).AddTerm(2, y)
	p.AddConstraint("c2", GE, 6).AddTerm(3, x).AddTerm(1, y)
	p.SetObjective(NewExpr().AddTerm(3, x).AddTerm(2, y))

	opts := DefaultOptions()
	sol := p.Solve(context.Background(), opts)
	require.Equal(t, StatusOptimal, sol.Status)

	assertFeasibilityWitness(t, p, sol, 1e-6)

	want := p.objective.Constant
	for _, term := range p.objective.Terms {
		want += term.Coef * sol.Primal[term.Var.name]
	}
	assert.InDelta(t, want, *sol.ObjectiveValue, 1e-6)
}

func TestProperty_senseSymmetry(t *testing.T) {
	buildMax := func() *Problem {
		p := NewProblem("max", Maximize)
		x := p.AddVariable("x").SetBounds(0, 3)
		y := p.AddVariable("y").SetBounds(0, 3)
		p.AddConstraint("c1", LE, 5).AddTerm(1, x).AddTerm(1, y)
		p.SetObjective(NewExpr().AddTerm(1, x).AddTerm(1, y))
		return p
	}
	buildMin := func() *Problem {
		p := NewProblem("min", Minimize)
		x := p.AddVariable("x").SetBounds(0, 3)
		y := p.AddVariable("y").SetBounds(0, 3)
		p.AddConstraint("c1", LE, 5).AddTerm(1, x).AddTerm(1, y)
		p.SetObjective(NewExpr().AddTerm(-1, x).AddTerm(-1, y))
		return p
	}

	maxSol := buildMax().Solve(context.Background(), DefaultOptions())
	minSol := buildMin().Solve(context.Background(), DefaultOptions())

	require.Equal(t, StatusOptimal, maxSol.Status)
	require.Equal(t, StatusOptimal, minSol.Status)
	assert.InDelta(t, *maxSol.ObjectiveValue, -*minSol.ObjectiveValue, 1e-6)
	assert.InDelta(t, maxSol.Primal["x"], minSol.Primal["x"], 1e-6)
	assert.InDelta(t, maxSol.Primal["y"], minSol.Primal["y"], 1e-6)
}

func TestProperty_integerFeasibility(t *testing.T) {
	p := NewProblem("mip", Maximize)
	x := p.AddVariable("x").SetBounds(0, 1).SetInteger()
	y := p.AddVariable("y").SetBounds(0, 1).SetInteger()
	p.AddConstraint("c1", LE, 1).AddTerm(1, x).AddTerm(1, y)
	p.SetObjective(NewExpr().AddTerm(1, x).AddTerm(1, y))

	sol := p.SolveMIP(context.Background(), DefaultOptions())
	require.Equal(t, StatusOptimal, sol.Status)
	for _, v := range []*Variable{x, y} {
		val := sol.Primal[v.name]
		assert.LessOrEqual(t, math.Abs(val-math.Round(val)), 1e-6)
	}
}

func TestProperty_idempotence(t *testing.T) {
	build := func() *Problem {
		p := NewProblem("idem", Minimize)
		x := p.AddVariable("x")
		y := p.AddVariable("y")
		p.AddConstraint("c1", GE, 8).AddTerm(1, x).AddTerm(2, y)
		p.AddConstraint("c2", GE, 6).AddTerm(3, x).AddTerm(1, y)
		p.SetObjective(NewExpr().AddTerm(3, x).AddTerm(2, y))
		return p
	}

	first := build().Solve(context.Background(), DefaultOptions())
	second := build().Solve(context.Background(), DefaultOptions())

	require.Equal(t, first.Status, second.Status)
	assert.InDelta(t, *first.ObjectiveValue, *second.ObjectiveValue, 1e-9)
}

func TestProperty_monotoneTightening(t *testing.T) {
	build := func(upper float64) *Problem {
		p := NewProblem("tight", Maximize)
		x := p.AddVariable("x").SetBounds(0, upper)
		p.SetObjective(NewExpr().AddTerm(1, x))
		return p
	}

	loose := build(10).Solve(context.Background(), DefaultOptions())
	tight := build(3).Solve(context.Background(), DefaultOptions())

	require.Equal(t, StatusOptimal, loose.Status)
	require.Equal(t, StatusOptimal, tight.Status)
	assert.LessOrEqual(t, *tight.ObjectiveValue, *loose.ObjectiveValue+1e-9)
}
