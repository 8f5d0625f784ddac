package lp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_leConstraintGetsSlackInBasis(t *testing.T) {
	p := NewProblem("p", Maximize)
	x := p.AddVariable("x")
	y := p.AddVariable("y")
	p.AddConstraint("c1", LE, 5).AddTerm(1, x).AddTerm(1, y)
	p.SetObjective(NewExpr().AddTerm(1, x).AddTerm(1, y))

	sf, err := p.compile(1e-9)
	require.NoError(t, err)

	m, _ := sf.A.Dims()
	assert.Equal(t, 1, m)
	require.Len(t, sf.basis, 1)
	assert.Equal(t, colSlack, sf.colTags[sf.basis[0]])
	assert.Empty(t, sf.artificial)
}

func TestCompile_geAndEqConstraintsGetArtificials(t *testing.T) {
	p := NewProblem("p", Minimize)
	x := p.AddVariable("x")
	y := p.AddVariable("y")
	p.AddConstraint("ge", GE, 4).AddTerm(1, x)
	p.AddConstraint("eq", EQ, 4).AddTerm(1, x).AddTerm(1, y)
	p.SetObjective(NewExpr().AddTerm(1, x).AddTerm(1, y))

	sf, err := p.compile(1e-9)
	require.NoError(t, err)
	assert.Len(t, sf.artificial, 2)
}

func TestCompile_freeVariableSplitsIntoTwoColumns(t *testing.T) {
	p := NewProblem("p", Minimize)
	f := p.AddVariable("f").SetBounds(math.Inf(-1), math.Inf(1))
	p.AddConstraint("c1", EQ, 0).AddTerm(1, f)
	p.SetObjective(NewExpr().AddTerm(1, f))

	sf, err := p.compile(1e-9)
	require.NoError(t, err)
	assert.Len(t, sf.components["f"], 2)
	assert.Equal(t, 1.0, sf.components["f"][0].coef)
	assert.Equal(t, -1.0, sf.components["f"][1].coef)
}

func TestCompile_finiteUpperBoundSynthesizesRow(t *testing.T) {
	p := NewProblem("p", Maximize)
	x := p.AddVariable("x").SetBounds(0, 3)
	p.SetObjective(NewExpr().AddTerm(1, x))

	sf, err := p.compile(1e-9)
	require.NoError(t, err)

	m, _ := sf.A.Dims()
	assert.Equal(t, 1, m)
	assert.Equal(t, 3.0, sf.b[0])
}

func TestCompile_negativeRhsFlipsRow(t *testing.T) {
	p := NewProblem("p", Minimize)
	x := p.AddVariable("x")
	// x <= -5 after shift should flip to a >= row with positive rhs.
	p.AddConstraint("c1", LE, -5).AddTerm(1, x)
	p.SetObjective(NewExpr().AddTerm(1, x))

	sf, err := p.compile(1e-9)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sf.b[0], 0.0)
	assert.Len(t, sf.artificial, 1)
}

func TestCompile_inconsistentBoundsIsStructuralError(t *testing.T) {
	p := NewProblem("p", Minimize)
	p.AddVariable("x").SetBounds(5, 1)
	p.SetObjective(NewExpr())

	_, err := p.compile(1e-9)
	require.Error(t, err)
	assert.True(t, isStructuralError(err))
}

func TestCompile_duplicateVariableNameIsStructuralError(t *testing.T) {
	p := NewProblem("p", Minimize)
	p.AddVariable("x")
	p.AddVariable("x")
	p.SetObjective(NewExpr())

	_, err := p.compile(1e-9)
	require.Error(t, err)
	assert.True(t, isStructuralError(err))
}

func TestCompile_duplicateConstraintNameIsStructuralError(t *testing.T) {
	p := NewProblem("p", Minimize)
	x := p.AddVariable("x")
	p.AddConstraint("c1", LE, 1).AddTerm(1, x)
	p.AddConstraint("c1", LE, 2).AddTerm(1, x)
	p.SetObjective(NewExpr())

	_, err := p.compile(1e-9)
	require.Error(t, err)
	assert.True(t, isStructuralError(err))
}

func TestCompile_unknownVariableInObjectiveIsStructuralError(t *testing.T) {
	p := NewProblem("p", Minimize)
	foreign := &Variable{name: "ghost"}
	p.SetObjective(NewExpr().AddTerm(1, foreign))

	_, err := p.compile(1e-9)
	require.Error(t, err)
	assert.True(t, isStructuralError(err))
}

func TestCompile_senseNormalizesCostVector(t *testing.T) {
	p := NewProblem("p", Minimize)
	x := p.AddVariable("x")
	p.SetObjective(NewExpr().AddTerm(3, x))

	sf, err := p.compile(1e-9)
	require.NoError(t, err)
	assert.Equal(t, -3.0, sf.c[0])
}
