package lp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// columnTag classifies a column of a standardForm's constraint matrix.
type columnTag int

const (
	colStructural columnTag = iota
	colSlack
	colSurplus
	colArtificial
)

// varComponent is one (standard-column-index, signed coefficient) pair
// whose weighted sum, plus the variable's offset, reconstructs an original
// variable's value from the standard-form solution.
type varComponent struct {
	index int
	coef  float64
}

// standardForm is the canonical-form translation of a Problem: A x = b,
// x >= 0, with an initial basis and the bookkeeping needed to map a
// standard-space solution back to the original variables.
type standardForm struct {
	A *mat.Dense
	b []float64
	c []float64

	basis   []int
	colTags []columnTag

	components map[string][]varComponent
	offsets    map[string]float64

	constraintNames []string
	originalNames   []string

	artificial map[int]bool

	objectiveConstant float64
}

// compile translates the user-facing Problem into standard form, per
// spec.md §4.1. It never panics on malformed input; every failure is a
// *structuralError, which Solve/SolveMIP convert into an infeasible
// Solution.
func (p *Problem) compile(tol float64) (*standardForm, error) {
	return p.compileWithBounds(tol, nil)
}

// compileWithBounds is compile with each variable's bounds looked up
// through overrides first — this is how the branch-and-bound driver
// solves a tightened node without deep-copying the Problem (spec.md §9's
// "persistent bound-override map" design note).
func (p *Problem) compileWithBounds(tol float64, overrides *boundOverrides) (*standardForm, error) {
	var colTags []columnTag
	var objRaw []float64

	addColumn := func(tag columnTag) int {
		colTags = append(colTags, tag)
		objRaw = append(objRaw, 0)
		return len(colTags) - 1
	}

	components := make(map[string][]varComponent, len(p.variables))
	offsets := make(map[string]float64, len(p.variables))

	seenVars := make(map[string]bool, len(p.variables))
	for _, v := range p.variables {
		if seenVars[v.name] {
			return nil, newStructuralError("duplicate variable name %q", v.name)
		}
		seenVars[v.name] = true
	}

	type boundRow struct {
		v  *Variable
		ub float64
	}
	var boundRows []boundRow

	for _, v := range p.variables {
		lower, upper := v.effectiveBounds(overrides)

		if math.IsInf(lower, -1) {
			// Free variable: split into the difference of two
			// non-negative columns.
			idxPos := addColumn(colStructural)
			idxNeg := addColumn(colStructural)
			components[v.name] = []varComponent{{idxPos, 1}, {idxNeg, -1}}
			offsets[v.name] = 0
		} else {
			if !math.IsInf(upper, 1) && lower > upper {
				return nil, newStructuralError(
					"variable %q has inconsistent bounds (lower %v > upper %v)", v.name, lower, upper)
			}
			idx := addColumn(colStructural)
			components[v.name] = []varComponent{{idx, 1}}
			offsets[v.name] = lower
		}

		if !math.IsInf(upper, 1) {
			boundRows = append(boundRows, boundRow{v: v, ub: upper})
		}
	}

	// Objective rewrite: accumulate constants from offsets, distribute
	// coefficients across standard columns.
	objectiveConstant := p.objective.Constant
	for _, t := range p.objective.Terms {
		comps, ok := components[t.Var.name]
		if !ok {
			return nil, newStructuralError("objective references unknown variable %q", t.Var.name)
		}
		objectiveConstant += t.Coef * offsets[t.Var.name]
		for _, comp := range comps {
			objRaw[comp.index] += t.Coef * comp.coef
		}
	}

	type rowSpec struct {
		name     string
		terms    []LinearTerm
		constant float64
		cmp      Comparator
		rhs      float64
	}

	var specs []rowSpec
	seenConstraints := make(map[string]bool, len(p.constraints))
	for _, c := range p.constraints {
		if seenConstraints[c.name] {
			return nil, newStructuralError("duplicate constraint name %q", c.name)
		}
		seenConstraints[c.name] = true
		specs = append(specs, rowSpec{name: c.name, terms: c.lhs.Terms, constant: c.lhs.Constant, cmp: c.cmp, rhs: c.rhs})
	}
	for _, b := range boundRows {
		specs = append(specs, rowSpec{
			name:  "bound_" + b.v.name + "_ub",
			terms: []LinearTerm{{Var: b.v, Coef: 1}},
			cmp:   LE,
			rhs:   b.ub,
		})
	}

	var rowCoeffs []map[int]float64
	var rhsValues []float64
	var rowNames []string
	var basis []int
	artificial := make(map[int]bool)

	for _, spec := range specs {
		coeffs := make(map[int]float64)
		shift := spec.constant
		for _, t := range spec.terms {
			comps, ok := components[t.Var.name]
			if !ok {
				return nil, newStructuralError("constraint %q references unknown variable %q", spec.name, t.Var.name)
			}
			shift += t.Coef * offsets[t.Var.name]
			for _, comp := range comps {
				coeffs[comp.index] += t.Coef * comp.coef
			}
		}

		cmp := spec.cmp
		rhsValue := spec.rhs - shift

		if rhsValue < -tol {
			for idx, v := range coeffs {
				coeffs[idx] = -v
			}
			rhsValue = -rhsValue
			switch cmp {
			case LE:
				cmp = GE
			case GE:
				cmp = LE
			}
		}
		if rhsValue < -tol {
			return nil, newStructuralError("constraint %q yields a negative right-hand side after standardization", spec.name)
		}
		if rhsValue < 0 {
			rhsValue = 0
		}

		switch cmp {
		case LE:
			idx := addColumn(colSlack)
			coeffs[idx] += 1
			basis = append(basis, idx)
		case GE:
			idxSurplus := addColumn(colSurplus)
			coeffs[idxSurplus] -= 1
			idxArt := addColumn(colArtificial)
			coeffs[idxArt] += 1
			basis = append(basis, idxArt)
			artificial[idxArt] = true
		default: // EQ
			idxArt := addColumn(colArtificial)
			coeffs[idxArt] += 1
			basis = append(basis, idxArt)
			artificial[idxArt] = true
		}

		rowCoeffs = append(rowCoeffs, coeffs)
		rhsValues = append(rhsValues, rhsValue)
		rowNames = append(rowNames, spec.name)
	}

	n := len(colTags)
	m := len(rowCoeffs)

	A := mat.NewDense(m, n, nil)
	for i, coeffs := range rowCoeffs {
		for idx, val := range coeffs {
			A.Set(i, idx, val)
		}
	}

	c := make([]float64, n)
	copy(c, objRaw)
	if p.sense == Minimize {
		for i := range c {
			c[i] = -c[i]
		}
	}

	originalNames := make([]string, len(p.variables))
	for i, v := range p.variables {
		originalNames[i] = v.name
	}

	return &standardForm{
		A:                 A,
		b:                 rhsValues,
		c:                 c,
		basis:             basis,
		colTags:           colTags,
		components:        components,
		offsets:           offsets,
		constraintNames:   rowNames,
		originalNames:     originalNames,
		artificial:        artificial,
		objectiveConstant: objectiveConstant,
	}, nil
}
