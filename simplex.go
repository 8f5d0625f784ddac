package lp

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"
)

// simplexOutcome is the kind of terminal state a single simplex run can
// reach. Infeasible is never produced here: detecting infeasibility is
// the two-phase driver's job (spec.md §4.3), not the core loop's.
type simplexOutcome int

const (
	outcomeOptimal simplexOutcome = iota
	outcomeUnbounded
	outcomeIterationLimit
)

type simplexResult struct {
	outcome      simplexOutcome
	basis        []int
	x            []float64
	objective    float64
	duals        []float64
	reducedCosts []float64
	iterations   int
}

// runSimplex is the revised simplex core described in spec.md §4.2: it
// pivots from the given initial basis using Dantzig's rule or Bland's rule
// until optimal, unbounded, or out of iteration budget. forbidden columns
// (Phase II's artificials) are never allowed to enter.
func runSimplex(ctx context.Context, A *mat.Dense, b, c []float64, basis []int, opts SolveOptions, forbidden map[int]bool, maxIterations int) simplexResult {
	m, n := A.Dims()
	tol := opts.Tol
	basis = append([]int(nil), basis...)

	if m == 0 {
		for j := 0; j < n; j++ {
			if forbidden[j] {
				continue
			}
			if c[j] > tol {
				return simplexResult{
					outcome: outcomeUnbounded,
					basis:   basis,
					x:       make([]float64, n),
				}
			}
		}
		reduced := append([]float64(nil), c...)
		clampZero(reduced, tol)
		return simplexResult{
			outcome:      outcomeOptimal,
			basis:        basis,
			x:            make([]float64, n),
			objective:    0,
			duals:        []float64{},
			reducedCosts: reduced,
		}
	}

	iterations := 0
	for {
		if err := ctx.Err(); err != nil {
			xB, y, reduced := evaluateBasis(A, b, c, basis, tol)
			x := scatter(n, basis, xB)
			return simplexResult{
				outcome:      outcomeIterationLimit,
				basis:        basis,
				x:            x,
				objective:    dot(gather(c, basis), xB),
				duals:        y,
				reducedCosts: reduced,
				iterations:   iterations,
			}
		}

		xB, y, reduced := evaluateBasis(A, b, c, basis, tol)

		entering := selectEntering(reduced, basis, forbidden, tol, opts.PivotRule)
		if entering == -1 {
			x := scatter(n, basis, xB)
			return simplexResult{
				outcome:      outcomeOptimal,
				basis:        basis,
				x:            x,
				objective:    dot(gather(c, basis), xB),
				duals:        y,
				reducedCosts: reduced,
				iterations:   iterations,
			}
		}

		if iterations >= maxIterations {
			x := scatter(n, basis, xB)
			return simplexResult{
				outcome:      outcomeIterationLimit,
				basis:        basis,
				x:            x,
				objective:    dot(gather(c, basis), xB),
				duals:        y,
				reducedCosts: reduced,
				iterations:   iterations,
			}
		}

		B := columnsOf(A, basis)
		d := solveVec(B, columnVec(A, entering))
		clampZero(d, tol)

		allNonPositive := true
		for _, di := range d {
			if di > tol {
				allNonPositive = false
				break
			}
		}
		if allNonPositive {
			return simplexResult{
				outcome:      outcomeUnbounded,
				basis:        basis,
				x:            scatter(n, basis, xB),
				duals:        y,
				reducedCosts: reduced,
				iterations:   iterations,
			}
		}

		pivotRow := selectLeaving(xB, d, basis, tol, opts.PivotRule)
		if pivotRow == -1 {
			return simplexResult{
				outcome:      outcomeUnbounded,
				basis:        basis,
				x:            scatter(n, basis, xB),
				duals:        y,
				reducedCosts: reduced,
				iterations:   iterations,
			}
		}

		basis[pivotRow] = entering
		iterations++
	}
}

// evaluateBasis solves for the current basic values, the dual estimates,
// and the reduced costs at the current basis — spec.md §4.2 steps 1-3.
func evaluateBasis(A *mat.Dense, b, c []float64, basis []int, tol float64) (xB, y, reduced []float64) {
	B := columnsOf(A, basis)

	xB = solveVec(B, b)
	clampZero(xB, tol)

	cB := gather(c, basis)
	Bt := mat.DenseCopyOf(B.T())
	y = solveVec(Bt, cB)

	reduced = reducedCostVector(A, c, y)
	clampZero(reduced, tol)
	for _, j := range basis {
		reduced[j] = 0
	}
	return xB, y, reduced
}

func selectEntering(reduced []float64, basis []int, forbidden map[int]bool, tol float64, rule PivotRule) int {
	inBasis := make(map[int]bool, len(basis))
	for _, j := range basis {
		inBasis[j] = true
	}

	best := -1
	bestVal := 0.0
	for j, r := range reduced {
		if inBasis[j] || forbidden[j] {
			continue
		}
		if r <= tol {
			continue
		}
		switch rule {
		case Bland:
			if best == -1 {
				best = j
			}
		default: // Dantzig
			if best == -1 || r > bestVal {
				best = j
				bestVal = r
			}
		}
	}
	return best
}

func selectLeaving(xB, d []float64, basis []int, tol float64, rule PivotRule) int {
	pivotRow := -1
	bestTheta := math.Inf(1)

	for i, di := range d {
		if di <= tol {
			continue
		}
		theta := xB[i] / di

		switch {
		case pivotRow == -1:
			pivotRow = i
			bestTheta = theta
		case theta < bestTheta-tol:
			pivotRow = i
			bestTheta = theta
		case math.Abs(theta-bestTheta) <= tol:
			if rule == Bland && basis[i] < basis[pivotRow] {
				pivotRow = i
			}
		}
	}
	return pivotRow
}

/* dense linear-algebra helpers, grounded on askiada-goptimization's direct
use of *mat.Dense.Solve/VecDense.SolveVec for the basis inverse operations. */

func columnsOf(A *mat.Dense, cols []int) *mat.Dense {
	m, _ := A.Dims()
	out := mat.NewDense(m, len(cols), nil)
	for j, col := range cols {
		for i := 0; i < m; i++ {
			out.Set(i, j, A.At(i, col))
		}
	}
	return out
}

func columnVec(A *mat.Dense, col int) []float64 {
	m, _ := A.Dims()
	out := make([]float64, m)
	for i := 0; i < m; i++ {
		out[i] = A.At(i, col)
	}
	return out
}

func gather(v []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = v[j]
	}
	return out
}

func scatter(n int, idx []int, values []float64) []float64 {
	out := make([]float64, n)
	for i, j := range idx {
		out[j] = values[i]
	}
	return out
}

func dot(a, b []float64) float64 {
	var total float64
	for i := range a {
		total += a[i] * b[i]
	}
	return total
}

func reducedCostVector(A *mat.Dense, c, y []float64) []float64 {
	_, n := A.Dims()
	m := len(y)
	yVec := mat.NewVecDense(m, append([]float64(nil), y...))
	var AtY mat.VecDense
	AtY.MulVec(A.T(), yVec)
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		out[j] = c[j] - AtY.AtVec(j)
	}
	return out
}

func clampZero(v []float64, tol float64) {
	for i := range v {
		if math.Abs(v[i]) < tol {
			v[i] = 0
		}
	}
}

// solveVec solves B x = rhs with gonum's Dense.Solve (dense LU for a square
// B). When Solve reports a mat.Condition error (B ill-conditioned), the
// estimate it left in the destination is used as is; on any other error a
// zero vector is returned. No separate least-squares solve is made.
// Grounded on
// askiada-goptimization's CanonicalForm.SolveBd, which calls the same
// *mat.Dense.Solve directly on the basis matrix.
func solveVec(B *mat.Dense, rhs []float64) []float64 {
	n := len(rhs)
	bMat := mat.NewDense(n, 1, append([]float64(nil), rhs...))

	var xMat mat.Dense
	if err := xMat.Solve(B, bMat); err != nil {
		if _, illConditioned := err.(mat.Condition); !illConditioned {
			return make([]float64, n)
		}
		// xMat still holds gonum's best-effort LU estimate.
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = xMat.At(i, 0)
	}
	return out
}
