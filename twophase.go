package lp

import "context"

// lpResult is the outcome of running the two-phase driver on a compiled
// standardForm: a Status plus whatever numerical fields are meaningful for
// that status.
type lpResult struct {
	status       Status
	x            []float64
	objective    float64
	duals        []float64
	reducedCosts []float64
	iterations   int
	message      string
}

// solveStandardForm runs Phase I (if the form has artificial columns) then
// Phase II, per spec.md §4.3.
func solveStandardForm(ctx context.Context, sf *standardForm, opts SolveOptions) lpResult {
	m, _ := sf.A.Dims()
	basis := append([]int(nil), sf.basis...)
	iterations := 0

	if len(sf.artificial) > 0 && m > 0 {
		n := len(sf.c)
		cPhase1 := make([]float64, n)
		for idx := range sf.artificial {
			cPhase1[idx] = -1.0
		}

		phase1 := runSimplex(ctx, sf.A, sf.b, cPhase1, basis, opts, nil, opts.MaxIters)
		iterations += phase1.iterations

		switch phase1.outcome {
		case outcomeIterationLimit:
			return lpResult{status: StatusIterationLimit, iterations: iterations, message: "Hit iteration limit in Phase I."}
		case outcomeUnbounded:
			return lpResult{status: StatusInfeasible, iterations: iterations, message: "Phase I auxiliary problem is unbounded; the model is malformed."}
		}

		var sumArtificial float64
		for idx := range sf.artificial {
			sumArtificial += phase1.x[idx]
		}
		if sumArtificial > opts.Tol {
			return lpResult{status: StatusInfeasible, iterations: iterations, message: "Infeasible."}
		}

		basis = phase1.basis
	}

	remaining := opts.MaxIters - iterations
	phase2 := runSimplex(ctx, sf.A, sf.b, sf.c, basis, opts, sf.artificial, remaining)
	iterations += phase2.iterations

	switch phase2.outcome {
	case outcomeIterationLimit:
		return lpResult{status: StatusIterationLimit, iterations: iterations, message: "Hit iteration limit in Phase II."}
	case outcomeUnbounded:
		return lpResult{status: StatusUnbounded, iterations: iterations, message: "Unbounded."}
	}

	return lpResult{
		status:       StatusOptimal,
		x:            phase2.x,
		objective:    phase2.objective,
		duals:        phase2.duals,
		reducedCosts: phase2.reducedCosts,
		iterations:   iterations,
	}
}
