package lp

import "math"

// mapSolution reconstructs the original-space Solution from a standardForm
// and the two-phase driver's result — spec.md §4.4. Duals and reduced
// costs are never negated for a min-sense solve: the sign flip already
// happened once, when the standard form's c was set to -original for
// Minimize (see SPEC_FULL.md §4.4 for the derivation against seed
// scenario 3).
func mapSolution(sf *standardForm, res lpResult, sense Sense, opts SolveOptions) Solution {
	switch res.status {
	case StatusInfeasible:
		return infeasibleSolution(res.iterations, res.message)
	case StatusUnbounded:
		return unboundedSolution(res.iterations, res.message)
	case StatusIterationLimit:
		return iterationLimitSolution(res.iterations, res.message)
	}

	primal := make(map[string]float64, len(sf.originalNames))
	reducedCosts := make(map[string]float64, len(sf.originalNames))
	for _, name := range sf.originalNames {
		value := sf.offsets[name]
		for _, comp := range sf.components[name] {
			value += comp.coef * res.x[comp.index]
		}
		primal[name] = snapZero(value)

		var rc float64
		for _, comp := range sf.components[name] {
			rc += comp.coef * res.reducedCosts[comp.index]
		}
		reducedCosts[name] = snapZero(rc)
	}

	var duals map[string]float64
	if opts.ReturnDuals && len(res.duals) > 0 {
		duals = make(map[string]float64, len(sf.constraintNames))
		for i, name := range sf.constraintNames {
			duals[name] = snapZero(res.duals[i])
		}
	}

	var objectiveValue float64
	if sense == Maximize {
		objectiveValue = sf.objectiveConstant + res.objective
	} else {
		objectiveValue = sf.objectiveConstant - res.objective
	}

	return Solution{
		Status:         StatusOptimal,
		ObjectiveValue: &objectiveValue,
		Primal:         primal,
		ReducedCosts:   reducedCosts,
		Duals:          duals,
		Iterations:     res.iterations,
	}
}

func snapZero(v float64) float64 {
	if math.Abs(v) < 1e-12 {
		return 0
	}
	return v
}
