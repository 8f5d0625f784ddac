package lp

import "context"

// Solve compiles the Problem to standard form and runs the two-phase
// revised simplex method, per spec.md §4. Integer flags on variables are
// ignored; use SolveMIP to respect them.
func (p *Problem) Solve(ctx context.Context, opts SolveOptions) Solution {
	opts = opts.withTol()

	sf, err := p.compile(opts.Tol)
	if err != nil {
		return infeasibleSolution(0, err.Error())
	}

	res := solveStandardForm(ctx, sf, opts)
	return mapSolution(sf, res, p.sense, opts)
}
