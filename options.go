package lp

// PivotRule selects the simplex entering-column strategy (and the
// leaving-variable tie-break that goes with it).
type PivotRule int

const (
	// Dantzig enters the column with the most positive reduced cost;
	// ties on the ratio test break on the first minimum found.
	Dantzig PivotRule = iota
	// Bland enters the minimum-index improving column and breaks ratio
	// ties on the minimum leaving-basis column index. It is slower but
	// provably cannot cycle.
	Bland
)

// SolveOptions controls the numerical behavior of Solve and SolveMIP.
type SolveOptions struct {
	// MaxIters bounds the total number of simplex pivots across Phase I
	// and Phase II of a single LP solve. Each branch-and-bound node draws
	// from its own independent budget of this size.
	MaxIters int
	// Tol is the numerical tolerance used for all comparisons: degeneracy
	// clamping, optimality, integrality, and bound pruning.
	Tol float64
	// PivotRule selects Dantzig's rule or Bland's anti-cycling rule.
	PivotRule PivotRule
	// ReturnDuals controls whether Solution.Duals is populated. When
	// false, Duals is nil even for an optimal solution.
	ReturnDuals bool
}

// DefaultOptions returns reasonable defaults: 10,000 total pivots, a
// tolerance of 1e-9, Dantzig's rule, and duals requested.
func DefaultOptions() SolveOptions {
	return SolveOptions{
		MaxIters:    10000,
		Tol:         1e-9,
		PivotRule:   Dantzig,
		ReturnDuals: true,
	}
}

func (o SolveOptions) withTol() SolveOptions {
	if o.Tol <= 0 {
		o.Tol = 1e-9
	}
	if o.MaxIters <= 0 {
		o.MaxIters = 10000
	}
	return o
}
