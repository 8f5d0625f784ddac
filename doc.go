// Package lp implements the core solver of a small linear-programming and
// mixed-integer-linear-programming library: a standard-form compiler, a
// two-phase revised simplex, and a depth-first branch-and-bound driver for
// integer variables.
//
// A problem is built with a fluent API and solved directly:
//
//	p := lp.NewProblem("diet", lp.Minimize)
//	x := p.AddVariable("x")
//	y := p.AddVariable("y")
//	p.AddConstraint("feed", lp.GE, 8).AddTerm(1, x).AddTerm(2, y)
//	p.AddConstraint("protein", lp.GE, 6).AddTerm(3, x).AddTerm(1, y)
//	p.SetObjective(lp.NewExpr().AddTerm(3, x).AddTerm(2, y))
//
//	sol := p.Solve(context.Background(), lp.DefaultOptions())
//	fmt.Println(sol.Status, sol.ObjectiveValue)
//
// The package does not touch the filesystem, environment, or network: every
// Solve and SolveMIP call is self-contained and synchronous, and the
// context.Context argument is purely a cooperative cancellation signal
// checked between simplex iterations and branch-and-bound nodes.
package lp
