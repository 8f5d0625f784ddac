package lp

import "math"

// Sense is the optimization direction of a Problem.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "max"
	}
	return "min"
}

// Comparator relates a constraint's left-hand expression to its right-hand
// constant.
type Comparator int

const (
	LE Comparator = iota // <=
	GE                   // >=
	EQ                   // ==
)

func (c Comparator) String() string {
	switch c {
	case LE:
		return "<="
	case GE:
		return ">="
	default:
		return "="
	}
}

// Variable is a decision variable of a Problem. A freshly added variable has
// lower bound 0, upper bound +Inf, and is continuous.
type Variable struct {
	name     string
	lower    float64
	upper    float64
	integer  bool
	problem  *Problem
}

// Name returns the variable's identifier.
func (v *Variable) Name() string { return v.name }

// SetBounds sets the variable's lower and upper bound. Either may be an
// infinity; a free variable is SetBounds(math.Inf(-1), math.Inf(1)).
func (v *Variable) SetBounds(lower, upper float64) *Variable {
	v.lower = lower
	v.upper = upper
	return v
}

// SetInteger flags the variable as integer for branch-and-bound.
func (v *Variable) SetInteger() *Variable {
	v.integer = true
	return v
}

func (v *Variable) bounds() (lower, upper float64) { return v.lower, v.upper }

// LinearTerm is a single variable/coefficient pair in a LinearExpression.
type LinearTerm struct {
	Var  *Variable
	Coef float64
}

// LinearExpression is an ordered sum of LinearTerms plus an affine constant.
// The same variable may appear in more than one term; its contribution is
// the algebraic sum of the matching coefficients.
type LinearExpression struct {
	Terms    []LinearTerm
	Constant float64
}

// NewExpr starts an empty linear expression.
func NewExpr() *LinearExpression {
	return &LinearExpression{}
}

// AddTerm appends a coef*v term and returns the receiver for chaining.
func (e *LinearExpression) AddTerm(coef float64, v *Variable) *LinearExpression {
	e.Terms = append(e.Terms, LinearTerm{Var: v, Coef: coef})
	return e
}

// Plus adds to the expression's affine constant.
func (e *LinearExpression) Plus(constant float64) *LinearExpression {
	e.Constant += constant
	return e
}

// Constraint is name (lhs expression) cmp rhs.
type Constraint struct {
	name    string
	lhs     LinearExpression
	cmp     Comparator
	rhs     float64
	problem *Problem
}

// Name returns the constraint's identifier.
func (c *Constraint) Name() string { return c.name }

// AddTerm appends coef*v to the constraint's left-hand expression.
func (c *Constraint) AddTerm(coef float64, v *Variable) *Constraint {
	c.lhs.AddTerm(coef, v)
	return c
}

// Problem is a user-facing, immutable-after-construction linear (or mixed
// integer linear) program: an optimization sense, an objective expression,
// and ordered variables and constraints.
type Problem struct {
	name        string
	sense       Sense
	objective   LinearExpression
	variables   []*Variable
	constraints []*Constraint
}

// NewProblem starts a new problem with the given name and sense.
func NewProblem(name string, sense Sense) *Problem {
	return &Problem{name: name, sense: sense}
}

// Name returns the problem's name.
func (p *Problem) Name() string { return p.name }

// Sense returns the problem's optimization direction.
func (p *Problem) Sense() Sense { return p.sense }

// Variables returns the problem's variables in declaration order. The
// returned slice is a copy; mutating it does not affect the problem.
func (p *Problem) Variables() []*Variable {
	out := make([]*Variable, len(p.variables))
	copy(out, p.variables)
	return out
}

// Constraints returns the problem's constraints in declaration order. The
// returned slice is a copy; mutating it does not affect the problem.
func (p *Problem) Constraints() []*Constraint {
	out := make([]*Constraint, len(p.constraints))
	copy(out, p.constraints)
	return out
}

// AddVariable adds a continuous variable with default bounds [0, +Inf).
func (p *Problem) AddVariable(name string) *Variable {
	v := &Variable{name: name, lower: 0, upper: math.Inf(1), problem: p}
	p.variables = append(p.variables, v)
	return v
}

// AddBinaryVariable is a convenience constructor for a {0,1} integer
// variable.
func (p *Problem) AddBinaryVariable(name string) *Variable {
	return p.AddVariable(name).SetBounds(0, 1).SetInteger()
}

// AddIntegerVariable is a convenience constructor for a non-negative
// integer variable with no upper bound.
func (p *Problem) AddIntegerVariable(name string) *Variable {
	return p.AddVariable(name).SetBounds(0, math.Inf(1)).SetInteger()
}

// AddConstraint adds a constraint "lhs cmp rhs" with an initially empty
// left-hand expression; build it up with Constraint.AddTerm.
func (p *Problem) AddConstraint(name string, cmp Comparator, rhs float64) *Constraint {
	c := &Constraint{name: name, cmp: cmp, rhs: rhs, problem: p}
	p.constraints = append(p.constraints, c)
	return c
}

// SetObjective replaces the problem's objective expression.
func (p *Problem) SetObjective(expr *LinearExpression) {
	p.objective = *expr
}
