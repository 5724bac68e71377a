package term

import "fmt"

// Undef denotes a variable that does not exist.
const Undef = Var(-1)

// Var is a handle to a solver variable, represented by its 0-based index in
// the variable store that created it.
type Var int

// Index returns the variable's index into the store.
func (v Var) Index() int {
	return int(v)
}

// Plus returns the affine term v + k.
func (v Var) Plus(k int) Term {
	return Term{Var: v, Offset: k}
}

// Minus returns the affine term v - k.
func (v Var) Minus(k int) Term {
	return Term{Var: v, Offset: -k}
}

// String implements the Stringer interface.
func (v Var) String() string {
	return fmt.Sprintf("x%d", int(v))
}

// Term is a variable with an additive constant, the only linear transform
// the solver's constraints evaluate. A bare variable is a Term with a zero
// offset. Terms let a single all-different constraint cover both plain value
// distinctness and derived forms such as the diagonal constraints of
// n-queens (queen + column, queen - column).
type Term struct {
	Var    Var
	Offset int
}

// Eval returns the term's value given the underlying variable's value.
func (t Term) Eval(value int) int {
	return value + t.Offset
}

// String implements the Stringer interface.
func (t Term) String() string {
	switch {
	case t.Offset > 0:
		return fmt.Sprintf("%s+%d", t.Var, t.Offset)
	case t.Offset < 0:
		return fmt.Sprintf("%s-%d", t.Var, -t.Offset)
	default:
		return t.Var.String()
	}
}

// Vars wraps a list of bare variables as zero-offset terms.
func Vars(vs ...Var) []Term {
	terms := make([]Term, len(vs))
	for i, v := range vs {
		terms[i] = Term{Var: v}
	}
	return terms
}
