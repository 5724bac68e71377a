package solver

import (
	"fmt"
	"strings"

	"github.com/finch-cp/finch/term"
)

// PropagationResult reports the effect of one propagation pass.
type PropagationResult int

const (
	// Unchanged means no domain was reduced.
	Unchanged = PropagationResult(0)
	// Reduced means at least one value was removed from some domain.
	Reduced = PropagationResult(1)
	// Contradiction means a domain was emptied; the current search branch
	// cannot lead to a solution.
	Contradiction = PropagationResult(2)
)

// String implements the Stringer interface.
func (r PropagationResult) String() string {
	switch r {
	case Reduced:
		return "reduced"
	case Contradiction:
		return "contradiction"
	default:
		return "unchanged"
	}
}

// Constraint restricts the values its variables may take simultaneously.
// Constraints are stateless between solves: all per-node bookkeeping lives
// on the solver's trail and is unwound on backtrack.
type Constraint interface {
	// Vars returns the variables the constraint references.
	Vars() []term.Var
	// IsConsistent reports whether the currently fixed subset of the
	// constraint's variables satisfies the rule. Unfixed variables never
	// cause inconsistency.
	IsConsistent() bool
	// Propagate applies the constraint's filtering after trigger's domain
	// changed, removing values that can no longer appear in any solution
	// of this branch.
	Propagate(trigger term.Var) PropagationResult
	// String implements the Stringer interface.
	String() string
}

// notEqual requires two variables to take different values.
type notEqual struct {
	solver *Solver
	a, b   term.Var
}

// Vars returns the constraint's variables.
func (c *notEqual) Vars() []term.Var {
	return []term.Var{c.a, c.b}
}

// IsConsistent returns false only when both sides are fixed to equal values.
func (c *notEqual) IsConsistent() bool {
	da := c.solver.domains[c.a.Index()]
	db := c.solver.domains[c.b.Index()]

	if da.Fixed() && db.Fixed() {
		return da.Value() != db.Value()
	}
	return true
}

// String implements the Stringer interface.
func (c *notEqual) String() string {
	return fmt.Sprintf("%s != %s", c.a, c.b)
}

// allDifferent requires a set of affine terms to take pairwise distinct
// values.
type allDifferent struct {
	solver *Solver
	terms  []term.Term
}

// Vars returns the constraint's variables.
func (c *allDifferent) Vars() []term.Var {
	vars := make([]term.Var, len(c.terms))
	for i, m := range c.terms {
		vars[i] = m.Var
	}
	return vars
}

// IsConsistent returns false when two fixed members evaluate to the same
// transformed value.
func (c *allDifferent) IsConsistent() bool {
	seen := map[int]bool{}

	for _, m := range c.terms {
		d := c.solver.domains[m.Var.Index()]
		if !d.Fixed() {
			continue
		}
		val := m.Eval(d.Value())
		if seen[val] {
			return false
		}
		seen[val] = true
	}
	return true
}

// String implements the Stringer interface.
func (c *allDifferent) String() string {
	strs := make([]string, len(c.terms))
	for i, m := range c.terms {
		strs[i] = m.String()
	}
	return "alldifferent(" + strings.Join(strs, ",") + ")"
}
