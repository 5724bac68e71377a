package solver

import "github.com/finch-cp/finch/term"

// Propagate applies forward checking: once one side is fixed, its value
// leaves the other side's domain.
func (c *notEqual) Propagate(trigger term.Var) PropagationResult {
	res := Unchanged

	for _, dir := range [2][2]term.Var{{c.a, c.b}, {c.b, c.a}} {
		fixed, other := dir[0], dir[1]
		if fixed != trigger {
			continue
		}
		fd := c.solver.domains[fixed.Index()]
		if !fd.Fixed() {
			continue
		}
		if c.solver.removeValue(other, fd.Value()) {
			res = Reduced
			if c.solver.domains[other.Index()].Empty() {
				return Contradiction
			}
		}
	}
	return res
}

// Propagate applies forward checking: every fixed member's transformed value
// is removed, offset-adjusted, from the domains of all other members.
func (c *allDifferent) Propagate(trigger term.Var) PropagationResult {
	res := Unchanged

	for i, m := range c.terms {
		if m.Var != trigger {
			continue
		}
		d := c.solver.domains[m.Var.Index()]
		if !d.Fixed() {
			continue
		}
		taken := m.Eval(d.Value())

		for j, o := range c.terms {
			if j == i {
				continue
			}
			// o must not evaluate to taken, so the underlying variable
			// loses the pre-image of taken under o's offset.
			if c.solver.removeValue(o.Var, taken-o.Offset) {
				res = Reduced
				if c.solver.domains[o.Var.Index()].Empty() {
					return Contradiction
				}
			}
		}
	}
	return res
}
