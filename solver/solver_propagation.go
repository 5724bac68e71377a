package solver

import "github.com/finch-cp/finch/term"

// enqueue puts a variable whose domain just changed onto the propagation
// worklist. A variable appears in the worklist at most once.
func (s *Solver) enqueue(v term.Var) {
	if s.inQueue[v.Index()] {
		return
	}
	s.inQueue[v.Index()] = true
	s.propQ.Insert(v)
}

// removeValue removes val from v's domain, recording the reduction on the
// trail so it can be undone on backtrack. Returns true if the domain
// changed.
func (s *Solver) removeValue(v term.Var, val int) bool {
	if !s.domains[v.Index()].Remove(val) {
		return false
	}
	s.trail = append(s.trail, reduction{v: v, val: val})
	s.enqueue(v)

	return true
}

// propagate drains the worklist to a fixed point, re-running every
// constraint incident to each changed variable. Reductions made while
// draining grow the worklist, so filtering cascades transitively. Returns
// the first constraint that emptied a domain, or nil when a fixed point was
// reached.
func (s *Solver) propagate() Constraint {
	for s.propQ.Size() > 0 {
		v := s.propQ.Dequeue()
		s.inQueue[v.Index()] = false
		s.propagations++

		for _, idx := range s.watchers[v.Index()] {
			c := s.constrs[idx]

			if c.Propagate(v) == Contradiction {
				s.logger.Debug("contradiction", "constraint", c.String(), "var", v.String())
				s.clearQueue()

				return c
			}
		}
	}
	return nil
}

// clearQueue empties the worklist after a contradiction, resetting the
// membership flags.
func (s *Solver) clearQueue() {
	for s.propQ.Size() > 0 {
		v := s.propQ.Dequeue()
		s.inQueue[v.Index()] = false
	}
}
