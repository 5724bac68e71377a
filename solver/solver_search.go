package solver

import (
	"fmt"

	"github.com/finch-cp/finch/term"
)

// frame is one decision point on the search stack: the variable branched on,
// the candidate values captured at frame entry, a cursor into them, and the
// trail position to unwind to before trying the next candidate.
type frame struct {
	v      term.Var
	values []int
	next   int
	mark   int
}

// search explores the assignment tree depth-first and calls emit once per
// complete, consistent assignment, in discovery order. It returns when the
// tree is exhausted or emit returns an error. Domains are fully restored
// before it returns.
func (s *Solver) search(emit func() error) error {
	defer s.undoTo(0)

	// Reach an initial fixed point: variables fixed by construction prune
	// their neighbors before the first decision.
	for i := range s.domains {
		s.enqueue(term.Var(i))
	}
	if confl := s.propagate(); confl != nil {
		s.conflicts++
		return nil
	}

	frames := []*frame{}
	descend := true

	for {
		if descend {
			v := s.order.Choose()

			if v == term.Undef {
				// Every variable is fixed: report the solution, then force
				// a backtrack so enumeration continues past it.
				if err := emit(); err != nil {
					return err
				}
				if len(frames) == 0 {
					// Nothing was ever branched on (zero variables, or the
					// root fixed point decided everything).
					return nil
				}
				descend = false
				continue
			}
			frames = append(frames, &frame{
				v:      v,
				values: s.domains[v.Index()].Values(),
				mark:   len(s.trail),
			})
		}

		f := frames[len(frames)-1]
		s.undoTo(f.mark)

		if f.next >= len(f.values) {
			// Frame exhausted, pop and resume the parent.
			frames = frames[:len(frames)-1]
			s.logger.Debug("backtrack", "var", f.v.String(), "depth", len(frames))

			if len(frames) == 0 {
				return nil
			}
			descend = false
			continue
		}
		val := f.values[f.next]
		f.next++
		s.branches++

		if err := s.assume(f.v, val); err != nil {
			return err
		}
		if confl := s.propagate(); confl != nil {
			s.conflicts++
			descend = false
			continue
		}
		descend = true
	}
}

// assume tentatively fixes v to val by removing every other value from its
// domain, each removal recorded on the trail.
func (s *Solver) assume(v term.Var, val int) error {
	d := s.domains[v.Index()]

	if !d.Contains(val) {
		return fmt.Errorf("%w: %s = %d", ErrValueOutOfDomain, v, val)
	}
	for _, o := range d.Values() {
		if o != val {
			s.removeValue(v, o)
		}
	}
	s.logger.Debug("assume", "var", v.String(), "value", val)

	return nil
}

// undoTo pops trail entries until the trail is back at mark, re-inserting
// each removed value. This restores every domain to its exact state at the
// time the mark was taken.
func (s *Solver) undoTo(mark int) {
	for len(s.trail) > mark {
		r := s.trail[len(s.trail)-1]
		s.trail = s.trail[:len(s.trail)-1]
		s.domains[r.v.Index()].Add(r.val)
	}
}
