package solver

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/finch-cp/finch/config"
	"github.com/finch-cp/finch/domain"
	"github.com/finch-cp/finch/order"
	"github.com/finch-cp/finch/term"
)

const (
	VersionMajor = 1
	VersionMinor = 0
)

var (
	// ErrUnknownVariable is returned when a constraint references a variable
	// that was not created by this solver.
	ErrUnknownVariable = errors.New("solver: unknown variable")
	// ErrValueOutOfDomain signals an attempt to fix a variable to a value
	// absent from its live domain. Search never does this on purpose, so
	// seeing it surface indicates a solver bug.
	ErrValueOutOfDomain = errors.New("solver: value out of domain")
	// ErrReentrantSolve is returned when EnumerateAll is called while an
	// enumeration on the same solver is still running.
	ErrReentrantSolve = errors.New("solver: enumeration already in progress")
)

// Solver is a finite-domain constraint solver. A model is built by creating
// bounded integer variables and registering constraints over them; the model
// is then solved exhaustively with EnumerateAll. The model is fixed once
// solving begins: only search mutates variable state, and every mutation is
// recorded on a trail so it can be undone exactly on backtrack.
type Solver struct {
	// config is the solver's configuration
	config *config.Config
	// logger is the solver's logger
	logger *slog.Logger

	// Model Database Fields

	// names holds the user-supplied variable names, indexed on variables.
	names []string
	// domains holds the live (possibly reduced) domain of each variable.
	domains []*domain.Domain

	// Constraint Database Fields

	// constrs is a list of problem constraints.
	constrs []Constraint
	// watchers maps each variable to the constraints that reference it.
	watchers [][]int

	// Variable Order Fields

	// order keeps track of variable ordering during search.
	order *order.Order

	// Propagation Fields

	// propQ is the propagation worklist of variables with changed domains.
	propQ *term.Queue
	// inQueue tracks queue membership so a variable is enqueued at most once.
	inQueue []bool

	// Assignment Fields

	// trail is a chronological log of single-value domain reductions.
	trail []reduction
	// solving is set while an enumeration is in flight.
	solving bool

	// Stats Fields

	// conflicts keeps track of how many contradictions search has hit.
	conflicts int
	// branches keeps track of how many tentative assignments were made.
	branches int
	// propagations keeps track of how many worklist entries were processed.
	propagations int
	// solutions keeps track of how many solutions have been reported.
	solutions int
}

// reduction is one reversible domain mutation: val was removed from v.
type reduction struct {
	v   term.Var
	val int
}

// New returns a new initialized solver.
func New(c *config.Config) *Solver {
	s := &Solver{
		config:   c,
		logger:   c.Logger,
		names:    []string{},
		domains:  []*domain.Domain{},
		constrs:  []Constraint{},
		watchers: [][]int{},
		propQ:    term.NewQueue(),
		inQueue:  []bool{},
		trail:    []reduction{},
	}
	s.order = order.New(c.Order, &s.domains)

	return s
}

// Version returns the version of the solver.
func Version() string {
	return fmt.Sprintf("%d.%d", VersionMajor, VersionMinor)
}

// NewVar creates a new variable with the inclusive domain [lo, hi] and
// returns its handle. The bounds must satisfy lo <= hi.
func (s *Solver) NewVar(lo, hi int, name string) (term.Var, error) {
	d, err := domain.New(lo, hi)
	if err != nil {
		return term.Undef, err
	}
	v := term.Var(s.NVars())
	s.names = append(s.names, name)
	s.domains = append(s.domains, d)
	s.watchers = append(s.watchers, []int{})
	s.inQueue = append(s.inQueue, false)

	return v, nil
}

// AddNotEqual registers the constraint a != b.
func (s *Solver) AddNotEqual(a, b term.Var) error {
	if err := s.checkVars(a, b); err != nil {
		return err
	}
	s.addConstraint(&notEqual{solver: s, a: a, b: b})

	return nil
}

// AddAllDifferent registers a constraint requiring the given terms to take
// pairwise distinct values. Bare variables participate as zero-offset terms;
// see term.Vars.
func (s *Solver) AddAllDifferent(terms ...term.Term) error {
	for _, m := range terms {
		if err := s.checkVars(m.Var); err != nil {
			return err
		}
	}
	members := make([]term.Term, len(terms))
	copy(members, terms)
	s.addConstraint(&allDifferent{solver: s, terms: members})

	return nil
}

// addConstraint appends c to the constraint database and registers it as a
// watcher of each of its variables.
func (s *Solver) addConstraint(c Constraint) {
	idx := len(s.constrs)
	s.constrs = append(s.constrs, c)

	seen := map[term.Var]bool{}
	for _, v := range c.Vars() {
		if !seen[v] {
			seen[v] = true
			s.watchers[v.Index()] = append(s.watchers[v.Index()], idx)
		}
	}
}

// checkVars verifies that every given variable exists in the store.
func (s *Solver) checkVars(vs ...term.Var) error {
	for _, v := range vs {
		if v.Index() < 0 || v.Index() >= s.NVars() {
			return fmt.Errorf("%w: %s", ErrUnknownVariable, v)
		}
	}
	return nil
}

// Domain returns the live values of v's domain in ascending order.
func (s *Solver) Domain(v term.Var) []int {
	return s.domains[v.Index()].Values()
}

// Name returns the name v was created with.
func (s *Solver) Name(v term.Var) string {
	return s.names[v.Index()]
}

// NVars returns the number of variables.
func (s *Solver) NVars() int {
	return len(s.domains)
}

// NConstrs returns the number of constraints.
func (s *Solver) NConstrs() int {
	return len(s.constrs)
}

// NConflicts returns the number of conflicts hit by the last enumeration.
func (s *Solver) NConflicts() int {
	return s.conflicts
}

// NBranches returns the number of decisions made by the last enumeration.
func (s *Solver) NBranches() int {
	return s.branches
}

// NPropagations returns the number of propagation steps performed by the
// last enumeration.
func (s *Solver) NPropagations() int {
	return s.propagations
}

// NSolutions returns the number of solutions found by the last enumeration.
func (s *Solver) NSolutions() int {
	return s.solutions
}
