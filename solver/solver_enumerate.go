package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/finch-cp/finch/term"
)

const tracerName = "github.com/finch-cp/finch/solver"

// ErrStop may be returned by a solution callback to end enumeration early.
// EnumerateAll treats it as a clean stop, not a failure.
var ErrStop = errors.New("solver: stop enumeration")

// Solution is a complete, immutable assignment of one value to every
// variable, handed to the callback by value. It is a snapshot: later search
// activity does not change it, and it cannot change engine state.
type Solution struct {
	names  []string
	values []int
}

// Value returns the value assigned to v.
func (sol Solution) Value(v term.Var) int {
	return sol.values[v.Index()]
}

// Name returns the name v was created with.
func (sol Solution) Name(v term.Var) string {
	return sol.names[v.Index()]
}

// Len returns the number of variables in the solution.
func (sol Solution) Len() int {
	return len(sol.values)
}

// Callback receives each discovered solution: its 0-based index in
// discovery order, the assignment, and the time elapsed since enumeration
// began. Returning a non-nil error aborts enumeration; returning ErrStop
// aborts it without reporting a failure.
type Callback func(n int, sol Solution, elapsed time.Duration) error

// Stats aggregates the outcome of one enumeration. Complete is true only
// when the whole search space was exhausted: a callback failure, an early
// stop, or a cancelled context all leave it false.
type Stats struct {
	Conflicts int
	Branches  int
	Solutions int
	WallTime  time.Duration
	Complete  bool
}

// CallbackError wraps a failure returned by the solution callback.
type CallbackError struct {
	Solution int
	Err      error
}

// Error implements the error interface.
func (e *CallbackError) Error() string {
	return fmt.Sprintf("solution callback %d: %v", e.Solution, e.Err)
}

// Unwrap returns the callback's error.
func (e *CallbackError) Unwrap() error {
	return e.Err
}

// EnumerateAll exhaustively enumerates the model's solutions, invoking
// onSolution exactly once per solution in a deterministic discovery order,
// and returns the aggregated statistics. The wall clock starts before the
// first search step and includes callback execution time.
//
// The solver is exclusively owned by one in-flight call: the callback must
// not re-enter EnumerateAll on the same solver. The context is checked
// between solutions, so cancellation is best-effort rather than immediate.
func (s *Solver) EnumerateAll(ctx context.Context, onSolution Callback) (Stats, error) {
	if s.solving {
		return Stats{}, ErrReentrantSolve
	}
	s.solving = true
	defer func() { s.solving = false }()

	runID := uuid.NewString()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "solver.EnumerateAll",
		trace.WithAttributes(
			attribute.String("solver.run_id", runID),
			attribute.Int("solver.vars", s.NVars()),
			attribute.Int("solver.constraints", s.NConstrs()),
		))
	defer span.End()
	s.logger.Debug("enumeration started",
		"run_id", runID, "vars", s.NVars(), "constraints", s.NConstrs())

	s.conflicts = 0
	s.branches = 0
	s.propagations = 0
	s.solutions = 0

	stopped := false
	start := time.Now()

	err := s.search(func() error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if cerr := onSolution(s.solutions, s.snapshot(), time.Since(start)); cerr != nil {
			if errors.Is(cerr, ErrStop) {
				// The callback consumed this solution before stopping.
				s.solutions++
				stopped = true
				return ErrStop
			}
			return &CallbackError{Solution: s.solutions, Err: cerr}
		}
		s.solutions++

		if max := s.config.MaxSolutions; max > 0 && uint(s.solutions) >= max {
			stopped = true
			return ErrStop
		}
		return nil
	})
	if stopped {
		err = nil
	}

	stats := Stats{
		Conflicts: s.conflicts,
		Branches:  s.branches,
		Solutions: s.solutions,
		WallTime:  time.Since(start),
		Complete:  err == nil && !stopped,
	}
	span.SetAttributes(
		attribute.Int("solver.solutions", stats.Solutions),
		attribute.Int("solver.conflicts", stats.Conflicts),
		attribute.Int("solver.branches", stats.Branches),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return stats, err
	}
	s.logger.Debug("enumeration finished",
		"run_id", runID, "solutions", stats.Solutions, "complete", stats.Complete)

	return stats, nil
}

// snapshot copies the current all-fixed assignment into a Solution.
func (s *Solver) snapshot() Solution {
	values := make([]int, s.NVars())
	for i, d := range s.domains {
		values[i] = d.Value()
	}
	return Solution{names: s.names, values: values}
}
