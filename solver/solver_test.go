package solver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finch-cp/finch/config"
	"github.com/finch-cp/finch/order"
	"github.com/finch-cp/finch/term"
)

// australiaAdjacent lists each mainland adjacency once, over the region
// order WA, NT, SA, Q, NSW, V.
var australiaAdjacent = [][2]int{
	{0, 1}, // WA-NT
	{0, 2}, // WA-SA
	{1, 2}, // NT-SA
	{1, 3}, // NT-Q
	{2, 3}, // SA-Q
	{2, 4}, // SA-NSW
	{2, 5}, // SA-V
	{3, 4}, // Q-NSW
	{4, 5}, // NSW-V
}

// coloringModel builds a 3-coloring model over the given regions with one
// not-equal constraint per adjacent pair.
func coloringModel(t *testing.T, conf *config.Config, regions []string, adjacent [][2]int) (*Solver, []term.Var) {
	t.Helper()
	s := New(conf)

	vars := make([]term.Var, len(regions))
	for i, name := range regions {
		v, err := s.NewVar(0, 2, name)
		require.NoError(t, err)
		vars[i] = v
	}
	for _, e := range adjacent {
		require.NoError(t, s.AddNotEqual(vars[e[0]], vars[e[1]]))
	}
	return s, vars
}

// australia builds the classic Australia map-coloring model: the six
// mainland regions plus Tasmania, which borders nothing and so multiplies
// the mainland colorings by the color count.
func australia(t *testing.T, conf *config.Config) (*Solver, []term.Var) {
	t.Helper()
	regions := []string{"WA", "NT", "SA", "Q", "NSW", "V", "T"}

	return coloringModel(t, conf, regions, australiaAdjacent)
}

// queens builds the n-queens model: one variable per column holding the
// queen's row, all rows different, and both diagonal families different via
// affine terms.
func queens(t *testing.T, conf *config.Config, n int) (*Solver, []term.Var) {
	t.Helper()
	s := New(conf)

	vars := make([]term.Var, n)
	for i := range vars {
		v, err := s.NewVar(0, n-1, "")
		require.NoError(t, err)
		vars[i] = v
	}
	require.NoError(t, s.AddAllDifferent(term.Vars(vars...)...))

	diag1 := make([]term.Term, n)
	diag2 := make([]term.Term, n)
	for i, v := range vars {
		diag1[i] = v.Plus(i)
		diag2[i] = v.Minus(i)
	}
	require.NoError(t, s.AddAllDifferent(diag1...))
	require.NoError(t, s.AddAllDifferent(diag2...))

	return s, vars
}

// collect exhausts the model and returns every solution as a value slice.
func collect(t *testing.T, s *Solver, vars []term.Var) ([][]int, Stats) {
	t.Helper()
	var got [][]int

	stats, err := s.EnumerateAll(context.Background(), func(n int, sol Solution, _ time.Duration) error {
		require.Equal(t, len(got), n, "callback indices must be sequential")
		row := make([]int, len(vars))
		for i, v := range vars {
			row[i] = sol.Value(v)
		}
		got = append(got, row)
		return nil
	})
	require.NoError(t, err)

	return got, stats
}

func TestMapColoringAustralia(t *testing.T) {
	s, vars := australia(t, config.New())
	solutions, stats := collect(t, s, vars)

	assert.Len(t, solutions, 18)
	assert.Equal(t, 18, stats.Solutions)
	assert.True(t, stats.Complete)

	seen := map[[7]int]bool{}
	for _, sol := range solutions {
		for _, e := range australiaAdjacent {
			assert.NotEqual(t, sol[e[0]], sol[e[1]],
				"solution %v violates adjacency %v", sol, e)
		}
		var key [7]int
		copy(key[:], sol)
		assert.False(t, seen[key], "duplicate solution %v", sol)
		seen[key] = true
	}
}

func TestMapColoringMainlandOnly(t *testing.T) {
	// Without Tasmania the WA-NT-SA triangle pins a color permutation and
	// forces Q, NSW and V in turn, leaving one coloring per permutation.
	regions := []string{"WA", "NT", "SA", "Q", "NSW", "V"}

	s, vars := coloringModel(t, config.New(), regions, australiaAdjacent)
	solutions, stats := collect(t, s, vars)

	assert.Len(t, solutions, 6)
	assert.True(t, stats.Complete)
}

func TestMapColoringSmallestDomainSameCount(t *testing.T) {
	conf := config.New()
	conf.Order = order.SmallestDomain

	s, vars := australia(t, conf)
	solutions, _ := collect(t, s, vars)

	assert.Len(t, solutions, 18)
}

func TestQueens4(t *testing.T) {
	s, vars := queens(t, config.New(), 4)
	solutions, _ := collect(t, s, vars)

	require.Len(t, solutions, 2)
	// The two 4-queens solutions are mirrors of each other.
	assert.Equal(t, []int{1, 3, 0, 2}, solutions[0])
	assert.Equal(t, []int{2, 0, 3, 1}, solutions[1])
}

func TestQueens8(t *testing.T) {
	s, vars := queens(t, config.New(), 8)
	solutions, stats := collect(t, s, vars)

	assert.Len(t, solutions, 92)
	assert.True(t, stats.Complete)

	for _, sol := range solutions {
		for i := 0; i < len(sol); i++ {
			for j := i + 1; j < len(sol); j++ {
				assert.NotEqual(t, sol[i], sol[j], "row clash in %v", sol)
				assert.NotEqual(t, sol[i]+i, sol[j]+j, "diagonal clash in %v", sol)
				assert.NotEqual(t, sol[i]-i, sol[j]-j, "anti-diagonal clash in %v", sol)
			}
		}
	}
}

func TestEnumerationMatchesBruteForce(t *testing.T) {
	build := func() (*Solver, []term.Var) {
		s := New(config.New())
		a, err := s.NewVar(0, 2, "a")
		require.NoError(t, err)
		b, err := s.NewVar(0, 2, "b")
		require.NoError(t, err)
		c, err := s.NewVar(0, 2, "c")
		require.NoError(t, err)

		require.NoError(t, s.AddNotEqual(a, b))
		require.NoError(t, s.AddAllDifferent(b.Plus(0), c.Plus(1)))

		return s, []term.Var{a, b, c}
	}

	want := 0
	for a := 0; a <= 2; a++ {
		for b := 0; b <= 2; b++ {
			for c := 0; c <= 2; c++ {
				if a != b && b != c+1 {
					want++
				}
			}
		}
	}

	s, vars := build()
	solutions, _ := collect(t, s, vars)
	assert.Len(t, solutions, want)
}

func TestEnumerationIsDeterministic(t *testing.T) {
	s, vars := australia(t, config.New())

	first, _ := collect(t, s, vars)
	second, _ := collect(t, s, vars)

	require.Equal(t, first, second)
}

func TestSingleFreeVariable(t *testing.T) {
	s := New(config.New())
	v, err := s.NewVar(3, 7, "x")
	require.NoError(t, err)

	solutions, stats := collect(t, s, []term.Var{v})

	require.Len(t, solutions, 5)
	for i, sol := range solutions {
		assert.Equal(t, 3+i, sol[0], "values must come out in ascending order")
	}
	assert.True(t, stats.Complete)
}

func TestZeroVariables(t *testing.T) {
	s := New(config.New())

	count := 0
	stats, err := s.EnumerateAll(context.Background(), func(n int, sol Solution, _ time.Duration) error {
		count++
		assert.Equal(t, 0, sol.Len())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, stats.Solutions)
	assert.True(t, stats.Complete)
}

func TestUnsatisfiableModel(t *testing.T) {
	s := New(config.New())
	a, err := s.NewVar(0, 0, "a")
	require.NoError(t, err)
	b, err := s.NewVar(0, 0, "b")
	require.NoError(t, err)
	require.NoError(t, s.AddNotEqual(a, b))

	solutions, stats := collect(t, s, []term.Var{a, b})

	assert.Empty(t, solutions)
	assert.True(t, stats.Complete)
	assert.GreaterOrEqual(t, stats.Conflicts, 1)
}

func TestInvalidDomainFailsBeforeSolve(t *testing.T) {
	s := New(config.New())

	_, err := s.NewVar(5, 2, "bad")
	require.Error(t, err)
	assert.Equal(t, 0, s.NVars())
}

func TestCallbackFailureAbortsEnumeration(t *testing.T) {
	s, _ := australia(t, config.New())
	boom := errors.New("boom")

	calls := 0
	stats, err := s.EnumerateAll(context.Background(), func(n int, _ Solution, _ time.Duration) error {
		calls++
		if n == 1 {
			return boom
		}
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var cbErr *CallbackError
	require.ErrorAs(t, err, &cbErr)
	assert.Equal(t, 1, cbErr.Solution)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, stats.Solutions)
	assert.False(t, stats.Complete)
}

func TestErrStopEndsEnumerationCleanly(t *testing.T) {
	s, _ := australia(t, config.New())

	stats, err := s.EnumerateAll(context.Background(), func(n int, _ Solution, _ time.Duration) error {
		if n == 4 {
			return ErrStop
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 5, stats.Solutions)
	assert.False(t, stats.Complete)
}

func TestMaxSolutionsCap(t *testing.T) {
	conf := config.New()
	conf.MaxSolutions = 5

	s, vars := queens(t, conf, 8)

	var got [][]int
	stats, err := s.EnumerateAll(context.Background(), func(n int, sol Solution, _ time.Duration) error {
		row := make([]int, len(vars))
		for i, v := range vars {
			row[i] = sol.Value(v)
		}
		got = append(got, row)
		return nil
	})

	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Equal(t, 5, stats.Solutions)
	assert.False(t, stats.Complete)
}

func TestContextCancellationStopsSearch(t *testing.T) {
	s, _ := australia(t, config.New())
	ctx, cancel := context.WithCancel(context.Background())

	stats, err := s.EnumerateAll(ctx, func(n int, _ Solution, _ time.Duration) error {
		cancel()
		return nil
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, stats.Solutions)
	assert.False(t, stats.Complete)
}

func TestReentrantSolveRejected(t *testing.T) {
	s, _ := australia(t, config.New())

	var inner error
	_, err := s.EnumerateAll(context.Background(), func(n int, _ Solution, _ time.Duration) error {
		_, inner = s.EnumerateAll(context.Background(), func(int, Solution, time.Duration) error {
			return nil
		})
		return ErrStop
	})

	require.NoError(t, err)
	assert.ErrorIs(t, inner, ErrReentrantSolve)
}

func TestSolutionNamesAndElapsed(t *testing.T) {
	s := New(config.New())
	v, err := s.NewVar(0, 0, "only")
	require.NoError(t, err)

	stats, err := s.EnumerateAll(context.Background(), func(n int, sol Solution, elapsed time.Duration) error {
		assert.Equal(t, "only", sol.Name(v))
		assert.GreaterOrEqual(t, elapsed, time.Duration(0))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Solutions)
	assert.GreaterOrEqual(t, stats.WallTime, time.Duration(0))
}
