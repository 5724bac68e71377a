package order

import (
	"github.com/finch-cp/finch/domain"
	"github.com/finch-cp/finch/term"
)

// Strategy determines which unfixed variable the search branches on next.
// Both strategies are deterministic so repeated solves of the same model
// enumerate solutions in the same order.
type Strategy int

const (
	// InDeclarationOrder picks the first unfixed variable by index.
	InDeclarationOrder = Strategy(0)
	// SmallestDomain picks the unfixed variable with the fewest remaining
	// values, breaking ties by index.
	SmallestDomain = Strategy(1)
)

// String implements the Stringer interface.
func (s Strategy) String() string {
	switch s {
	case SmallestDomain:
		return "smallest-domain"
	default:
		return "declaration-order"
	}
}

// Order assists with variable ordering during search. It reads the solver's
// live domains through a pointer so reductions made by propagation are
// visible without any bookkeeping calls.
type Order struct {
	strategy Strategy
	domains  *[]*domain.Domain
}

// New returns a new Order over the given domain store.
func New(strategy Strategy, domains *[]*domain.Domain) *Order {
	return &Order{
		strategy: strategy,
		domains:  domains,
	}
}

// Choose returns the next variable to branch on, or term.Undef when every
// variable is fixed.
func (o *Order) Choose() term.Var {
	if o.strategy == SmallestDomain {
		return o.chooseSmallest()
	}
	return o.chooseFirst()
}

// chooseFirst returns the first unfixed variable in declaration order.
func (o *Order) chooseFirst() term.Var {
	for i, d := range *o.domains {
		if !d.Fixed() {
			return term.Var(i)
		}
	}
	return term.Undef
}

// chooseSmallest returns the unfixed variable with the smallest live domain.
func (o *Order) chooseSmallest() term.Var {
	best := term.Undef
	bestSize := 0

	for i, d := range *o.domains {
		if d.Fixed() {
			continue
		}
		if best == term.Undef || d.Size() < bestSize {
			best = term.Var(i)
			bestSize = d.Size()
		}
	}
	return best
}
