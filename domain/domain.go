package domain

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// ErrInvalidBounds is returned when a domain is constructed with a lower
// bound greater than its upper bound.
var ErrInvalidBounds = errors.New("domain: lower bound exceeds upper bound")

// Domain is the ordered set of integer values a variable may currently take.
// It is created over an inclusive interval [lo, hi] and shrinks (and grows
// back, on backtracking) by individual value removal and re-insertion. The
// set is backed by a bitmap so membership tests and updates are O(1).
type Domain struct {
	lo    int
	hi    int
	words []uint64
	size  int
}

// New returns a full domain over the inclusive interval [lo, hi].
func New(lo, hi int) (*Domain, error) {
	if lo > hi {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidBounds, lo, hi)
	}
	n := hi - lo + 1
	d := &Domain{
		lo:    lo,
		hi:    hi,
		words: make([]uint64, (n+63)/64),
		size:  n,
	}
	for v := lo; v <= hi; v++ {
		d.words[(v-lo)/64] |= 1 << uint((v-lo)%64)
	}
	return d, nil
}

// Contains reports whether v is currently in the domain.
func (d *Domain) Contains(v int) bool {
	if v < d.lo || v > d.hi {
		return false
	}
	return d.words[(v-d.lo)/64]&(1<<uint((v-d.lo)%64)) != 0
}

// Remove removes v from the domain, returning true if v was present.
func (d *Domain) Remove(v int) bool {
	if !d.Contains(v) {
		return false
	}
	d.words[(v-d.lo)/64] &^= 1 << uint((v-d.lo)%64)
	d.size--

	return true
}

// Add re-inserts a previously removed value. It is the inverse of Remove and
// is only valid for values within the domain's original bounds.
func (d *Domain) Add(v int) bool {
	if v < d.lo || v > d.hi || d.Contains(v) {
		return false
	}
	d.words[(v-d.lo)/64] |= 1 << uint((v-d.lo)%64)
	d.size++

	return true
}

// Size returns the number of values currently in the domain.
func (d *Domain) Size() int {
	return d.size
}

// Empty returns true if no values remain.
func (d *Domain) Empty() bool {
	return d.size == 0
}

// Fixed returns true if exactly one value remains.
func (d *Domain) Fixed() bool {
	return d.size == 1
}

// Value returns the single remaining value of a fixed domain. It is only
// meaningful when Fixed() is true.
func (d *Domain) Value() int {
	return d.Min()
}

// Min returns the smallest value currently in the domain, or the integer
// just above the upper bound when the domain is empty.
func (d *Domain) Min() int {
	for i, w := range d.words {
		if w != 0 {
			return d.lo + i*64 + bits.TrailingZeros64(w)
		}
	}
	return d.hi + 1
}

// Values returns the remaining values in ascending order.
func (d *Domain) Values() []int {
	vals := make([]int, 0, d.size)
	for v := d.lo; v <= d.hi; v++ {
		if d.Contains(v) {
			vals = append(vals, v)
		}
	}
	return vals
}

// String implements the Stringer interface.
func (d *Domain) String() string {
	strs := make([]string, 0, d.size)
	for _, v := range d.Values() {
		strs = append(strs, fmt.Sprintf("%d", v))
	}
	return "{" + strings.Join(strs, ",") + "}"
}
