package term

// Queue is a FIFO queue of variables, used as the solver's propagation
// worklist. Note that this is not async-safe.
type Queue struct {
	items []Var
}

// NewQueue returns a new queue.
func NewQueue() *Queue {
	return &Queue{
		items: []Var{},
	}
}

// Insert inserts a new var into the queue.
func (q *Queue) Insert(v Var) {
	q.items = append(q.items, v)
}

// Dequeue pops the first var off the queue.
func (q *Queue) Dequeue() Var {
	if len(q.items) == 0 {
		return Undef
	}
	first := q.items[0]
	q.items = q.items[1:len(q.items)]

	return first
}

// Clear clears the queue.
func (q *Queue) Clear() {
	q.items = []Var{}
}

// Size returns the size of the queue.
func (q *Queue) Size() int {
	return len(q.items)
}
