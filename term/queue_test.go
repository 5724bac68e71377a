package term

import "testing"

func TestQueueInsert(t *testing.T) {
	q := NewQueue()

	if q.Insert(Var(0)); len(q.items) != 1 {
		t.Fatalf("TestQueueInsert() failed, got: %d", len(q.items))
	}
}

func TestQueueDequeue(t *testing.T) {
	q := NewQueue()

	q.Insert(Var(0))
	q.Insert(Var(1))
	q.Insert(Var(2))

	if o := q.Dequeue(); o != Var(0) {
		t.Fatalf("TestQueueDequeue() failed, got: %s", o)
	}
	if o := q.Dequeue(); o != Var(1) {
		t.Fatalf("TestQueueDequeue() failed, got: %s", o)
	}
	if o := q.Dequeue(); o != Var(2) {
		t.Fatalf("TestQueueDequeue() failed, got: %s", o)
	}
	if len(q.items) != 0 {
		t.Fatalf("TestQueueDequeue() failed: didn't remove items")
	}
	if o := q.Dequeue(); o != Undef {
		t.Fatalf("TestQueueDequeue() failed on empty queue, got: %s", o)
	}
}

func TestQueueClear(t *testing.T) {
	q := NewQueue()
	q.Insert(Var(0))
	q.Insert(Var(1))

	if q.Clear(); len(q.items) != 0 {
		t.Fatalf("TestQueueClear() failed, got: %d", len(q.items))
	}
}

func TestQueueSize(t *testing.T) {
	q := NewQueue()
	q.Insert(Var(0))
	q.Insert(Var(1))

	if q.Size() != 2 {
		t.Fatalf("TestQueueSize() failed, got: %d", q.Size())
	}
}
