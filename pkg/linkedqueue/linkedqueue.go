package linkedqueue

import "github.com/i5heu/FifoBench/internal/queue"

// node is one link of the chain. Each node is reachable from exactly one
// place: the queue head or the next field of its predecessor.
type node[E any] struct {
	value E
	next  *node[E]
}

// LinkedQueue is an unbounded FIFO backed by a singly linked chain of nodes.
// Every Push allocates one node; nothing is preallocated.
//
// The zero value is an empty queue ready to use.
type LinkedQueue[E any] struct {
	head *node[E]
	// tail aliases the last node of the chain and is only used to make Push O(1).
	tail *node[E]
	len  int
}

// New returns an empty LinkedQueue.
func New[E any]() *LinkedQueue[E] {
	return &LinkedQueue[E]{}
}

// Push appends v at the back of the queue. It never fails.
func (q *LinkedQueue[E]) Push(v E) error {
	n := &node[E]{value: v}
	if q.tail == nil {
		q.head = n
	} else {
		q.tail.next = n
	}
	q.tail = n
	q.len++
	return nil
}

// Pop removes the front element. It is a no-op on an empty queue.
func (q *LinkedQueue[E]) Pop() {
	q.unlink()
}

// Take removes the front element and hands its value to the caller.
func (q *LinkedQueue[E]) Take() (E, bool) {
	n := q.unlink()
	if n == nil {
		var zero E
		return zero, false
	}
	v := n.value
	n.value = *new(E)
	return v, true
}

// unlink detaches the head node from the chain and returns it, or nil when
// the queue is empty. The returned node no longer references the chain.
func (q *LinkedQueue[E]) unlink() *node[E] {
	n := q.head
	if n == nil {
		return nil
	}
	q.head = n.next
	n.next = nil
	if q.head == nil {
		q.tail = nil
	}
	q.len--
	return n
}

// Front returns the front element, or queue.ErrEmptyContainer.
func (q *LinkedQueue[E]) Front() (E, error) {
	if q.head == nil {
		var zero E
		return zero, queue.ErrEmptyContainer
	}
	return q.head.value, nil
}

// Empty reports whether the queue holds no elements.
func (q *LinkedQueue[E]) Empty() bool {
	return q.head == nil
}

// Len returns the number of queued elements.
func (q *LinkedQueue[E]) Len() int {
	return q.len
}
