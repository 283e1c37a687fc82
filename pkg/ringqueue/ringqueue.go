package ringqueue

import (
	"errors"
	"fmt"

	"github.com/i5heu/FifoBench/internal/queue"
)

// DefaultCapacity is the production ring size: DefaultCapacity-1 elements fit.
const DefaultCapacity = 1000300

// ErrInvalidCapacity is returned by New for capacities that leave no usable slot.
var ErrInvalidCapacity = errors.New("ring capacity must be at least 2")

// RingQueue is a fixed-capacity FIFO over a circular buffer.
//
// A buffer of capacity C holds at most C-1 elements: one slot is always left
// free so that first == last means empty and last+1 == first means full,
// without keeping a separate element count. The whole backing array is
// allocated by New and never grows.
type RingQueue[E any] struct {
	buf     []E
	first   int // index of the front element
	last    int // index the next Push writes to
	opts    options[E]
	dropped uint64
}

// New creates a RingQueue with a backing array of capacity slots.
// Callers without a size of their own pass DefaultCapacity.
func New[E any](capacity int, opts ...Option[E]) (*RingQueue[E], error) {
	if capacity < 2 {
		return nil, fmt.Errorf("ringqueue.New: capacity %d: %w", capacity, ErrInvalidCapacity)
	}
	return &RingQueue[E]{
		buf:  make([]E, capacity),
		opts: applyOptions(opts...),
	}, nil
}

func (q *RingQueue[E]) next(i int) int {
	i++
	if i == len(q.buf) {
		return 0
	}
	return i
}

// Push stores v at the back of the queue.
//
// When the queue is full the outcome depends on the overflow policy: under
// DropNewest v is discarded, Dropped is incremented and nil is returned;
// under Strict an error wrapping queue.ErrCapacityExceeded is returned.
// In both cases the queue contents are left untouched.
func (q *RingQueue[E]) Push(v E) error {
	nextLast := q.next(q.last)
	if nextLast == q.first {
		if q.opts.policy == Strict {
			return fmt.Errorf("ringqueue.Push: %d of %d slots used: %w",
				q.Len(), q.Cap(), queue.ErrCapacityExceeded)
		}
		q.dropped++
		if q.opts.onDrop != nil {
			q.opts.onDrop(v)
		}
		return nil
	}
	q.buf[q.last] = v
	q.last = nextLast
	return nil
}

// Pop removes the front element. It is a no-op on an empty queue.
func (q *RingQueue[E]) Pop() {
	if q.first == q.last {
		return
	}
	q.buf[q.first] = *new(E)
	q.first = q.next(q.first)
}

// Front returns the front element, or queue.ErrEmptyContainer.
func (q *RingQueue[E]) Front() (E, error) {
	if q.first == q.last {
		var zero E
		return zero, queue.ErrEmptyContainer
	}
	return q.buf[q.first], nil
}

// Empty reports whether the queue holds no elements.
func (q *RingQueue[E]) Empty() bool {
	return q.first == q.last
}

// Len returns the number of queued elements.
func (q *RingQueue[E]) Len() int {
	n := q.last - q.first
	if n < 0 {
		n += len(q.buf)
	}
	return n
}

// Cap returns the number of usable slots, one less than the backing array.
func (q *RingQueue[E]) Cap() int {
	return len(q.buf) - 1
}

// Free returns how many more elements can be pushed before the queue is full.
func (q *RingQueue[E]) Free() int {
	return q.Cap() - q.Len()
}

// Dropped returns the number of elements discarded under DropNewest.
func (q *RingQueue[E]) Dropped() uint64 {
	return q.dropped
}

// Policy returns the configured overflow policy.
func (q *RingQueue[E]) Policy() OverflowPolicy {
	return q.opts.policy
}
