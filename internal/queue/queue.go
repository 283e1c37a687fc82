package queue

import "errors"

var (
	// ErrEmptyContainer is returned by Front when the container holds no elements.
	ErrEmptyContainer = errors.New("container is empty")

	// ErrCapacityExceeded is returned by a bounded container running in strict
	// mode when Push is called on a full buffer.
	ErrCapacityExceeded = errors.New("container capacity exceeded")
)

// Container is the method set every FIFO under benchmark satisfies.
// The timed loops use it as a type constraint: a benchmark case is
// instantiated with the concrete container type so the calls are direct.
type Container[E any] interface {
	// Push appends an element at the back of the queue.
	// Unbounded containers always return nil.
	Push(E) error

	// Pop removes the front element. It is a no-op on an empty container.
	Pop()

	// Front returns the front element without removing it, or
	// ErrEmptyContainer if there is none.
	Front() (E, error)

	// Empty reports whether every successful Push has been matched by a Pop.
	Empty() bool

	// Len returns the number of queued elements.
	Len() int
}
