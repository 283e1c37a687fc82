package baseline

import (
	"github.com/gammazero/deque"

	"github.com/i5heu/FifoBench/internal/queue"
)

// Queue is the comparison point for the hand-built containers: an off-the-shelf
// growable, slice-backed FIFO. It only adapts gammazero/deque to the
// container contract, which panics where we return errors.
type Queue[E any] struct {
	d deque.Deque[E]
}

// New returns an empty Queue.
func New[E any]() *Queue[E] {
	return &Queue[E]{}
}

func (q *Queue[E]) Push(v E) error {
	q.d.PushBack(v)
	return nil
}

func (q *Queue[E]) Pop() {
	if q.d.Len() == 0 {
		return
	}
	q.d.PopFront()
}

func (q *Queue[E]) Front() (E, error) {
	if q.d.Len() == 0 {
		var zero E
		return zero, queue.ErrEmptyContainer
	}
	return q.d.Front(), nil
}

func (q *Queue[E]) Empty() bool {
	return q.d.Len() == 0
}

func (q *Queue[E]) Len() int {
	return q.d.Len()
}
