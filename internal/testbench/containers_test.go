package testbench_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/FifoBench/internal/queue"
	"github.com/i5heu/FifoBench/internal/testbench"
	"github.com/i5heu/FifoBench/pkg/baseline"
	"github.com/i5heu/FifoBench/pkg/linkedqueue"
	"github.com/i5heu/FifoBench/pkg/record"
	"github.com/i5heu/FifoBench/pkg/ringqueue"
)

// containerFor builds an empty container of kind k. Ring containers get
// capacity slots, so capacity-1 usable ones.
func containerFor[E any](t *testing.T, k testbench.ContainerKind, capacity int) queue.Container[E] {
	t.Helper()
	switch k {
	case testbench.Baseline:
		return baseline.New[E]()
	case testbench.Linked:
		return linkedqueue.New[E]()
	case testbench.Ring:
		q, err := ringqueue.New[E](capacity)
		require.NoError(t, err)
		return q
	}
	t.Fatalf("no container for kind %s", k)
	return nil
}

// withAllContainers runs fn once per container kind, as a named subtest.
func withAllContainers(t *testing.T, fn func(t *testing.T, impl testbench.Implementation)) {
	t.Helper()
	for _, impl := range testbench.Implementations() {
		impl := impl
		t.Run(impl.Name, func(t *testing.T) {
			fn(t, impl)
		})
	}
}

func popAll[E any](t *testing.T, q queue.Container[E]) []E {
	t.Helper()
	var out []E
	for !q.Empty() {
		v, err := q.Front()
		require.NoError(t, err)
		out = append(out, v)
		q.Pop()
	}
	return out
}

func TestContainerFIFOOrder(t *testing.T) {
	const n = 4096
	withAllContainers(t, func(t *testing.T, impl testbench.Implementation) {
		q := containerFor[int](t, impl.Kind, n+1)
		for i := 0; i < n; i++ {
			require.NoError(t, q.Push(i))
		}
		require.Equal(t, n, q.Len())

		got := popAll(t, q)
		require.Len(t, got, n)
		for i, v := range got {
			if v != i {
				t.Fatalf("Expected %d, got %d at index %d", i, v, i)
			}
		}
	})
}

func TestContainerEmptyAfterDrain(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl testbench.Implementation) {
		q := containerFor[float64](t, impl.Kind, 16)
		assert.True(t, q.Empty())

		for _, v := range []float64{50, 75.5, 100} {
			require.NoError(t, q.Push(v))
		}
		assert.False(t, q.Empty())
		popAll(t, q)

		q.Pop()
		assert.True(t, q.Empty())
		assert.Equal(t, 0, q.Len())
		_, err := q.Front()
		assert.ErrorIs(t, err, queue.ErrEmptyContainer)
	})
}

func TestContainerWeakHandleExpiration(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl testbench.Implementation) {
		owners := make([]*record.Strong, 10)
		for i := range owners {
			owners[i] = record.New("title", "description", uint64(100+i))
		}
		released := map[uint64]bool{101: true, 104: true, 108: true}

		q := containerFor[record.Weak](t, impl.Kind, 16)
		for _, o := range owners {
			if released[o.Get().Key()] {
				o.Release()
			}
		}
		for _, o := range owners {
			require.NoError(t, q.Push(o.Weak()))
		}
		require.Equal(t, 10, q.Len(), "queue occupancy does not depend on record lifetime")

		expired := 0
		for i, w := range popAll(t, q) {
			key := uint64(100 + i)
			rec, ok := w.Resolve()
			if released[key] {
				assert.False(t, ok, "handle %d should be expired", key)
				expired++
				continue
			}
			require.True(t, ok, "handle %d should be live", key)
			assert.Equal(t, "title", rec.Title())
			assert.Equal(t, "description", rec.Description())
			assert.Equal(t, key, rec.Key())
		}
		assert.Equal(t, 3, expired)
	})
}

func TestContainerRepeatedFillAndDrain(t *testing.T) {
	const capacity = 128
	const cycles = 25
	withAllContainers(t, func(t *testing.T, impl testbench.Implementation) {
		q := containerFor[int](t, impl.Kind, capacity)
		for cycle := 0; cycle < cycles; cycle++ {
			for i := 0; i < capacity-1; i++ {
				require.NoError(t, q.Push(cycle*capacity+i))
			}
			got := popAll(t, q)
			require.Len(t, got, capacity-1)
			for i, v := range got {
				if v != cycle*capacity+i {
					t.Fatalf("Cycle %d: FIFO violation at %d: expected %d, got %d", cycle, i, cycle*capacity+i, v)
				}
			}
		}
	})
}
