package testbench

import (
	"errors"
	"fmt"
	"time"

	"github.com/i5heu/FifoBench/internal/queue"
)

var (
	// ErrInvalidState is returned when a phase is run out of order.
	ErrInvalidState = errors.New("benchmark phase called out of order")

	// ErrUnsupportedKind is returned for container/element tags with no
	// registered constructor.
	ErrUnsupportedKind = errors.New("unsupported container or element kind")
)

// Phase is the lifecycle state of a benchmark case.
// Cases only move forward: Idle, then Filled, then Drained.
type Phase int

const (
	// Idle is a freshly built case with an empty container.
	Idle Phase = iota
	// Filled follows a successful fill phase.
	Filled
	// Drained is terminal: the container was emptied or the fill failed.
	Drained
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Filled:
		return "filled"
	case Drained:
		return "drained"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Result is the outcome of one fill-then-drain run.
type Result struct {
	Container ContainerKind
	Element   ElementKind
	Fill      time.Duration
	Drain     time.Duration
	// Elements is the number of values pushed during the fill phase.
	Elements int
	// Dropped counts values a bounded container discarded instead of storing.
	Dropped uint64
}

// Case is the uniform handle the factory returns for every
// container/element combination.
type Case interface {
	Name() string
	Container() ContainerKind
	Element() ElementKind
	State() Phase
	// FillPhase pushes the generated values and returns the time spent in the
	// push loop only.
	FillPhase() (time.Duration, error)
	// DrainPhase pops until the container is empty and returns the time spent.
	DrainPhase() (time.Duration, error)
	// RunAll runs FillPhase then DrainPhase on a fresh case.
	RunAll() (Result, error)
}

// dropCounter is implemented by bounded containers that can discard values.
type dropCounter interface {
	Dropped() uint64
}

// BenchmarkCase times one container type filled with one element type.
// It owns its container for its whole life and is not reusable.
type BenchmarkCase[E any, Q queue.Container[E]] struct {
	container Q
	source    Source[E]
	count     int
	ck        ContainerKind
	ek        ElementKind

	state   Phase
	fill    time.Duration
	drain   time.Duration
	dropped uint64
}

// NewBenchmarkCase wraps an empty container. count values are pulled from
// source when the fill phase starts.
func NewBenchmarkCase[E any, Q queue.Container[E]](ck ContainerKind, ek ElementKind, container Q, source Source[E], count int) *BenchmarkCase[E, Q] {
	return &BenchmarkCase[E, Q]{
		container: container,
		source:    source,
		count:     count,
		ck:        ck,
		ek:        ek,
	}
}

// Name returns "<container>/<element>", e.g. "ring/int".
func (c *BenchmarkCase[E, Q]) Name() string {
	return c.ck.String() + "/" + c.ek.String()
}

// Container returns the container kind under test.
func (c *BenchmarkCase[E, Q]) Container() ContainerKind { return c.ck }

// Element returns the kind of values pushed.
func (c *BenchmarkCase[E, Q]) Element() ElementKind { return c.ek }

// State returns the current lifecycle phase.
func (c *BenchmarkCase[E, Q]) State() Phase { return c.state }

func (c *BenchmarkCase[E, Q]) stateError(op string) error {
	return fmt.Errorf("%s: %s in state %s: %w", c.Name(), op, c.state, ErrInvalidState)
}

// FillPhase generates the values, then pushes them one by one. Only the push
// loop is timed. A push error ends the case: it moves straight to Drained.
func (c *BenchmarkCase[E, Q]) FillPhase() (time.Duration, error) {
	if c.state != Idle {
		return 0, c.stateError("fill")
	}
	values := c.source.Generate(c.count)

	start := time.Now()
	for i, v := range values {
		if err := c.container.Push(v); err != nil {
			elapsed := time.Since(start)
			c.finish()
			return elapsed, fmt.Errorf("%s: push %d of %d: %w", c.Name(), i+1, len(values), err)
		}
	}
	c.fill = time.Since(start)

	if dc, ok := any(c.container).(dropCounter); ok {
		c.dropped = dc.Dropped()
	}
	c.state = Filled
	return c.fill, nil
}

// DrainPhase pops until the container reports empty.
func (c *BenchmarkCase[E, Q]) DrainPhase() (time.Duration, error) {
	if c.state != Filled {
		return 0, c.stateError("drain")
	}

	start := time.Now()
	for !c.container.Empty() {
		c.container.Pop()
	}
	c.drain = time.Since(start)

	c.finish()
	return c.drain, nil
}

func (c *BenchmarkCase[E, Q]) finish() {
	c.state = Drained
	c.source.Release()
}

// RunAll runs both phases in order.
func (c *BenchmarkCase[E, Q]) RunAll() (Result, error) {
	if c.state != Idle {
		return Result{}, c.stateError("run")
	}
	if _, err := c.FillPhase(); err != nil {
		return Result{}, err
	}
	if _, err := c.DrainPhase(); err != nil {
		return Result{}, err
	}
	return Result{
		Container: c.ck,
		Element:   c.ek,
		Fill:      c.fill,
		Drain:     c.drain,
		Elements:  c.count,
		Dropped:   c.dropped,
	}, nil
}
