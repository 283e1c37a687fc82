package testbench

import (
	"fmt"
	"math/rand/v2"

	"github.com/i5heu/FifoBench/internal/queue"
	"github.com/i5heu/FifoBench/pkg/baseline"
	"github.com/i5heu/FifoBench/pkg/linkedqueue"
	"github.com/i5heu/FifoBench/pkg/ringqueue"
)

// Implementation describes one container kind for reports.
type Implementation struct {
	Kind        ContainerKind
	Name        string
	PkgName     string
	Description string
	Features    []string
}

// Implementations lists the container kinds in report order.
func Implementations() []Implementation {
	return []Implementation{
		{
			Kind:        Baseline,
			Name:        "BaselineQueue",
			PkgName:     "baseline",
			Description: "Growable slice-backed deque from gammazero/deque, used as the comparison point.",
			Features:    []string{"FIFO", "Unbounded", "Amortized-Growth"},
		},
		{
			Kind:        Linked,
			Name:        "LinkedQueue",
			PkgName:     "linkedqueue",
			Description: "Singly linked chain of nodes, one allocation per element.",
			Features:    []string{"FIFO", "Unbounded", "Per-Element-Allocation"},
		},
		{
			Kind:        Ring,
			Name:        "RingQueue",
			PkgName:     "ringqueue",
			Description: "Fixed-capacity circular buffer with one reserved slot, allocated up front.",
			Features:    []string{"FIFO", "Bounded", "Preallocated"},
		},
	}
}

// ImplementationFor returns the metadata of kind k.
func ImplementationFor(k ContainerKind) (Implementation, bool) {
	for _, impl := range Implementations() {
		if impl.Kind == k {
			return impl, true
		}
	}
	return Implementation{}, false
}

type caseKey struct {
	container ContainerKind
	element   ElementKind
}

type constructor func(cfg Config, rng *rand.Rand) (Case, error)

var registry = map[caseKey]constructor{}

func register[E any, Q queue.Container[E]](
	ck ContainerKind,
	ek ElementKind,
	newQueue func(Config) (Q, error),
	newSource func(Config, *rand.Rand) Source[E],
) {
	registry[caseKey{ck, ek}] = func(cfg Config, rng *rand.Rand) (Case, error) {
		q, err := newQueue(cfg)
		if err != nil {
			return nil, err
		}
		return NewBenchmarkCase[E, Q](ck, ek, q, newSource(cfg, rng), cfg.elements()), nil
	}
}

// registerElement wires every container kind for element type E.
func registerElement[E any](ek ElementKind, newSource func(Config, *rand.Rand) Source[E]) {
	register(Baseline, ek, func(Config) (*baseline.Queue[E], error) {
		return baseline.New[E](), nil
	}, newSource)
	register(Linked, ek, func(Config) (*linkedqueue.LinkedQueue[E], error) {
		return linkedqueue.New[E](), nil
	}, newSource)
	register(Ring, ek, func(cfg Config) (*ringqueue.RingQueue[E], error) {
		policy, err := ringqueue.ParseOverflowPolicy(cfg.RingPolicy)
		if err != nil {
			return nil, err
		}
		return ringqueue.New[E](cfg.Capacity, ringqueue.WithOverflowPolicy[E](policy))
	}, newSource)
}

func init() {
	registerElement(Integer, newIntSource)
	registerElement(Float, newFloatSource)
	registerElement(Object, newObjectSource)
}

// Supported reports whether a constructor is registered for the pair.
func Supported(ck ContainerKind, ek ElementKind) bool {
	_, ok := registry[caseKey{ck, ek}]
	return ok
}

// NewCase builds a fresh, idle benchmark case for the given kinds.
func NewCase(ck ContainerKind, ek ElementKind, cfg Config) (Case, error) {
	build, ok := registry[caseKey{ck, ek}]
	if !ok {
		return nil, fmt.Errorf("testbench.NewCase: %s/%s: %w", ck, ek, ErrUnsupportedKind)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("testbench.NewCase: %w", err)
	}
	c, err := build(cfg, newRand(cfg.Seed))
	if err != nil {
		return nil, fmt.Errorf("testbench.NewCase: %s/%s: %w", ck, ek, err)
	}
	return c, nil
}
