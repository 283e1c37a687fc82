package testbench

import (
	"math/rand/v2"
	"time"

	"github.com/i5heu/FifoBench/pkg/record"
)

// Source produces the values a case pushes. Generate runs before the fill
// timer starts; Release runs once the case has been drained.
type Source[E any] interface {
	Generate(n int) []E
	Release()
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type intSource struct {
	rng  *rand.Rand
	low  int
	span int
}

func newIntSource(cfg Config, rng *rand.Rand) Source[int] {
	return &intSource{rng: rng, low: cfg.EdgeLimit, span: cfg.ValueSpan}
}

func (s *intSource) Generate(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = s.low + s.rng.IntN(s.span)
	}
	return out
}

func (s *intSource) Release() {}

type floatSource struct {
	ints intSource
}

func newFloatSource(cfg Config, rng *rand.Rand) Source[float64] {
	return &floatSource{ints: intSource{rng: rng, low: cfg.EdgeLimit, span: cfg.ValueSpan}}
}

func (s *floatSource) Generate(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(s.ints.low + s.ints.rng.IntN(s.ints.span))
	}
	return out
}

func (s *floatSource) Release() {}

// Record fields given to every generated object.
const (
	ObjectTitle       = "Object"
	ObjectDescription = "New Object"
)

// objectSource builds shared records and hands out weak handles to them.
// It keeps the owning handles until Release, except for the ExpiredRatio
// share it drops straight after generation.
type objectSource struct {
	rng          *rand.Rand
	keyBound     uint64
	expiredRatio float64
	owners       []*record.Strong
}

func newObjectSource(cfg Config, rng *rand.Rand) Source[record.Weak] {
	return &objectSource{rng: rng, keyBound: cfg.KeyBound, expiredRatio: cfg.ExpiredRatio}
}

func (s *objectSource) Generate(n int) []record.Weak {
	// One spare record is built and left out after shuffling.
	s.owners = make([]*record.Strong, n+1)
	handles := make([]record.Weak, n+1)
	for i := range s.owners {
		s.owners[i] = record.New(ObjectTitle, ObjectDescription, s.rng.Uint64N(s.keyBound))
		handles[i] = s.owners[i].Weak()
	}
	s.rng.Shuffle(len(handles), func(i, j int) {
		handles[i], handles[j] = handles[j], handles[i]
	})

	expired := int(float64(len(s.owners)) * s.expiredRatio)
	for _, o := range s.owners[:expired] {
		o.Release()
	}
	return handles[1:]
}

func (s *objectSource) Release() {
	for _, o := range s.owners {
		o.Release()
	}
	s.owners = nil
}
