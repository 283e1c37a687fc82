package testbench

import (
	"errors"
	"fmt"

	"github.com/i5heu/FifoBench/pkg/ringqueue"
)

// Default values used when nothing overrides them.
const (
	DefaultCapacity  = ringqueue.DefaultCapacity
	DefaultEdgeLimit = 50
	DefaultValueSpan = 51
	DefaultKeyBound  = 128513
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the sizing knobs of a benchmark run. Every case built from one
// Config pushes Capacity-1 elements; the ring buffer gets exactly Capacity slots.
type Config struct {
	// Capacity is the ring buffer size; Capacity-1 elements are pushed per case.
	Capacity int `yaml:"capacity" json:"capacity"`
	// EdgeLimit is the smallest generated int/float value.
	EdgeLimit int `yaml:"edge_limit" json:"edge_limit"`
	// ValueSpan is the number of distinct int/float values, starting at EdgeLimit.
	ValueSpan int `yaml:"value_span" json:"value_span"`
	// KeyBound is the exclusive upper bound of object record keys.
	KeyBound uint64 `yaml:"key_bound" json:"key_bound"`
	// ExpiredRatio is the share of object records released before the push
	// loop, so the queue carries handles that no longer resolve. The default
	// keeps every handle live; 1 reproduces the classic object benchmark,
	// where every owner is gone before the first push.
	ExpiredRatio float64 `yaml:"expired_ratio" json:"expired_ratio"`
	// Seed fixes the random source. Zero seeds from the clock.
	Seed uint64 `yaml:"seed" json:"seed"`
	// RingPolicy is the ring buffer overflow policy: "drop-newest" or "strict".
	RingPolicy string `yaml:"ring_policy" json:"ring_policy"`
}

// DefaultConfig returns the production-scale configuration.
func DefaultConfig() Config {
	return Config{
		Capacity:   DefaultCapacity,
		EdgeLimit:  DefaultEdgeLimit,
		ValueSpan:  DefaultValueSpan,
		KeyBound:   DefaultKeyBound,
		RingPolicy: ringqueue.DropNewest.String(),
	}
}

// Validate reports the first setting that cannot drive a benchmark.
func (c Config) Validate() error {
	switch {
	case c.Capacity < 2:
		return fmt.Errorf("capacity %d below 2: %w", c.Capacity, ErrInvalidConfig)
	case c.ValueSpan < 1:
		return fmt.Errorf("value_span %d below 1: %w", c.ValueSpan, ErrInvalidConfig)
	case c.KeyBound < 1:
		return fmt.Errorf("key_bound must be positive: %w", ErrInvalidConfig)
	case c.ExpiredRatio < 0 || c.ExpiredRatio > 1:
		return fmt.Errorf("expired_ratio %g outside [0, 1]: %w", c.ExpiredRatio, ErrInvalidConfig)
	}
	if _, err := ringqueue.ParseOverflowPolicy(c.RingPolicy); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidConfig)
	}
	return nil
}

// elements is the number of values a case pushes.
func (c Config) elements() int {
	return c.Capacity - 1
}
