package ringqueue

import "fmt"

// OverflowPolicy selects what Push does when every usable slot is taken.
type OverflowPolicy int

const (
	// DropNewest silently discards the element being pushed and leaves the
	// queue unchanged. This is the default.
	DropNewest OverflowPolicy = iota
	// Strict rejects the element with an error wrapping queue.ErrCapacityExceeded.
	Strict
)

// String returns the policy name used in configuration files.
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "drop-newest"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseOverflowPolicy maps a policy name back to its value.
// The empty string selects DropNewest.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch s {
	case "", "drop-newest":
		return DropNewest, nil
	case "strict":
		return Strict, nil
	default:
		return DropNewest, fmt.Errorf("ringqueue: unknown overflow policy %q", s)
	}
}

// DropCallback is called with every element discarded under DropNewest.
type DropCallback[E any] func(E)

// Option configures a RingQueue.
type Option[E any] func(*options[E])

type options[E any] struct {
	policy OverflowPolicy
	onDrop DropCallback[E]
}

// WithOverflowPolicy sets the overflow behavior. Defaults to DropNewest.
func WithOverflowPolicy[E any](p OverflowPolicy) Option[E] {
	return func(o *options[E]) {
		o.policy = p
	}
}

// WithDropCallback registers fn to observe dropped elements.
func WithDropCallback[E any](fn DropCallback[E]) Option[E] {
	return func(o *options[E]) {
		o.onDrop = fn
	}
}

func applyOptions[E any](opts ...Option[E]) options[E] {
	o := options[E]{policy: DropNewest}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
