package testbench

import (
	"fmt"
	"log/slog"
	"runtime"
)

// Section groups the results for one element kind, in container order.
type Section struct {
	Element ElementKind
	Results []Result
}

// ProgressFunc is called after every finished case with the running count.
type ProgressFunc func(done, total int, r Result)

type runOptions struct {
	logger     *slog.Logger
	progress   ProgressFunc
	elements   []ElementKind
	containers []ContainerKind
}

// RunOption configures Run.
type RunOption func(*runOptions)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) RunOption {
	return func(o *runOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProgress registers a callback invoked after each case.
func WithProgress(fn ProgressFunc) RunOption {
	return func(o *runOptions) {
		o.progress = fn
	}
}

// WithElementKinds restricts the run to the given element kinds, in the given
// order. The default is ReportOrder.
func WithElementKinds(kinds ...ElementKind) RunOption {
	return func(o *runOptions) {
		if len(kinds) > 0 {
			o.elements = kinds
		}
	}
}

// WithContainerKinds restricts the run to the given container kinds, in the
// given order. The default is ContainerOrder.
func WithContainerKinds(kinds ...ContainerKind) RunOption {
	return func(o *runOptions) {
		if len(kinds) > 0 {
			o.containers = kinds
		}
	}
}

// Run benchmarks every element kind against every container kind, one case
// at a time, and returns one section per element kind.
func Run(cfg Config, opts ...RunOption) ([]Section, error) {
	o := runOptions{
		logger:     slog.Default(),
		elements:   ReportOrder,
		containers: ContainerOrder,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("testbench.Run: %w", err)
	}

	total := len(o.elements) * len(o.containers)
	done := 0
	sections := make([]Section, 0, len(o.elements))

	for _, ek := range o.elements {
		o.logger.Info("testing containers", "element", ek.String(), "elements", cfg.elements())
		section := Section{Element: ek, Results: make([]Result, 0, len(o.containers))}

		for _, ck := range o.containers {
			c, err := NewCase(ck, ek, cfg)
			if err != nil {
				return sections, err
			}
			// Collect garbage left by the previous case before timing this one.
			runtime.GC()

			r, err := c.RunAll()
			if err != nil {
				return sections, fmt.Errorf("testbench.Run: %w", err)
			}
			o.logger.Debug("case finished",
				"case", c.Name(),
				"fill", r.Fill,
				"drain", r.Drain,
				"dropped", r.Dropped)
			if r.Dropped > 0 {
				o.logger.Warn("container dropped elements on overflow",
					"case", c.Name(), "dropped", r.Dropped)
			}

			section.Results = append(section.Results, r)
			done++
			if o.progress != nil {
				o.progress(done, total, r)
			}
		}
		sections = append(sections, section)
	}
	return sections, nil
}
