package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/i5heu/FifoBench/internal/testbench"
)

const metricsNamespace = "fifobench"

// Metrics exposes benchmark results as Prometheus gauges.
type Metrics struct {
	registry *prometheus.Registry
	fill     *prometheus.GaugeVec
	drain    *prometheus.GaugeVec
	elements *prometheus.GaugeVec
	dropped  *prometheus.GaugeVec
}

// NewMetrics creates gauges on a private registry.
func NewMetrics() (*Metrics, error) {
	labels := []string{"container", "element"}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fill: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "fill_seconds",
			Help:      "Wall time spent pushing every element into the container.",
		}, labels),
		drain: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "drain_seconds",
			Help:      "Wall time spent popping the container until empty.",
		}, labels),
		elements: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "elements",
			Help:      "Number of elements pushed per case.",
		}, labels),
		dropped: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "dropped_elements",
			Help:      "Elements discarded by a full bounded container.",
		}, labels),
	}
	for _, c := range []prometheus.Collector{m.fill, m.drain, m.elements, m.dropped} {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("report.NewMetrics: %w", err)
		}
	}
	return m, nil
}

// Registry returns the registry the gauges live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records every result in sections.
func (m *Metrics) Observe(sections []testbench.Section) {
	for _, s := range sections {
		for _, r := range s.Results {
			labels := prometheus.Labels{
				"container": r.Container.String(),
				"element":   r.Element.String(),
			}
			m.fill.With(labels).Set(r.Fill.Seconds())
			m.drain.With(labels).Set(r.Drain.Seconds())
			m.elements.With(labels).Set(float64(r.Elements))
			m.dropped.With(labels).Set(float64(r.Dropped))
		}
	}
}

// WriteTextfile writes the gauges in the node exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("report.WriteTextfile: %w", err)
	}
	return nil
}
