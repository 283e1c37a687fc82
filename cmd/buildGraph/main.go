package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/i5heu/FifoBench/internal/testbench"
	"github.com/i5heu/FifoBench/pkg/report"
)

// phase selects which measured duration a graph shows.
type phase struct {
	name  string
	value func(report.BenchmarkResult) float64
}

var phases = []phase{
	{name: "fill", value: func(b report.BenchmarkResult) float64 { return b.FillSeconds }},
	{name: "drain", value: func(b report.BenchmarkResult) float64 { return b.DrainSeconds }},
}

// elementStats holds "5%-avg-min", median, and "5%-avg-max" for one element kind.
type elementStats struct {
	x      float64 // category index plus the implementation's offset
	orig   float64 // category index
	min    float64 // "average of bottom 5%"
	median float64
	max    float64 // "average of top 5%"
}

// statsPoints implements XYer and YErrorer for elementStats, so we can plot points + error bars.
type statsPoints []elementStats

func (s statsPoints) Len() int                { return len(s) }
func (s statsPoints) XY(i int) (x, y float64) { return s[i].x, s[i].median }
func (s statsPoints) YError(i int) (low, high float64) {
	low = s[i].median - s[i].min
	high = s[i].max - s[i].median
	return low, high
}

// categoryTicks implements a categorical X-axis: 0,1,2,... => element kind labels.
type categoryTicks struct {
	positions []float64
	labels    []string
}

func (ct categoryTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i, pos := range ct.positions {
		if pos >= min && pos <= max {
			ticks = append(ticks, plot.Tick{Value: pos, Label: ct.labels[i]})
		}
	}
	return ticks
}

// secondsTicks labels the default Y ticks in s, ms, µs or ns.
type secondsTicks struct{}

func (secondsTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = formatSeconds(ticks[i].Value)
		}
	}
	return ticks
}

// collect groups samples by implementation, then element category index.
func collect(sessions []report.FullReport, ph phase, category map[string]float64) map[string]map[float64][]float64 {
	out := make(map[string]map[float64][]float64)
	for _, session := range sessions {
		for _, b := range session.Benchmarks {
			x, ok := category[b.Element]
			if !ok {
				continue
			}
			if _, ok := out[b.Implementation]; !ok {
				out[b.Implementation] = make(map[float64][]float64)
			}
			out[b.Implementation][x] = append(out[b.Implementation][x], ph.value(b))
		}
	}
	return out
}

func buildPlot(sessions []report.FullReport, ph phase) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s time (5%%-avg-min / Median / 5%%-avg-max) by element kind, %d session(s)", ph.name, len(sessions))
	p.X.Label.Text = "Element kind"
	p.Y.Label.Text = "Seconds"

	// Dark theme.
	p.BackgroundColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	p.Title.TextStyle.Color = white
	p.X.Label.TextStyle.Color = white
	p.Y.Label.TextStyle.Color = white
	p.X.Color = white
	p.Y.Color = white
	p.X.Tick.Label.Color = white
	p.Y.Tick.Label.Color = white
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.TextStyle.Color = white
	p.Y.Tick.Marker = secondsTicks{}

	p.Add(plotter.NewGrid())

	category := make(map[string]float64)
	var positions []float64
	var labels []string
	for i, k := range testbench.ReportOrder {
		category[k.String()] = float64(i)
		positions = append(positions, float64(i))
		labels = append(labels, k.String())
	}
	p.X.Tick.Marker = categoryTicks{positions: positions, labels: labels}
	p.X.Min = -0.5
	p.X.Max = float64(len(positions)) - 0.5

	implMap := collect(sessions, ph, category)

	// Keep the report's container order for a stable legend.
	var implNames []string
	for _, impl := range testbench.Implementations() {
		if _, ok := implMap[impl.Name]; ok {
			implNames = append(implNames, impl.Name)
		}
	}

	colors := plotutil.SoftColors
	shapes := []draw.GlyphDrawer{
		draw.CircleGlyph{},
		draw.SquareGlyph{},
		draw.TriangleGlyph{},
	}

	// Slight offset so each implementation is visually separated.
	offsetRange := 0.4
	offsetStep := offsetRange / float64(max(len(implNames), 1))
	startOffset := -offsetRange/2 + offsetStep/2

	for i, impl := range implNames {
		stats := buildStats(implMap[impl])
		if len(stats) == 0 {
			continue
		}
		for j := range stats {
			stats[j].x = stats[j].orig + startOffset + float64(i)*offsetStep
		}
		sort.Slice(stats, func(a, b int) bool {
			return stats[a].x < stats[b].x
		})
		sp := statsPoints(stats)

		points, err := plotter.NewScatter(sp)
		if err != nil {
			return nil, fmt.Errorf("creating scatter for %s: %w", impl, err)
		}
		points.GlyphStyle.Radius = vg.Points(5)
		points.Color = colors[i%len(colors)]
		points.Shape = shapes[i%len(shapes)]

		yErrBars, err := plotter.NewYErrorBars(sp)
		if err != nil {
			return nil, fmt.Errorf("creating error bars for %s: %w", impl, err)
		}
		yErrBars.Color = colors[i%len(colors)]

		p.Add(points, yErrBars)
		p.Legend.Add(impl, points)
	}
	return p, nil
}

func main() {
	jsonFile := flag.String("jsonfile", "test-results.json", "Path to JSON file containing test sessions")
	outputPrefix := flag.String("out", "benchmark_graph", "Output graph image filename prefix")
	flag.Parse()

	sessions, err := report.LoadSessions(*jsonFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading JSON file: %v\n", err)
		os.Exit(1)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "No sessions found in JSON.")
		os.Exit(1)
	}

	for _, ph := range phases {
		p, err := buildPlot(sessions, ph)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building %s plot: %v\n", ph.name, err)
			continue
		}
		filename := fmt.Sprintf("%s_%s.png", *outputPrefix, ph.name)
		if err := p.Save(12*vg.Inch, 9*vg.Inch, filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving %s plot: %v\n", ph.name, err)
			continue
		}
		fmt.Printf("Graph for %s time saved to %s\n", ph.name, filename)
	}
}

// buildStats computes "average of bottom 5%", median, and "average of top 5%".
func buildStats(byCategory map[float64][]float64) []elementStats {
	var out []elementStats
	for x, vals := range byCategory {
		if len(vals) == 0 {
			continue
		}
		sort.Float64s(vals)
		out = append(out, elementStats{
			x:      x,
			orig:   x,
			min:    averageOfRange(vals, 0.0, 0.05),
			median: median(vals),
			max:    averageOfRange(vals, 0.95, 1.0),
		})
	}
	return out
}

// averageOfRange returns the average of sortedVals in [startFrac, endFrac] of its length.
// E.g. averageOfRange(vals, 0, 0.05) is the average of the bottom 5%.
func averageOfRange(sortedVals []float64, startFrac, endFrac float64) float64 {
	n := len(sortedVals)
	if n == 0 {
		return 0
	}
	startIndex := int(float64(n) * startFrac)
	endIndex := int(float64(n) * endFrac)
	if startIndex < 0 {
		startIndex = 0
	}
	if endIndex > n {
		endIndex = n
	}
	if startIndex >= endIndex {
		// fallback to median if 5% slice is too small
		return median(sortedVals)
	}
	sum := 0.0
	for i := startIndex; i < endIndex; i++ {
		sum += sortedVals[i]
	}
	return sum / float64(endIndex-startIndex)
}

func median(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return 0.5 * (sorted[mid-1] + sorted[mid])
}

// formatSeconds nicely formats a seconds value in s, ms, µs, or ns.
func formatSeconds(s float64) string {
	switch {
	case s == 0:
		return "0"
	case s < 1e-6:
		return fmt.Sprintf("%.0fns", s*1e9)
	case s < 1e-3:
		return fmt.Sprintf("%.1fµs", s*1e6)
	case s < 1:
		return fmt.Sprintf("%.1fms", s*1e3)
	default:
		return fmt.Sprintf("%.2fs", s)
	}
}
