package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/i5heu/FifoBench/internal/testbench"
)

// BenchmarkResult holds results for one benchmark case.
type BenchmarkResult struct {
	Implementation string  `json:"implementation"`
	Container      string  `json:"container"`
	Element        string  `json:"element"`
	NumElements    int     `json:"num_elements"`
	Dropped        uint64  `json:"dropped,omitempty"`
	FillSeconds    float64 `json:"fill_seconds"`
	DrainSeconds   float64 `json:"drain_seconds"`
	Timestamp      int64   `json:"timestamp"`
	GoVersion      string  `json:"go_version"`
}

// FullReport represents a complete benchmark session.
type FullReport struct {
	SessionTime string            `json:"session_time"`
	SystemInfo  SystemInfo        `json:"system_info"`
	Config      testbench.Config  `json:"config"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

// implementationName returns the display name of a container kind.
func implementationName(k testbench.ContainerKind) string {
	if impl, ok := testbench.ImplementationFor(k); ok {
		return impl.Name
	}
	return k.String()
}

// NewSession flattens sections into a session record stamped with now.
func NewSession(sections []testbench.Section, cfg testbench.Config, sys SystemInfo, now time.Time) FullReport {
	fr := FullReport{
		SessionTime: now.Format(time.RFC3339),
		SystemInfo:  sys,
		Config:      cfg,
	}
	for _, s := range sections {
		for _, r := range s.Results {
			fr.Benchmarks = append(fr.Benchmarks, BenchmarkResult{
				Implementation: implementationName(r.Container),
				Container:      r.Container.String(),
				Element:        r.Element.String(),
				NumElements:    r.Elements,
				Dropped:        r.Dropped,
				FillSeconds:    r.Fill.Seconds(),
				DrainSeconds:   r.Drain.Seconds(),
				Timestamp:      now.Unix(),
				GoVersion:      runtime.Version(),
			})
		}
	}
	return fr
}

// SectionHeader returns the heading line written above an element kind's results.
func SectionHeader(k testbench.ElementKind) string {
	return fmt.Sprintf("--- Testing containers with %s values ---", k)
}

// WriteText writes the plain-text report: one header per element kind, then
// one line per container with fill and drain time in seconds.
func WriteText(w io.Writer, sections []testbench.Section) error {
	for _, s := range sections {
		if _, err := fmt.Fprintln(w, SectionHeader(s.Element)); err != nil {
			return err
		}
		for _, r := range s.Results {
			if _, err := fmt.Fprintf(w, "%s\tfill: %.6f\tdrain: %.6f\n",
				implementationName(r.Container), r.Fill.Seconds(), r.Drain.Seconds()); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadSessions reads every session stored in a JSON results file.
func LoadSessions(path string) ([]FullReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sessions []FullReport
	if len(data) == 0 {
		return sessions, nil
	}
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("report.LoadSessions: %s: %w", path, err)
	}
	return sessions, nil
}

// AppendSession adds fr to the session list in path, creating the file if needed.
func AppendSession(path string, fr FullReport) error {
	previous, err := LoadSessions(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	data, err := json.MarshalIndent(append(previous, fr), "", "  ")
	if err != nil {
		return fmt.Errorf("report.AppendSession: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("report.AppendSession: %w", err)
	}
	return nil
}

// WriteMarkdownTable writes the last session as a markdown table, grouped by
// element kind and sorted by total time within each group.
func WriteMarkdownTable(w io.Writer, sessions []FullReport) error {
	if len(sessions) == 0 {
		return errors.New("report: no sessions found")
	}
	last := sessions[len(sessions)-1]

	order := make(map[string]int)
	for i, k := range testbench.ReportOrder {
		order[k.String()] = i
	}
	features := make(map[string]string)
	for _, impl := range testbench.Implementations() {
		features[impl.Name] = strings.Join(impl.Features, ", ")
	}

	rows := append([]BenchmarkResult(nil), last.Benchmarks...)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Element != rows[j].Element {
			return order[rows[i].Element] < order[rows[j].Element]
		}
		return rows[i].FillSeconds+rows[i].DrainSeconds < rows[j].FillSeconds+rows[j].DrainSeconds
	})

	var b strings.Builder
	b.WriteString("## Last Session Benchmark Summary\n\n")
	b.WriteString("| Element | Implementation  | Features                               | Fill (s)   | Drain (s)  |\n")
	b.WriteString("|---------|-----------------|----------------------------------------|------------|------------|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %-7s | %-15s | %-38s | %10.6f | %10.6f |\n",
			r.Element, r.Implementation, features[r.Implementation], r.FillSeconds, r.DrainSeconds)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
