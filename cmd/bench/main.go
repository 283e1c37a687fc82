package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/i5heu/FifoBench/internal/testbench"
	"github.com/i5heu/FifoBench/pkg/config"
	"github.com/i5heu/FifoBench/pkg/report"
)

// options holds the parsed command line.
type options struct {
	configFile     string
	outFile        string
	jsonExport     bool
	jsonFile       string
	markdownTable  bool
	metricsFile    string
	progress       bool
	verbose        bool
	capacity       int
	seed           uint64
	elementKinds   string
	containerKinds string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configFile, "config", "input.yaml", "YAML file overriding the compiled-in configuration (ignored if missing)")
	fs.StringVar(&o.outFile, "out", "output.txt", "Path of the text report")
	fs.BoolVar(&o.jsonExport, "json", false, "Append results as a session to -jsonfile")
	fs.StringVar(&o.jsonFile, "jsonfile", "test-results.json", "Path to the JSON session log")
	fs.BoolVar(&o.markdownTable, "markdown-table", false, "Output markdown table from -jsonfile and exit")
	fs.StringVar(&o.metricsFile, "metrics", "", "If set, write Prometheus textfile metrics to this path")
	fs.BoolVar(&o.progress, "progress", false, "Display a progress bar with ETA")
	fs.BoolVar(&o.verbose, "v", false, "Log every finished case")
	fs.IntVar(&o.capacity, "capacity", 0, "If non-zero, override the configured capacity")
	fs.Uint64Var(&o.seed, "seed", 0, "If non-zero, override the configured random seed")
	fs.StringVar(&o.elementKinds, "elements", "", "Comma separated element kinds to run (float,object,int)")
	fs.StringVar(&o.containerKinds, "containers", "", "Comma separated container kinds to run (baseline,linked,ring)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return o, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig merges the YAML file and flag overrides.
func loadConfig(o options) (config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return cfg, err
	}
	if o.capacity != 0 {
		cfg.Capacity = o.capacity
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	return cfg, cfg.Validate()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// runOptions turns the kind filters into testbench options.
func runOptions(o options) ([]testbench.RunOption, error) {
	var opts []testbench.RunOption
	if o.elementKinds != "" {
		var kinds []testbench.ElementKind
		for _, s := range splitList(o.elementKinds) {
			k, err := testbench.ParseElementKind(s)
			if err != nil {
				return nil, err
			}
			kinds = append(kinds, k)
		}
		opts = append(opts, testbench.WithElementKinds(kinds...))
	}
	if o.containerKinds != "" {
		var kinds []testbench.ContainerKind
		for _, s := range splitList(o.containerKinds) {
			k, err := testbench.ParseContainerKind(s)
			if err != nil {
				return nil, err
			}
			kinds = append(kinds, k)
		}
		opts = append(opts, testbench.WithContainerKinds(kinds...))
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, o.verbose)

	if o.markdownTable {
		sessions, err := report.LoadSessions(o.jsonFile)
		if err != nil {
			return fmt.Errorf("reading %q: %w", o.jsonFile, err)
		}
		return report.WriteMarkdownTable(stdout, sessions)
	}

	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	opts, err := runOptions(o)
	if err != nil {
		return err
	}
	opts = append(opts, testbench.WithLogger(logger))

	var bar *progressbar.ProgressBar
	if o.progress {
		opts = append(opts, testbench.WithProgress(func(done, total int, r testbench.Result) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetWriter(stderr),
					progressbar.OptionSetDescription("benchmarking"),
					progressbar.OptionShowCount(),
					progressbar.OptionSetPredictTime(true),
					progressbar.OptionClearOnFinish(),
				)
			}
			bar.Describe(fmt.Sprintf("%s/%s", r.Container, r.Element))
			_ = bar.Set(done)
		}))
	}

	logger.Info("starting benchmark",
		"capacity", cfg.Capacity,
		"ring_policy", cfg.RingPolicy,
		"expired_ratio", cfg.ExpiredRatio)

	sections, err := testbench.Run(cfg, opts...)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.WriteText(&buf, sections); err != nil {
		return err
	}
	if _, err := stdout.Write(buf.Bytes()); err != nil {
		return err
	}
	if o.outFile != "" {
		if err := os.WriteFile(o.outFile, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		logger.Info("wrote report", "path", o.outFile)
	}

	if o.jsonExport {
		session := report.NewSession(sections, cfg, report.GatherSystemInfo(), time.Now())
		if err := report.AppendSession(o.jsonFile, session); err != nil {
			return err
		}
		logger.Info("wrote results", "path", o.jsonFile)
	}

	if o.metricsFile != "" {
		m, err := report.NewMetrics()
		if err != nil {
			return err
		}
		m.Observe(sections)
		if err := m.WriteTextfile(o.metricsFile); err != nil {
			return err
		}
		logger.Info("wrote metrics", "path", o.metricsFile)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
