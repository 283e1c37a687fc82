package testbench_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/FifoBench/internal/testbench"
)

func TestRunFollowsReportOrder(t *testing.T) {
	cfg := smallConfig()

	var calls []int
	sections, err := testbench.Run(cfg, testbench.WithProgress(func(done, total int, r testbench.Result) {
		assert.Equal(t, 9, total)
		calls = append(calls, done)
	}))
	require.NoError(t, err)

	require.Len(t, sections, 3)
	wantElements := []testbench.ElementKind{testbench.Float, testbench.Object, testbench.Integer}
	for i, s := range sections {
		assert.Equal(t, wantElements[i], s.Element)
		require.Len(t, s.Results, 3)
		for j, r := range s.Results {
			assert.Equal(t, testbench.ContainerOrder[j], r.Container, "section %s", s.Element)
			assert.Equal(t, s.Element, r.Element)
			assert.Equal(t, cfg.Capacity-1, r.Elements)
		}
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, calls)
}

func TestRunWithSelectedKinds(t *testing.T) {
	sections, err := testbench.Run(smallConfig(),
		testbench.WithElementKinds(testbench.Integer),
		testbench.WithContainerKinds(testbench.Ring, testbench.Linked),
	)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, testbench.Integer, sections[0].Element)
	require.Len(t, sections[0].Results, 2)
	assert.Equal(t, testbench.Ring, sections[0].Results[0].Container)
	assert.Equal(t, testbench.Linked, sections[0].Results[1].Container)
}

func TestRunLogsThroughInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := testbench.Run(smallConfig(),
		testbench.WithLogger(logger),
		testbench.WithElementKinds(testbench.Float),
	)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "testing containers")
	assert.Equal(t, 3, strings.Count(out, "case finished"))
	assert.Contains(t, out, "case=ring/float")
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.ValueSpan = 0
	sections, err := testbench.Run(cfg)
	require.ErrorIs(t, err, testbench.ErrInvalidConfig)
	assert.Empty(t, sections)
}

func TestRunStrictRingStillFits(t *testing.T) {
	cfg := smallConfig()
	cfg.RingPolicy = "strict"
	sections, err := testbench.Run(cfg, testbench.WithContainerKinds(testbench.Ring))
	require.NoError(t, err)
	for _, s := range sections {
		assert.Equal(t, uint64(0), s.Results[0].Dropped)
	}
}
