package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/FifoBench/pkg/config"
)

func TestDefaultMatchesProductionScale(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 1000300, cfg.Capacity)
	assert.Equal(t, 50, cfg.EdgeLimit)
	assert.Equal(t, 51, cfg.ValueSpan)
	assert.Equal(t, uint64(128513), cfg.KeyBound)
	assert.Equal(t, "drop-newest", cfg.RingPolicy)
	assert.Zero(t, cfg.ExpiredRatio)
	require.NoError(t, cfg.Validate())
}

func TestParseOverridesOnlyGivenKeys(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader(`
capacity: 1024
expired_ratio: 0.25
ring_policy: strict
`))
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Capacity)
	assert.Equal(t, 0.25, cfg.ExpiredRatio)
	assert.Equal(t, "strict", cfg.RingPolicy)
	assert.Equal(t, config.Default().EdgeLimit, cfg.EdgeLimit)
	assert.Equal(t, config.Default().KeyBound, cfg.KeyBound)
}

func TestParseEmptyInputKeepsDefaults(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := config.Parse(strings.NewReader("capacty: 10\n"))
	assert.Error(t, err)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	_, err := config.Parse(strings.NewReader("capacity: 1\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Parse(strings.NewReader("ring_policy: block\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	path := filepath.Join(dir, "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capacity: 64\nseed: 9\n"), 0o644))
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Capacity)
	assert.Equal(t, uint64(9), cfg.Seed)
}
