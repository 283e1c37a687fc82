package testbench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntSourceRange(t *testing.T) {
	cfg := DefaultConfig()
	src := newIntSource(cfg, newRand(7))

	values := src.Generate(10000)
	require.Len(t, values, 10000)
	seen := make(map[int]bool)
	for _, v := range values {
		require.GreaterOrEqual(t, v, cfg.EdgeLimit)
		require.Less(t, v, cfg.EdgeLimit+cfg.ValueSpan)
		seen[v] = true
	}
	// 10k draws over 51 values hit both ends with overwhelming probability.
	assert.True(t, seen[cfg.EdgeLimit])
	assert.True(t, seen[cfg.EdgeLimit+cfg.ValueSpan-1])
}

func TestFloatSourceRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EdgeLimit, cfg.ValueSpan = 10, 3
	values := newFloatSource(cfg, newRand(7)).Generate(500)
	for _, v := range values {
		assert.Contains(t, []float64{10, 11, 12}, v)
	}
}

func TestSeededSourcesRepeat(t *testing.T) {
	cfg := DefaultConfig()
	a := newIntSource(cfg, newRand(99)).Generate(100)
	b := newIntSource(cfg, newRand(99)).Generate(100)
	assert.Equal(t, a, b)
}

func TestObjectSourceLiveByDefault(t *testing.T) {
	cfg := DefaultConfig()
	src := newObjectSource(cfg, newRand(3))

	handles := src.Generate(200)
	require.Len(t, handles, 200)
	keys := make(map[uint64]bool)
	for _, h := range handles {
		rec, ok := h.Resolve()
		require.True(t, ok)
		assert.Equal(t, ObjectTitle, rec.Title())
		assert.Equal(t, ObjectDescription, rec.Description())
		assert.Less(t, rec.Key(), cfg.KeyBound)
		keys[rec.Key()] = true
	}
	assert.Greater(t, len(keys), 1)

	src.Release()
	for _, h := range handles {
		assert.True(t, h.Expired(), "release must drop every record")
	}
}

func TestObjectSourceExpiredRatio(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExpiredRatio = 0.5
	src := newObjectSource(cfg, newRand(5))

	// 100 records are built for 99 handles; 50 of the records are released.
	handles := src.Generate(99)
	expired := 0
	for _, h := range handles {
		if h.Expired() {
			expired++
		}
	}
	assert.True(t, expired == 49 || expired == 50, "expired = %d", expired)
	src.Release()
}

func TestObjectSourceAllExpired(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExpiredRatio = 1
	handles := newObjectSource(cfg, newRand(5)).Generate(20)
	for _, h := range handles {
		assert.True(t, h.Expired())
	}
}
