package hole

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	basic := DefaultConfig(VariantBasic)
	require.NoError(t, basic.Validate())
	assert.False(t, basic.FoodInflation)
	assert.Empty(t, basic.Walls)
	assert.Equal(t, 120*time.Second, basic.TimeLimit)

	advanced := DefaultConfig(VariantAdvanced)
	require.NoError(t, advanced.Validate())
	assert.True(t, advanced.FoodInflation)
	assert.Len(t, advanced.Walls, 3)

	arena := Arena{Width: advanced.Width, Height: advanced.Height}
	for _, w := range advanced.Walls {
		assert.False(t, CircleOverlapsRect(arena.Center(), advanced.HoleRadius, w), "wall %+v covers the start", w)
		assert.LessOrEqual(t, w.X+w.W, advanced.Width)
		assert.LessOrEqual(t, w.Y+w.H, advanced.Height)
	}
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("Advanced ")
	require.NoError(t, err)
	assert.Equal(t, VariantAdvanced, v)

	_, err = ParseVariant("hard")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"max below start", func(c *Config) { c.MaxHoleSize = c.HoleRadius - 1 }},
		{"negative consumables", func(c *Config) { c.Consumables = -1 }},
		{"inverted radius range", func(c *Config) { c.MinConsumableRadius = 40 }},
		{"hole outgrows arena", func(c *Config) { c.Height = 500 }},
		{"zero time limit", func(c *Config) { c.TimeLimit = 0 }},
		{"unknown jitter mode", func(c *Config) { c.JitterMode = "brownian" }},
		{"flat wall", func(c *Config) { c.Walls = []Rect{{X: 10, Y: 10, W: 0, H: 10}} }},
		{"unknown variant", func(c *Config) { c.Variant = Variant(7) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(VariantBasic)
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := DefaultConfig(VariantBasic)
	cfg.Width = -1
	cfg.SpawnAttempts = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arena must be positive")
	assert.Contains(t, err.Error(), "spawn_attempts must be positive")
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
variant: advanced
consumables: 20
time_limit: 90s
reset_delay: 1500ms
jitter_mode: perlin
walls:
  - {x: 10, y: 20, w: 30, h: 40}
seed: 7
`)

	cfg, err := ParseConfig(data)
	require.NoError(t, err)

	assert.Equal(t, VariantAdvanced, cfg.Variant)
	assert.Equal(t, 20, cfg.Consumables)
	assert.Equal(t, 90*time.Second, cfg.TimeLimit)
	assert.Equal(t, 1500*time.Millisecond, cfg.ResetDelay)
	assert.Equal(t, JitterPerlin, cfg.JitterMode)
	assert.Equal(t, []Rect{{X: 10, Y: 20, W: 30, H: 40}}, cfg.Walls)
	assert.Equal(t, int64(7), cfg.Seed)

	// Unset fields keep the advanced defaults.
	assert.True(t, cfg.FoodInflation)
	assert.Equal(t, DefaultMaxHoleSize, cfg.MaxHoleSize)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ParseConfig([]byte("variant: expert\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseConfig([]byte("width: -5\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseConfig([]byte("width: [1, 2\n"))
	assert.Error(t, err)
}

func TestConfigRoundTripsThroughYAML(t *testing.T) {
	want := DefaultConfig(VariantAdvanced)

	data, err := yaml.Marshal(want)
	require.NoError(t, err)
	assert.Contains(t, string(data), "variant: advanced")

	got, err := ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holeio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variant: basic\nconsumables: 5\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, VariantBasic, cfg.Variant)
	assert.Equal(t, 5, cfg.Consumables)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
