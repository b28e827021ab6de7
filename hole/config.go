package hole

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Variant -linecomment

// Variant selects the rule set of a game.
type Variant int

const (
	// VariantBasic: consumables jitter in place and growth is linear.
	VariantBasic Variant = iota // basic
	// VariantAdvanced: walls, consumables chase or flee the hole, damped growth
	// with food inflation and non-overlapping spawns.
	VariantAdvanced // advanced
)

// ParseVariant converts a variant name into a Variant.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case VariantBasic.String():
		return VariantBasic, nil
	case VariantAdvanced.String():
		return VariantAdvanced, nil
	}
	return 0, fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, name)
}

func (v *Variant) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}

	parsed, err := ParseVariant(name)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Variant) MarshalYAML() (any, error) {
	return v.String(), nil
}

// JitterMode selects how basic-variant consumables wander.
type JitterMode string

const (
	JitterUniform JitterMode = "uniform"
	JitterPerlin  JitterMode = "perlin"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunable parameters of a game.
type Config struct {
	Variant             Variant       `yaml:"variant"`
	Width               float64       `yaml:"width"`
	Height              float64       `yaml:"height"`
	HoleRadius          float64       `yaml:"hole_radius"`
	MaxHoleSize         float64       `yaml:"max_hole_size"`
	Consumables         int           `yaml:"consumables"`
	MinConsumableRadius float64       `yaml:"min_consumable_radius"`
	MaxConsumableRadius float64       `yaml:"max_consumable_radius"`
	TimeLimit           time.Duration `yaml:"time_limit"`
	ResetDelay          time.Duration `yaml:"reset_delay"`
	KeySpeed            float64       `yaml:"key_speed"`
	ChaseSpeed          float64       `yaml:"chase_speed"`
	Jitter              float64       `yaml:"jitter"`
	JitterMode          JitterMode    `yaml:"jitter_mode"`
	FoodInflation       bool          `yaml:"food_inflation"`
	InflationFactor     float64       `yaml:"inflation_factor"`
	SpawnAttempts       int           `yaml:"spawn_attempts"`
	Walls               []Rect        `yaml:"walls"`
	Seed                int64         `yaml:"seed"`
}

// DefaultWalls is the obstacle layout of the advanced variant on the default arena.
func DefaultWalls() []Rect {
	return []Rect{
		{X: 280, Y: 140, W: 40, H: 220},
		{X: 960, Y: 360, W: 40, H: 220},
		{X: 520, Y: 600, W: 240, H: 30},
	}
}

// DefaultConfig returns the stock settings for a variant.
func DefaultConfig(variant Variant) Config {
	cfg := Config{
		Variant:             variant,
		Width:               DefaultWidth,
		Height:              DefaultHeight,
		HoleRadius:          DefaultHoleRadius,
		MaxHoleSize:         DefaultMaxHoleSize,
		Consumables:         DefaultConsumables,
		MinConsumableRadius: DefaultMinRadius,
		MaxConsumableRadius: DefaultMaxRadius,
		TimeLimit:           120 * time.Second,
		ResetDelay:          3 * time.Second,
		KeySpeed:            DefaultKeySpeed,
		ChaseSpeed:          DefaultChaseSpeed,
		Jitter:              DefaultJitter,
		JitterMode:          JitterUniform,
		InflationFactor:     DefaultInflation,
		SpawnAttempts:       DefaultSpawnAttempts,
	}

	if variant == VariantAdvanced {
		cfg.FoodInflation = true
		cfg.Walls = DefaultWalls()
	}
	return cfg
}

// Validate reports every inconsistent setting, joined into one error.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Variant == VariantBasic || c.Variant == VariantAdvanced, "unknown variant %d", int(c.Variant))
	check(c.Width > 0 && c.Height > 0, "arena must be positive, got %vx%v", c.Width, c.Height)
	check(c.HoleRadius > 0, "hole_radius must be positive, got %v", c.HoleRadius)
	check(c.MaxHoleSize >= c.HoleRadius, "max_hole_size %v is below hole_radius %v", c.MaxHoleSize, c.HoleRadius)
	check(c.Consumables >= 0, "consumables must not be negative, got %d", c.Consumables)
	check(c.MinConsumableRadius > 0, "min_consumable_radius must be positive, got %v", c.MinConsumableRadius)
	check(c.MaxConsumableRadius >= c.MinConsumableRadius,
		"max_consumable_radius %v is below min_consumable_radius %v", c.MaxConsumableRadius, c.MinConsumableRadius)
	check(2*c.MaxConsumableRadius <= min(c.Width, c.Height),
		"max_consumable_radius %v does not fit the arena", c.MaxConsumableRadius)
	check(2*c.MaxHoleSize <= min(c.Width, c.Height),
		"max_hole_size %v does not fit the arena", c.MaxHoleSize)
	check(c.TimeLimit > 0, "time_limit must be positive, got %s", c.TimeLimit)
	check(c.ResetDelay >= 0, "reset_delay must not be negative, got %s", c.ResetDelay)
	check(c.KeySpeed >= 0 && c.ChaseSpeed >= 0 && c.Jitter >= 0, "speeds must not be negative")
	check(c.JitterMode == JitterUniform || c.JitterMode == JitterPerlin, "unknown jitter_mode %q", c.JitterMode)
	check(c.InflationFactor >= 0, "inflation_factor must not be negative, got %v", c.InflationFactor)
	check(c.SpawnAttempts > 0, "spawn_attempts must be positive, got %d", c.SpawnAttempts)
	for i, w := range c.Walls {
		check(w.W > 0 && w.H > 0, "wall %d has non-positive size %vx%v", i, w.W, w.H)
	}

	return errors.Join(errs...)
}

// ParseConfig decodes YAML on top of the defaults of the variant it names.
func ParseConfig(data []byte) (Config, error) {
	var head struct {
		Variant Variant `yaml:"variant"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg := DefaultConfig(head.Variant)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
