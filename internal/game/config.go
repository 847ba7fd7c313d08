package game

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Simulation cadence.
const (
	TickInterval    = 50 * time.Millisecond
	MaxCatchUpTicks = 5 // ticks run per Advance before the backlog is dropped
)

// Cycle tuning.
const (
	StrokeWidth   = 7.0
	DefaultSpeed  = 60.0 // units per second
	BoostFactor   = 1.5
	BoostDuration = 500 * time.Millisecond
)

// Arena defaults.
const (
	DefaultWidth     = 800
	DefaultHeight    = 600
	DefaultToggleKey = "Space"
	GridCell         = 25 // approximate background cell size in pixels
)

var (
	ErrNoCycles         = errors.New("no cycles configured")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidColor     = errors.New("invalid color")
)

// CycleConfig describes one player's cycle at the start of a round.
type CycleConfig struct {
	Name      string     `toml:"name"`
	Position  [2]float64 `toml:"position"`
	Direction Direction  `toml:"direction"`
	Speed     float64    `toml:"speed"` // units per second
	Keys      [4]string  `toml:"keys"`  // ordered north, east, south, west
	Color     RGB        `toml:"color"`
}

// Config is the session configuration: arena size and the cycles in it.
type Config struct {
	Width     int           `toml:"width"`
	Height    int           `toml:"height"`
	ToggleKey string        `toml:"toggle_key"`
	Cycles    []CycleConfig `toml:"cycle"`
}

// DefaultConfig is a two player game on an 800x600 arena.
func DefaultConfig() Config {
	return Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		ToggleKey: DefaultToggleKey,
		Cycles: []CycleConfig{
			{
				Name:      "orange",
				Position:  [2]float64{200, 300},
				Direction: East,
				Speed:     DefaultSpeed,
				Keys:      [4]string{"W", "D", "S", "A"},
				Color:     Palette.Orange,
			},
			{
				Name:      "blue",
				Position:  [2]float64{600, 300},
				Direction: West,
				Speed:     DefaultSpeed,
				Keys:      [4]string{"I", "L", "K", "J"},
				Color:     Palette.Blue,
			},
		},
	}
}

// Validate returns the first problem found in c.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("arena size %dx%d: must be positive", c.Width, c.Height)
	}
	if len(c.Cycles) == 0 {
		return ErrNoCycles
	}
	toggle := strings.ToLower(c.ToggleKey)
	for i, cc := range c.Cycles {
		if err := cc.validate(c.Width, c.Height, toggle); err != nil {
			return fmt.Errorf("cycle %d (%s): %w", i, cc.Name, err)
		}
	}
	return nil
}

func (cc CycleConfig) validate(width, height int, toggle string) error {
	if !cc.Direction.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, int(cc.Direction))
	}
	if math.IsNaN(cc.Speed) || math.IsInf(cc.Speed, 0) || cc.Speed <= 0 {
		return fmt.Errorf("speed %v: must be positive", cc.Speed)
	}
	x, y := cc.Position[0], cc.Position[1]
	if math.IsNaN(x) || math.IsNaN(y) || x < 0 || y < 0 || x >= float64(width) || y >= float64(height) {
		return fmt.Errorf("position (%v, %v): outside %dx%d arena", x, y, width, height)
	}
	seen := make(map[string]bool, len(cc.Keys))
	for i, k := range cc.Keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			return fmt.Errorf("key for %s: empty", Directions[i])
		}
		if seen[k] {
			return fmt.Errorf("key %q: bound twice", cc.Keys[i])
		}
		if k == toggle {
			return fmt.Errorf("key %q: clashes with toggle key", cc.Keys[i])
		}
		seen[k] = true
	}
	return nil
}

// DecodeConfig parses TOML over the defaults. A file that lists any
// [[cycle]] replaces the default cycles entirely.
func DecodeConfig(data string) (Config, error) {
	conf := DefaultConfig()
	conf.Cycles = nil
	if _, err := toml.Decode(data, &conf); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return withDefaultCycles(conf), nil
}

// LoadConfig parses the TOML config file whose path is provided.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	conf.Cycles = nil
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return withDefaultCycles(conf), nil
}

func withDefaultCycles(conf Config) Config {
	if len(conf.Cycles) == 0 {
		conf.Cycles = DefaultConfig().Cycles
	}
	for i := range conf.Cycles {
		if conf.Cycles[i].Speed == 0 {
			conf.Cycles[i].Speed = DefaultSpeed
		}
		if conf.Cycles[i].Name == "" {
			conf.Cycles[i].Name = fmt.Sprintf("cycle%d", i+1)
		}
	}
	return conf
}
