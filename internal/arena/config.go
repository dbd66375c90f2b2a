package arena

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/strikeback/internal/core/race"
	"github.com/zeusync/strikeback/internal/core/systems/physics"
)

// Board size in game units.
const (
	BoardWidth  = 16000
	BoardHeight = 9000
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid arena config")

//go:embed maps.yaml
var defaultMaps []byte

// Point is a checkpoint position as written in YAML.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Map is a named checkpoint layout.
type Map struct {
	Name        string  `yaml:"name"`
	Checkpoints []Point `yaml:"checkpoints"`
}

// Track builds the race track for laps.
func (m Map) Track(laps int) race.Track {
	cps := make([]physics.Vector, len(m.Checkpoints))
	for i, p := range m.Checkpoints {
		cps[i] = physics.Vec(p.X, p.Y)
	}
	return race.Track{Laps: laps, Checkpoints: cps}
}

// Config describes a batch of self-play matches.
type Config struct {
	Matches  int   `yaml:"matches"`
	Workers  int   `yaml:"workers"`
	Laps     int   `yaml:"laps"`
	MaxTurns int   `yaml:"max_turns"`
	Seed     int64 `yaml:"seed"`
	// Jitter moves every checkpoint by up to this many units per match.
	Jitter int   `yaml:"jitter"`
	Maps   []Map `yaml:"maps"`
}

// DefaultMaps returns the built-in map pool.
func DefaultMaps() []Map {
	var maps []Map
	if err := yaml.Unmarshal(defaultMaps, &maps); err != nil {
		panic(fmt.Sprintf("arena: embedded maps.yaml: %v", err))
	}
	return maps
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Matches:  12,
		Workers:  runtime.NumCPU(),
		Laps:     3,
		MaxTurns: 500,
		Seed:     1,
		Jitter:   30,
		Maps:     DefaultMaps(),
	}
}

// LoadYAML reads a config from r. Keys missing from the document keep their
// Default values; an empty document yields Default.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return c, nil
}

// Validate checks that the batch can run.
func (c *Config) Validate() error {
	switch {
	case c.Matches < 1:
		return fmt.Errorf("%w: matches must be positive, got %d", ErrInvalidConfig, c.Matches)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	case c.Laps < 1:
		return fmt.Errorf("%w: laps must be positive, got %d", ErrInvalidConfig, c.Laps)
	case c.MaxTurns < 1:
		return fmt.Errorf("%w: max_turns must be positive, got %d", ErrInvalidConfig, c.MaxTurns)
	case c.Jitter < 0:
		return fmt.Errorf("%w: jitter must not be negative, got %d", ErrInvalidConfig, c.Jitter)
	case len(c.Maps) == 0:
		return fmt.Errorf("%w: no maps", ErrInvalidConfig)
	}
	for _, m := range c.Maps {
		if len(m.Checkpoints) < 2 {
			return fmt.Errorf("%w: map %q needs at least 2 checkpoints", ErrInvalidConfig, m.Name)
		}
		for i, p := range m.Checkpoints {
			if p.X < 0 || p.X > BoardWidth || p.Y < 0 || p.Y > BoardHeight {
				return fmt.Errorf("%w: map %q checkpoint %d (%d, %d) is off the board", ErrInvalidConfig, m.Name, i, p.X, p.Y)
			}
		}
	}
	return nil
}
