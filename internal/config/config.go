package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/generate"
	"github.com/san-kum/algoviz/internal/graph"
	"github.com/san-kum/algoviz/internal/playback"
)

const (
	DefaultAlgorithm  = "quicksort"
	DefaultSize       = 20
	DefaultGraphSize  = 8
	DefaultSpeedMS    = 1000
	DefaultDataDir    = "runs"
	DefaultWidth      = 96
	DefaultHeight     = 24
	DefaultFrameDelay = 20
)

var ErrUnknownPreset = errors.New("config: unknown preset")

// SpeedSteps are the selectable delays between steps, slowest first.
var SpeedSteps = []time.Duration{
	2000 * time.Millisecond,
	1000 * time.Millisecond,
	500 * time.Millisecond,
	250 * time.Millisecond,
	125 * time.Millisecond,
	62 * time.Millisecond,
}

type Config struct {
	Algorithm string `yaml:"algorithm" toml:"algorithm"`

	// Preset names an array or graph preset. Empty means random input of
	// Size elements or Nodes nodes unless Array or Graph is given.
	Preset string       `yaml:"preset,omitempty" toml:"preset,omitempty"`
	Size   int          `yaml:"size" toml:"size"`
	Nodes  int          `yaml:"nodes" toml:"nodes"`
	Seed   int64        `yaml:"seed" toml:"seed"`
	Array  []float64    `yaml:"array,omitempty" toml:"array,omitempty"`
	Graph  *graph.Graph `yaml:"graph,omitempty" toml:"graph,omitempty"`
	Start  string       `yaml:"start,omitempty" toml:"start,omitempty"`
	End    string       `yaml:"end,omitempty" toml:"end,omitempty"`

	SpeedMS int          `yaml:"speed_ms" toml:"speed_ms"`
	DataDir string       `yaml:"data_dir" toml:"data_dir"`
	Export  ExportConfig `yaml:"export" toml:"export"`
}

type ExportConfig struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
	// FrameDelay is the GIF frame delay in hundredths of a second.
	FrameDelay int  `yaml:"frame_delay" toml:"frame_delay"`
	Loop       bool `yaml:"loop" toml:"loop"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Size:      DefaultSize,
		Nodes:     DefaultGraphSize,
		SpeedMS:   DefaultSpeedMS,
		DataDir:   DefaultDataDir,
		Export: ExportConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			FrameDelay: DefaultFrameDelay,
			Loop:       true,
		},
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a YAML or, for .toml paths, TOML config over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if isTOML(path) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Speed() time.Duration {
	if c.SpeedMS <= 0 {
		return DefaultSpeedMS * time.Millisecond
	}
	return time.Duration(c.SpeedMS) * time.Millisecond
}

// ArrayInput resolves the sorting input: an explicit array, then a preset,
// then Size random values from Seed.
func (c *Config) ArrayInput() (playback.Input, error) {
	switch {
	case len(c.Array) > 0:
		return playback.Input{Array: append([]float64(nil), c.Array...)}, nil
	case c.Preset != "":
		p := GetArrayPreset(c.Preset)
		if p == nil {
			return playback.Input{}, fmt.Errorf("%w: %s", ErrUnknownPreset, c.Preset)
		}
		return playback.Input{Array: append([]float64(nil), p.Data...)}, nil
	}
	size := c.Size
	if size <= 0 {
		size = DefaultSize
	}
	return playback.Input{Array: generate.Array(rand.New(rand.NewSource(c.Seed)), size)}, nil
}

// GraphInput resolves the search input the same way as ArrayInput. Start
// and End are passed through; empty ones fall back to the graph's flags.
func (c *Config) GraphInput() (playback.Input, error) {
	in := playback.Input{Start: c.Start, End: c.End}
	switch {
	case c.Graph != nil:
		in.Graph = c.Graph.Clone()
	case c.Preset != "":
		p := GetGraphPreset(c.Preset)
		if p == nil {
			return playback.Input{}, fmt.Errorf("%w: %s", ErrUnknownPreset, c.Preset)
		}
		in.Graph = p.Build()
	default:
		n := c.Nodes
		if n <= 0 {
			n = DefaultGraphSize
		}
		in.Graph = generate.Graph(rand.New(rand.NewSource(c.Seed)), n)
	}
	return in, nil
}

// NextSpeed returns the step after cur in SpeedSteps: faster for dir > 0,
// slower otherwise. Unlisted delays snap to the nearest step first.
func NextSpeed(cur time.Duration, dir int) time.Duration {
	i := nearestSpeed(cur)
	if dir > 0 {
		i++
	} else if dir < 0 {
		i--
	}
	i = min(max(i, 0), len(SpeedSteps)-1)
	return SpeedSteps[i]
}

func nearestSpeed(d time.Duration) int {
	best := 0
	for i, s := range SpeedSteps {
		if (s - d).Abs() < (SpeedSteps[best] - d).Abs() {
			best = i
		}
	}
	return best
}
