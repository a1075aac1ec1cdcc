package config

import (
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCount           = 100000
	DefaultSize            = 0.008
	DefaultRadius          = 4.0
	DefaultBranches        = 6
	DefaultSpin            = 1.16
	DefaultRandomness      = 0.06
	DefaultRandomnessPower = 3.0
	DefaultInsideColor     = "#ff6030"
	DefaultOutsideColor    = "#13666c"

	DefaultRotationSpeed = -0.05
	DefaultFOV           = 75.0
	DefaultNear          = 0.1
	DefaultFar           = 100.0
	DefaultDamping       = 0.05
)

// Range is the min/max/step a control panel widget declares for a field.
type Range struct {
	Min, Max, Step float64
}

// Clamp limits v to [Min, Max]. NaN maps to Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Snap rounds v to the nearest step above Min, then clamps.
func (r Range) Snap(v float64) float64 {
	if r.Step > 0 && !math.IsNaN(v) {
		steps := math.Round((v - r.Min) / r.Step)
		v = r.Min + steps*r.Step
		v = math.Round(v*1e9) / 1e9
	}
	return r.Clamp(v)
}

func (r Range) Contains(v float64) bool {
	return !math.IsNaN(v) && v >= r.Min && v <= r.Max
}

var (
	CountRange           = Range{Min: 100, Max: 1000000, Step: 100}
	SizeRange            = Range{Min: 0.001, Max: 0.1, Step: 0.001}
	RadiusRange          = Range{Min: 0.01, Max: 20, Step: 0.01}
	BranchesRange        = Range{Min: 2, Max: 20, Step: 1}
	SpinRange            = Range{Min: -5, Max: 5, Step: 0.01}
	RandomnessRange      = Range{Min: 0, Max: 2, Step: 0.001}
	RandomnessPowerRange = Range{Min: 1, Max: 10, Step: 0.001}
)

// Parameters is the galaxy parameter store. A single instance is owned by the
// control panel of whichever surface is running.
type Parameters struct {
	Count           int     `yaml:"count" json:"count"`
	Size            float64 `yaml:"size" json:"size"`
	Radius          float64 `yaml:"radius" json:"radius"`
	Branches        int     `yaml:"branches" json:"branches"`
	Spin            float64 `yaml:"spin" json:"spin"`
	Randomness      float64 `yaml:"randomness" json:"randomness"`
	RandomnessPower float64 `yaml:"randomness_power" json:"randomness_power"`
	InsideColor     Color   `yaml:"inside_color" json:"inside_color"`
	OutsideColor    Color   `yaml:"outside_color" json:"outside_color"`
}

func DefaultParameters() Parameters {
	return Parameters{
		Count:           DefaultCount,
		Size:            DefaultSize,
		Radius:          DefaultRadius,
		Branches:        DefaultBranches,
		Spin:            DefaultSpin,
		Randomness:      DefaultRandomness,
		RandomnessPower: DefaultRandomnessPower,
		InsideColor:     MustParseColor(DefaultInsideColor),
		OutsideColor:    MustParseColor(DefaultOutsideColor),
	}
}

// Validate reports the first field outside its declared range.
func (p Parameters) Validate() error {
	checks := []struct {
		name string
		v    float64
		r    Range
	}{
		{"count", float64(p.Count), CountRange},
		{"size", p.Size, SizeRange},
		{"radius", p.Radius, RadiusRange},
		{"branches", float64(p.Branches), BranchesRange},
		{"spin", p.Spin, SpinRange},
		{"randomness", p.Randomness, RandomnessRange},
		{"randomness_power", p.RandomnessPower, RandomnessPowerRange},
	}
	for _, c := range checks {
		if !c.r.Contains(c.v) {
			return fmt.Errorf("%w: %s=%g not in [%g, %g]", ErrParameterBounds, c.name, c.v, c.r.Min, c.r.Max)
		}
	}
	return nil
}

// Clamp returns a copy with every numeric field limited to its range.
func (p Parameters) Clamp() Parameters {
	p.Count = int(CountRange.Clamp(float64(p.Count)))
	p.Size = SizeRange.Clamp(p.Size)
	p.Radius = RadiusRange.Clamp(p.Radius)
	p.Branches = int(BranchesRange.Clamp(float64(p.Branches)))
	p.Spin = SpinRange.Clamp(p.Spin)
	p.Randomness = RandomnessRange.Clamp(p.Randomness)
	p.RandomnessPower = RandomnessPowerRange.Clamp(p.RandomnessPower)
	return p
}

// GeneratorConfig toggles the optional randomness scaling and accent colors.
// Both are off by default.
type GeneratorConfig struct {
	ApplyRandomness bool `yaml:"apply_randomness"`
	AccentColors    bool `yaml:"accent_colors"`
}

type WindowConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Title      string  `yaml:"title"`
	FPS        int     `yaml:"fps"`
	PixelRatio float64 `yaml:"pixel_ratio"`
}

type CameraConfig struct {
	FOV      float64    `yaml:"fov"`
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
	Position [3]float64 `yaml:"position"`
	Damping  float64    `yaml:"damping"`
}

type Config struct {
	Seed          int64           `yaml:"seed"`
	Debug         bool            `yaml:"debug"`
	Galaxy        Parameters      `yaml:"galaxy"`
	Generator     GeneratorConfig `yaml:"generator"`
	Window        WindowConfig    `yaml:"window"`
	Camera        CameraConfig    `yaml:"camera"`
	RotationSpeed float64         `yaml:"rotation_speed"`
}

func DefaultConfig() *Config {
	return &Config{
		Galaxy: DefaultParameters(),
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Title:      "galaxy",
			FPS:        60,
			PixelRatio: 1,
		},
		Camera: CameraConfig{
			FOV:      DefaultFOV,
			Near:     DefaultNear,
			Far:      DefaultFar,
			Position: [3]float64{3, 0, 3},
			Damping:  DefaultDamping,
		},
		RotationSpeed: DefaultRotationSpeed,
	}
}

// Load overlays the YAML file at path onto DefaultConfig and clamps the
// galaxy parameters.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := Overlay(cfg, data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay applies the YAML document in data on top of cfg; keys it does not
// mention keep their current values.
func Overlay(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg.Galaxy = cfg.Galaxy.Clamp()
	return nil
}

// LoadInto is Overlay for a file.
func LoadInto(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Overlay(cfg, data)
}

// Encode writes cfg as YAML.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
