package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/camera"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/control"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/registry"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/sim"
)

const (
	DefaultG         = 6.67430e-11
	DefaultSeed      = 1
	DefaultTimeStep  = 10.0
	DefaultAsteroids = 250
	DefaultZoom      = 0.1
	DefaultWidth     = 1920
	DefaultHeight    = 1080
	DefaultTickRate  = 240
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Seed    uint64         `yaml:"seed"`
	G       float64        `yaml:"g"`
	Sun     SunConfig      `yaml:"sun"`
	Planets []PlanetConfig `yaml:"planets"`
	Belt    BeltConfig     `yaml:"belt"`
	Clock   ClockConfig    `yaml:"clock"`
	View    ViewConfig     `yaml:"view"`
	Run     RunConfig      `yaml:"run"`
}

type SunConfig struct {
	Name     string  `yaml:"name"`
	Mass     float64 `yaml:"mass"`
	Diameter float64 `yaml:"diameter"`
	Color    string  `yaml:"color"`
}

type PlanetConfig struct {
	Name     string  `yaml:"name"`
	Mass     float64 `yaml:"mass"`
	Diameter float64 `yaml:"diameter"`
	Distance float64 `yaml:"distance"`
	Color    string  `yaml:"color"`
}

// BeltConfig distances are measured from the Sun's surface, like planet
// distances.
type BeltConfig struct {
	Count         int     `yaml:"count"`
	InnerDistance float64 `yaml:"inner_distance"`
	OuterDistance float64 `yaml:"outer_distance"`
	MinMass       float64 `yaml:"min_mass"`
	MaxMass       float64 `yaml:"max_mass"`
	MinDiameter   float64 `yaml:"min_diameter"`
	MaxDiameter   float64 `yaml:"max_diameter"`
	Color         string  `yaml:"color"`
}

type ClockConfig struct {
	TimeStep    float64 `yaml:"timestep"`
	MinTimeStep float64 `yaml:"min_timestep"`
	MaxTimeStep float64 `yaml:"max_timestep"`
	Factor      float64 `yaml:"factor"`
	TickRate    int     `yaml:"tick_rate"`
}

type ViewConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Zoom       float64 `yaml:"zoom"`
	ZoomFactor float64 `yaml:"zoom_factor"`
	PanSpeed   float64 `yaml:"pan_speed"`
	OrbitColor string  `yaml:"orbit_color"`
}

type RunConfig struct {
	Steps        int     `yaml:"steps"`
	SampleEvery  int     `yaml:"sample_every"`
	EscapeRadius float64 `yaml:"escape_radius"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed: DefaultSeed,
		G:    DefaultG,
		Sun:  SunConfig{Name: "Sun", Mass: 1.989e10, Diameter: 1392.7, Color: "#FFFF00"},
		Planets: []PlanetConfig{
			{Name: "Mercury", Mass: 3.28e3, Diameter: 4.879, Distance: 57.9, Color: "#A9A9A9"},
			{Name: "Venus", Mass: 4.83e4, Diameter: 12.104, Distance: 108.2, Color: "#FFD700"},
			{Name: "Earth", Mass: 5.98e4, Diameter: 12.756, Distance: 149.6, Color: "#00BFFF"},
			{Name: "Mars", Mass: 6.40e3, Diameter: 6.798, Distance: 227.9, Color: "#BC2732"},
			{Name: "Jupiter", Mass: 1.90e7, Diameter: 142.964, Distance: 778.5, Color: "#FF8C00"},
			{Name: "Saturn", Mass: 5.68e6, Diameter: 120.536, Distance: 1432.0, Color: "#D2B48C"},
			{Name: "Uranus", Mass: 8.67e5, Diameter: 51.118, Distance: 2867.0, Color: "#00FFFF"},
			{Name: "Neptune", Mass: 1.05e6, Diameter: 49.572, Distance: 4515.0, Color: "#191970"},
		},
		Belt: BeltConfig{
			Count:         DefaultAsteroids,
			InnerDistance: 300,
			OuterDistance: 600,
			MinMass:       1e-6,
			MaxMass:       1e-4,
			MinDiameter:   0.1,
			MaxDiameter:   2,
			Color:         "#969696",
		},
		Clock: ClockConfig{
			TimeStep:    DefaultTimeStep,
			MinTimeStep: 0.1,
			MaxTimeStep: 100,
			Factor:      1.2,
			TickRate:    DefaultTickRate,
		},
		View: ViewConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Zoom:       DefaultZoom,
			ZoomFactor: 1.1,
			PanSpeed:   10,
			OrbitColor: "#1E1E1E",
		},
		Run: RunConfig{
			Steps:        10000,
			SampleEvery:  10,
			EscapeRadius: 20000,
		},
	}
}

func (c *Config) Clone() *Config {
	out := *c
	out.Planets = append([]PlanetConfig(nil), c.Planets...)
	return &out
}

// Load reads a YAML file over base, so keys the file leaves out keep base's
// values. A nil base means DefaultConfig. base itself is not modified.
func Load(path string, base *Config) (*Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if base != nil {
		cfg = base.Clone()
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	fail := func(format string, args ...any) {
		result = multierror.Append(result, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if !positive(c.G) {
		fail("g must be positive, got %g", c.G)
	}
	if !positive(c.Sun.Mass) {
		fail("sun mass must be positive, got %g", c.Sun.Mass)
	}
	if !positive(c.Sun.Diameter) {
		fail("sun diameter must be positive, got %g", c.Sun.Diameter)
	}
	for _, p := range c.Planets {
		if !positive(p.Mass) {
			fail("planet %s: mass must be positive, got %g", p.Name, p.Mass)
		}
		if !positive(p.Diameter) {
			fail("planet %s: diameter must be positive, got %g", p.Name, p.Diameter)
		}
		if p.Distance < 0 {
			fail("planet %s: distance must not be negative, got %g", p.Name, p.Distance)
		}
	}

	b := c.Belt
	if b.Count < 0 {
		fail("belt count must not be negative, got %d", b.Count)
	}
	if b.Count > 0 {
		if b.InnerDistance < 0 || b.InnerDistance > b.OuterDistance {
			fail("belt distances inverted: [%g, %g]", b.InnerDistance, b.OuterDistance)
		}
		if !positive(b.MinMass) || b.MinMass > b.MaxMass {
			fail("asteroid mass range invalid: [%g, %g]", b.MinMass, b.MaxMass)
		}
		if !positive(b.MinDiameter) || b.MinDiameter > b.MaxDiameter {
			fail("asteroid diameter range invalid: [%g, %g]", b.MinDiameter, b.MaxDiameter)
		}
	}

	k := c.Clock
	if !positive(k.MinTimeStep) || k.MinTimeStep > k.MaxTimeStep {
		fail("timestep bounds invalid: [%g, %g]", k.MinTimeStep, k.MaxTimeStep)
	} else if k.TimeStep < k.MinTimeStep || k.TimeStep > k.MaxTimeStep {
		fail("timestep %g outside [%g, %g]", k.TimeStep, k.MinTimeStep, k.MaxTimeStep)
	}
	if k.Factor <= 1 {
		fail("timestep factor must exceed 1, got %g", k.Factor)
	}
	if k.TickRate <= 0 {
		fail("tick rate must be positive, got %d", k.TickRate)
	}

	v := c.View
	if v.Width <= 0 || v.Height <= 0 {
		fail("viewport must be non-empty, got %dx%d", v.Width, v.Height)
	}
	if !positive(v.Zoom) {
		fail("zoom must be positive, got %g", v.Zoom)
	}
	if v.ZoomFactor <= 1 {
		fail("zoom factor must exceed 1, got %g", v.ZoomFactor)
	}
	if v.PanSpeed < 0 {
		fail("pan speed must not be negative, got %g", v.PanSpeed)
	}

	return result.ErrorOrNil()
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// SunPosition is the viewport centre, so the Sun is the zoom pivot.
func (c *Config) SunPosition() r2.Vec {
	return r2.Vec{X: float64(c.View.Width) / 2, Y: float64(c.View.Height) / 2}
}

func (c *Config) RegistryParams() registry.Params {
	sunRadius := c.Sun.Diameter / 2
	planets := make([]registry.PlanetParams, len(c.Planets))
	for i, p := range c.Planets {
		planets[i] = registry.PlanetParams{
			Name:         p.Name,
			Color:        p.Color,
			Mass:         p.Mass,
			Diameter:     p.Diameter,
			BaseDistance: p.Distance,
		}
	}
	return registry.Params{
		G:        c.G,
		TimeStep: c.Clock.TimeStep,
		Sun: registry.SunParams{
			Name:     c.Sun.Name,
			Color:    c.Sun.Color,
			Mass:     c.Sun.Mass,
			Diameter: c.Sun.Diameter,
			Position: c.SunPosition(),
		},
		Planets: planets,
		Belt: registry.BeltParams{
			Count:       c.Belt.Count,
			InnerRadius: c.Belt.InnerDistance + sunRadius,
			OuterRadius: c.Belt.OuterDistance + sunRadius,
			MinMass:     c.Belt.MinMass,
			MaxMass:     c.Belt.MaxMass,
			MinDiameter: c.Belt.MinDiameter,
			MaxDiameter: c.Belt.MaxDiameter,
			Color:       c.Belt.Color,
		},
	}
}

func (c *Config) Tuning() control.Tuning {
	return control.Tuning{
		ZoomFactor:     c.View.ZoomFactor,
		PanSpeed:       c.View.PanSpeed,
		TimeStepFactor: c.Clock.Factor,
	}
}

func (c *Config) NewCamera() (*camera.Camera, error) {
	return camera.New(c.View.Width, c.View.Height, c.View.Zoom)
}

func (c *Config) NewClock() (sim.Clock, error) {
	return sim.NewClock(c.Clock.TimeStep, c.Clock.MinTimeStep, c.Clock.MaxTimeStep)
}
