package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPower      = 10000.0
	DefaultRPM        = 18000.0
	DefaultFieldTesla = 1.0

	DefaultBallRadius      = 0.10
	DefaultCoilHalfAngle   = 15.0
	DefaultCoilCount       = 4
	DefaultCoilWidth       = 0.05
	DefaultCoilSamples     = 50
	DefaultPlasmaRadius    = 0.01
	DefaultPlasmaSamples   = 100
	DefaultFieldAngular    = 50
	DefaultFieldRadial     = 5
	DefaultShellSamples    = 0
	DefaultPentagons       = 12
	DefaultHexagons        = 20
	DefaultMassFlow        = 2.2
	DefaultSpecificHeat    = 850.0
	DefaultInletTemp       = 193.0
	DefaultMaxTemp         = 250.0
	DefaultDiameter        = 0.01
	DefaultDensity         = 1100.0
	DefaultChannelLength   = 0.5
	DefaultChannelsPerCoil = 2
	DefaultProfileSamples  = 50
)

type Config struct {
	Name     string         `yaml:"name"`
	Reactor  ReactorConfig  `yaml:"reactor"`
	Geometry GeometryConfig `yaml:"geometry"`
	Coolant  CoolantConfig  `yaml:"coolant"`
}

type ReactorConfig struct {
	Power      float64 `yaml:"power_w"`
	RPM        float64 `yaml:"rpm"`
	FieldTesla float64 `yaml:"field_tesla"`
}

type GeometryConfig struct {
	BallRadius    float64 `yaml:"ball_radius"`
	CoilHalfAngle float64 `yaml:"coil_half_angle_deg"`
	CoilCount     int     `yaml:"coil_count"`
	CoilWidth     float64 `yaml:"coil_width"`
	CoilSamples   int     `yaml:"coil_samples"`
	PlasmaRadius  float64 `yaml:"plasma_radius"`
	PlasmaSamples int     `yaml:"plasma_samples"`
	FieldAngular  int     `yaml:"field_angular_samples"`
	FieldRadial   int     `yaml:"field_radial_samples"`
	ShellSamples  int     `yaml:"shell_samples"`
	Pentagons     int     `yaml:"pentagons"`
	Hexagons      int     `yaml:"hexagons"`
}

type CoolantConfig struct {
	MassFlow        float64 `yaml:"mass_flow"`
	SpecificHeat    float64 `yaml:"specific_heat"`
	InletTemp       float64 `yaml:"inlet_temp"`
	MaxTemp         float64 `yaml:"max_temp"`
	Diameter        float64 `yaml:"channel_diameter"`
	Density         float64 `yaml:"density"`
	ChannelLength   float64 `yaml:"channel_length_per_coil"`
	ChannelsPerCoil int     `yaml:"channels_per_coil"`
	ProfileSamples  int     `yaml:"profile_samples"`
}

// DefaultConfig returns the 10 kW desktop reactor.
func DefaultConfig() *Config {
	return &Config{
		Name: "desktop",
		Reactor: ReactorConfig{
			Power:      DefaultPower,
			RPM:        DefaultRPM,
			FieldTesla: DefaultFieldTesla,
		},
		Geometry: GeometryConfig{
			BallRadius:    DefaultBallRadius,
			CoilHalfAngle: DefaultCoilHalfAngle,
			CoilCount:     DefaultCoilCount,
			CoilWidth:     DefaultCoilWidth,
			CoilSamples:   DefaultCoilSamples,
			PlasmaRadius:  DefaultPlasmaRadius,
			PlasmaSamples: DefaultPlasmaSamples,
			FieldAngular:  DefaultFieldAngular,
			FieldRadial:   DefaultFieldRadial,
			ShellSamples:  DefaultShellSamples,
			Pentagons:     DefaultPentagons,
			Hexagons:      DefaultHexagons,
		},
		Coolant: CoolantConfig{
			MassFlow:        DefaultMassFlow,
			SpecificHeat:    DefaultSpecificHeat,
			InletTemp:       DefaultInletTemp,
			MaxTemp:         DefaultMaxTemp,
			Diameter:        DefaultDiameter,
			Density:         DefaultDensity,
			ChannelLength:   DefaultChannelLength,
			ChannelsPerCoil: DefaultChannelsPerCoil,
			ProfileSamples:  DefaultProfileSamples,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a yaml file on top of a copy of base; keys absent from the
// file keep their base values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy; the config holds only values.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate rejects sample and coil counts that cannot describe a figure.
// Divisors of the coolant formulas are checked by the formulas themselves.
func (c *Config) Validate() error {
	counts := []struct {
		name  string
		value int
		min   int
	}{
		{"geometry.coil_count", c.Geometry.CoilCount, 1},
		{"geometry.coil_samples", c.Geometry.CoilSamples, 0},
		{"geometry.plasma_samples", c.Geometry.PlasmaSamples, 0},
		{"geometry.field_angular_samples", c.Geometry.FieldAngular, 0},
		{"geometry.field_radial_samples", c.Geometry.FieldRadial, 0},
		{"geometry.shell_samples", c.Geometry.ShellSamples, 0},
		{"coolant.channels_per_coil", c.Coolant.ChannelsPerCoil, 0},
		{"coolant.profile_samples", c.Coolant.ProfileSamples, 0},
	}
	for _, cnt := range counts {
		if cnt.value < cnt.min {
			return fmt.Errorf("config: %s must be >= %d, got %d", cnt.name, cnt.min, cnt.value)
		}
	}
	if c.Geometry.CoilWidth < 0 {
		return fmt.Errorf("config: geometry.coil_width must be >= 0, got %g", c.Geometry.CoilWidth)
	}
	if c.Reactor.Power < 0 {
		return fmt.Errorf("config: reactor.power_w must be >= 0, got %g", c.Reactor.Power)
	}
	return nil
}
