package config

import "sort"

var Presets = map[string]func() *Config{
	"desktop": DefaultConfig,
	"overdrive": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "overdrive"
		cfg.Reactor.Power = 120000
		cfg.Reactor.RPM = 36000
		cfg.Reactor.FieldTesla = 2.5
		return cfg
	},
	"lowflow": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "lowflow"
		cfg.Coolant.MassFlow = 0.15
		return cfg
	},
	"compact": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "compact"
		cfg.Geometry.BallRadius = 0.06
		cfg.Geometry.PlasmaRadius = 0.006
		cfg.Geometry.ShellSamples = 120
		cfg.Coolant.ChannelLength = 0.3
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
