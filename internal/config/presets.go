package config

import "sort"

var Presets = map[string]func() *Config{
	"solar": DefaultConfig,
	"dense-belt": func() *Config {
		cfg := DefaultConfig()
		cfg.Belt.Count = 1000
		return cfg
	},
	"quiet": func() *Config {
		cfg := DefaultConfig()
		cfg.Belt.Count = 0
		return cfg
	},
	"fast": func() *Config {
		cfg := DefaultConfig()
		cfg.Clock.TimeStep = 50
		return cfg
	},
	"inner": func() *Config {
		cfg := DefaultConfig()
		cfg.Planets = cfg.Planets[:4]
		cfg.View.Zoom = 0.5
		cfg.Clock.TimeStep = 1
		return cfg
	},
}

// GetPreset returns a fresh copy, or nil for an unknown name.
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
