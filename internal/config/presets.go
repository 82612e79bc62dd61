package config

import "sort"

// Presets adjust DefaultConfig for the two ways the model is usually run.
var Presets = map[string]func(*Config){
	// web mirrors the interactive form: 50 samples, a small seeded jitter
	// on the initial state, restrictions raised instead of rejected.
	"web": func(c *Config) {
		c.Samples = 50
		c.Scenario.Jitter = 0.05
		c.Scenario.Policy = "autocorrect"
	},
	// batch mirrors offline runs: 100 samples, strict validation and the
	// trajectory floored at 1e-3 before display.
	"batch": func(c *Config) {
		c.Samples = 100
		c.Scenario.Policy = "strict"
		c.Display.Floor = 1e-3
	},
	"canonical": func(c *Config) {
		c.Scenario.Mode = "fixed"
	},
	"random": func(c *Config) {
		c.Scenario.Mode = "random"
		c.Scenario.Seed = 1
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
