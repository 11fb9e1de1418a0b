package config

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/agnivade/levenshtein"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

func withShells(inner, outer ShellConfig) *Config {
	c := DefaultConfig()
	c.Shells = []ShellConfig{inner, outer}
	return c
}

var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	"compact": withShells(
		ShellConfig{Shell: "inner", Radius: 56, Slots: 2},
		ShellConfig{Shell: "outer", Radius: 96, Slots: 6, StartAngle: math.Pi / 6},
	),
	"wide": withShells(
		ShellConfig{Shell: "inner", Radius: 90, Slots: 2, StartAngle: math.Pi / 2},
		ShellConfig{Shell: "outer", Radius: 160, Slots: 8},
	),
	"slow": func() *Config {
		c := DefaultConfig()
		c.Speed = 80
		c.RefocusDelayMs = 250
		return c
	}(),
	"instant": func() *Config {
		c := DefaultConfig()
		c.Speed = 5000
		c.RefocusDelayMs = 0
		return c
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns the closest preset name within a small edit distance.
func Suggest(name string) (string, bool) {
	best, bestDist := "", 3
	for _, candidate := range ListPresets() {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best, best != ""
}

func unknownPreset(name string) error {
	if s, ok := Suggest(name); ok {
		return fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownPreset, name, s)
	}
	return fmt.Errorf("%w %q", ErrUnknownPreset, name)
}
