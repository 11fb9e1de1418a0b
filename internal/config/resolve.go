package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"speed":         "speed",
	"hover-scale":   "shell_hover_scale",
	"slot-scale":    "slot_placement_scale",
	"refocus-delay": "refocus_delay_ms",
	"tick":          "tick_ms",
	"dt":            "dt",
	"duration":      "duration",
	"protons":       "stock.protons",
	"neutrons":      "stock.neutrons",
	"electrons":     "stock.electrons",
}

// Resolve builds the effective config. Precedence, lowest first: defaults or
// the named preset, the YAML file at path, BUILDATOM_* environment variables,
// then flags the user actually set.
func Resolve(path, preset string, flags *pflag.FlagSet) (*Config, error) {
	cfg := DefaultConfig()
	if preset != "" {
		if cfg = GetPreset(preset); cfg == nil {
			return nil, unknownPreset(preset)
		}
	}
	if path != "" {
		var err error
		if cfg, err = loadOver(path, cfg); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetEnvPrefix("BUILDATOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("speed", cfg.Speed)
	v.SetDefault("shell_hover_scale", cfg.ShellHoverScale)
	v.SetDefault("slot_placement_scale", cfg.SlotPlacementScale)
	v.SetDefault("refocus_delay_ms", cfg.RefocusDelayMs)
	v.SetDefault("tick_ms", cfg.TickMs)
	v.SetDefault("dt", cfg.Dt)
	v.SetDefault("duration", cfg.Duration)
	v.SetDefault("stock.protons", cfg.Stock.Protons)
	v.SetDefault("stock.neutrons", cfg.Stock.Neutrons)
	v.SetDefault("stock.electrons", cfg.Stock.Electrons)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg.Speed = v.GetFloat64("speed")
	cfg.ShellHoverScale = v.GetFloat64("shell_hover_scale")
	cfg.SlotPlacementScale = v.GetFloat64("slot_placement_scale")
	cfg.RefocusDelayMs = v.GetInt("refocus_delay_ms")
	cfg.TickMs = v.GetInt("tick_ms")
	cfg.Dt = v.GetFloat64("dt")
	cfg.Duration = v.GetFloat64("duration")
	cfg.Stock.Protons = v.GetInt("stock.protons")
	cfg.Stock.Neutrons = v.GetInt("stock.neutrons")
	cfg.Stock.Electrons = v.GetInt("stock.electrons")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
