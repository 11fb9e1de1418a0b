package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/san-kum/buildatom/internal/particle"
	"github.com/san-kum/buildatom/internal/placement"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("config: invalid value")

const (
	DefaultSpeed          = particle.DefaultSpeed
	DefaultRefocusDelayMs = 100
	DefaultTickMs         = 16
	DefaultDt             = 1.0 / 60
	DefaultDuration       = 5.0
	DefaultStock          = 10
)

type Config struct {
	Shells             []ShellConfig `yaml:"shells" mapstructure:"shells"`
	Speed              float64       `yaml:"speed" mapstructure:"speed"`
	ShellHoverScale    float64       `yaml:"shell_hover_scale" mapstructure:"shell_hover_scale"`
	SlotPlacementScale float64       `yaml:"slot_placement_scale" mapstructure:"slot_placement_scale"`
	RefocusDelayMs     int           `yaml:"refocus_delay_ms" mapstructure:"refocus_delay_ms"`
	TickMs             int           `yaml:"tick_ms" mapstructure:"tick_ms"`
	Dt                 float64       `yaml:"dt" mapstructure:"dt"`
	Duration           float64       `yaml:"duration" mapstructure:"duration"`
	Stock              StockConfig   `yaml:"stock" mapstructure:"stock"`
}

type ShellConfig struct {
	Shell      string  `yaml:"shell" mapstructure:"shell"`
	Radius     float64 `yaml:"radius" mapstructure:"radius"`
	Slots      int     `yaml:"slots" mapstructure:"slots"`
	StartAngle float64 `yaml:"start_angle" mapstructure:"start_angle"`
}

// StockConfig is how many particles each bucket starts with.
type StockConfig struct {
	Protons   int `yaml:"protons" mapstructure:"protons"`
	Neutrons  int `yaml:"neutrons" mapstructure:"neutrons"`
	Electrons int `yaml:"electrons" mapstructure:"electrons"`
}

func DefaultConfig() *Config {
	return &Config{
		Shells: []ShellConfig{
			{Shell: "inner", Radius: placement.ReferenceInnerRadius, Slots: 2},
			{Shell: "outer", Radius: placement.ReferenceOuterRadius, Slots: 6, StartAngle: math.Pi / 6},
		},
		Speed:              DefaultSpeed,
		ShellHoverScale:    placement.DefaultShellHoverScale,
		SlotPlacementScale: placement.DefaultSlotPlacementScale,
		RefocusDelayMs:     DefaultRefocusDelayMs,
		TickMs:             DefaultTickMs,
		Dt:                 DefaultDt,
		Duration:           DefaultDuration,
		Stock: StockConfig{
			Protons:   DefaultStock,
			Neutrons:  DefaultStock,
			Electrons: DefaultStock,
		},
	}
}

func Load(path string) (*Config, error) {
	return loadOver(path, DefaultConfig())
}

func loadOver(path string, cfg *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

func (c *Config) Clone() *Config {
	out := *c
	out.Shells = append([]ShellConfig(nil), c.Shells...)
	return &out
}

// Geometry converts the shell entries for placement.NewRegistry.
func (c *Config) Geometry() ([]placement.ShellGeometry, error) {
	out := make([]placement.ShellGeometry, 0, len(c.Shells))
	for _, s := range c.Shells {
		id, err := placement.ParseShell(s.Shell)
		if err != nil {
			return nil, err
		}
		out = append(out, placement.ShellGeometry{
			Shell:      id,
			Radius:     s.Radius,
			Slots:      s.Slots,
			StartAngle: s.StartAngle,
		})
	}
	return out, nil
}

func (c *Config) PlacementSettings() placement.Settings {
	return placement.Settings{
		ShellHoverScale:    c.ShellHoverScale,
		SlotPlacementScale: c.SlotPlacementScale,
		RefocusDelay:       c.RefocusDelay(),
	}
}

func (c *Config) RefocusDelay() time.Duration {
	return time.Duration(c.RefocusDelayMs) * time.Millisecond
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

func (c *Config) Validate() error {
	geo, err := c.Geometry()
	if err != nil {
		return err
	}
	if _, err := placement.NewRegistry(geo); err != nil {
		return err
	}

	checks := []struct {
		ok   bool
		name string
	}{
		{c.Speed > 0, "speed"},
		{c.ShellHoverScale > 0, "shell_hover_scale"},
		{c.SlotPlacementScale > 0, "slot_placement_scale"},
		{c.RefocusDelayMs >= 0, "refocus_delay_ms"},
		{c.TickMs > 0, "tick_ms"},
		{c.Dt > 0, "dt"},
		{c.Duration > 0, "duration"},
		{c.Stock.Protons >= 0 && c.Stock.Neutrons >= 0 && c.Stock.Electrons >= 0, "stock"},
	}
	for _, ch := range checks {
		if !ch.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, ch.name)
		}
	}
	return nil
}
