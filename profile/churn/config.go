package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type scenario struct {
	Entities int     `yaml:"entities"`
	Ticks    int     `yaml:"ticks"`
	Rounds   int     `yaml:"rounds"`
	Lifetime int     `yaml:"lifetime"`
	Speed    float64 `yaml:"speed"`
	Seed     uint64  `yaml:"seed"`
	Profile  string  `yaml:"profile"`
	Output   string  `yaml:"output"`
}

func defaultScenario() scenario {
	return scenario{
		Entities: 10000,
		Ticks:    600,
		Rounds:   3,
		Lifetime: 120,
		Speed:    0.15,
		Seed:     1,
		Profile:  "cpu",
		Output:   ".",
	}
}

// loadScenario overlays the YAML file at path onto the defaults. An empty
// path returns the defaults.
func loadScenario(path string) (scenario, error) {
	sc := defaultScenario()
	if path == "" {
		return sc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return sc, fmt.Errorf("read scenario: %w", err)
	}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return sc, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return sc, sc.validate()
}

func (sc scenario) validate() error {
	switch {
	case sc.Entities <= 0:
		return fmt.Errorf("entities must be positive, got %d", sc.Entities)
	case sc.Ticks <= 0:
		return fmt.Errorf("ticks must be positive, got %d", sc.Ticks)
	case sc.Rounds <= 0:
		return fmt.Errorf("rounds must be positive, got %d", sc.Rounds)
	case sc.Lifetime <= 0:
		return fmt.Errorf("lifetime must be positive, got %d", sc.Lifetime)
	}
	switch sc.Profile {
	case "cpu", "mem", "allocs", "none":
		return nil
	}
	return fmt.Errorf("unknown profile mode %q", sc.Profile)
}
