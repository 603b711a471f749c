package game

import (
	"fmt"
	"os"

	"golf/meta"

	"gopkg.in/yaml.v3"
)

func NewStandardRules() Rules {
	return Rules{
		MinPutterDist: meta.MinPutterDist,
		ExtraRoll:     meta.ExtraRoll,
		MaxDist:       meta.MaxDist,
		TargetRadius:  meta.TargetRadius,
	}
}

// LoadRules reads a YAML file over the standard rules, so a file only needs
// the constants it changes.
func LoadRules(path string) (Rules, error) {
	rules := NewStandardRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("failed to read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	if err := rules.Validate(); err != nil {
		return rules, err
	}
	return rules, nil
}
