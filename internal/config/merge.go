package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyStorage     = "storage"
	keyHistory     = "history"
	keyDisplay     = "display"
	keyCalculation = "calculation"
	keyLogging     = "logging"
	keyTelemetry   = "telemetry"
)

// ShallowMergeYAML loads a YAML file and merges its top-level sections onto
// target. A section present in the overlay replaces the whole section in
// target; absent sections are left unchanged. Unknown keys are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = unmarshalSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes node into a fresh zero value of the section type
// and assigns it, so the overlay section fully replaces the target's.
func unmarshalSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyStorage:
		var v StorageConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Storage = v
	case keyHistory:
		var v HistoryConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.History = v
	case keyDisplay:
		var v DisplayConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Display = v
	case keyCalculation:
		var v CalculationConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Calculation = v
	case keyLogging:
		var v LoggingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyTelemetry:
		var v TelemetryConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Telemetry = v
	}
	return nil
}
