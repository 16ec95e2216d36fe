// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads the Blueprint CLI configuration file.
package config

// BlueprintConfig is the on-disk CLI configuration. Flags override every
// field.
type BlueprintConfig struct {
	// Model holds model loading settings.
	Model ModelConfig `yaml:"model"`

	// Output holds rendering settings.
	Output OutputConfig `yaml:"output"`

	// Logging holds logger settings.
	Logging LoggingConfig `yaml:"logging"`

	// Telemetry enables OpenTelemetry stdout exporters.
	Telemetry bool `yaml:"telemetry"`
}

// ModelConfig locates the model and its reference catalog.
type ModelConfig struct {
	// Dir is the model directory holding element YAML files.
	Dir string `yaml:"dir"`

	// CatalogPath is the reference definition catalog file. Empty means
	// no catalog: extraction uses the heuristic scan only.
	CatalogPath string `yaml:"catalogPath"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	// Format is one of "text", "json" or "yaml".
	Format string `yaml:"format"`

	// NoColor disables ANSI color even on a terminal.
	NoColor bool `yaml:"noColor"`
}

// LoggingConfig controls the CLI logger.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`

	// Dir enables JSON file logging when set.
	Dir string `yaml:"dir"`
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() BlueprintConfig {
	return BlueprintConfig{
		Model: ModelConfig{
			Dir: ".",
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
