// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads explorer configuration from a YAML file with
// environment-variable overrides. Precedence, lowest to highest:
// defaults, config file, environment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variable names recognized by ApplyEnv.
const (
	EnvListenAddr  = "TITANIC_ADDR"
	EnvDatasetPath = "TITANIC_DATASET"
	EnvLogLevel    = "TITANIC_LOG_LEVEL"
	EnvLogDir      = "TITANIC_LOG_DIR"
	EnvUIDir       = "TITANIC_UI_DIR"
)

// Config holds the runtime configuration for the explorer service.
type Config struct {
	// ListenAddr is the HTTP bind address, e.g. ":8501".
	ListenAddr string `yaml:"listen_addr"`

	// DatasetPath is the gzipped CSV file holding the passenger manifest.
	DatasetPath string `yaml:"dataset_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogDir enables JSON file logging when set.
	LogDir string `yaml:"log_dir"`

	// UIDir is the directory served at /ui.
	UIDir string `yaml:"ui_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenAddr:  ":8501",
		DatasetPath: "data/titanic.csv.gz",
		LogLevel:    "info",
		UIDir:       "ui",
	}
}

// Load reads YAML configuration from path, layered over Default and
// under environment overrides. A missing file is not an error; the
// defaults apply. A malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnv()
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides fields from the TITANIC_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvListenAddr); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv(EnvDatasetPath); v != "" {
		c.DatasetPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogDir); v != "" {
		c.LogDir = v
	}
	if v := os.Getenv(EnvUIDir); v != "" {
		c.UIDir = v
	}
}
