//-------------------------------------------------------------------------
//
// Salestar Warehouse Builder
//
// Copyright (c) 2025 - 2026, the Salestar authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for salestar.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for salestar.
type Config struct {
	// Connection is the PostgreSQL connection string for the warehouse.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`

	// Build holds configuration for the build subcommand.
	Build BuildConfig `mapstructure:"build"`

	// Report holds configuration for the report subcommand.
	Report ReportConfig `mapstructure:"report"`
}

// GenerateConfig holds configuration for synthetic transaction generation.
type GenerateConfig struct {
	// Output is the path of the raw transactions CSV to write.
	Output string `mapstructure:"output"`

	// StartDate is the first order date, inclusive (YYYY-MM-DD).
	StartDate string `mapstructure:"start_date"`

	// EndDate is the last order date, inclusive (YYYY-MM-DD).
	EndDate string `mapstructure:"end_date"`

	// Seed makes generation reproducible. The same non-zero seed and
	// date range always produce the same transaction set; zero picks a
	// random seed.
	Seed int64 `mapstructure:"seed"`
}

// BuildConfig holds configuration for the warehouse build.
type BuildConfig struct {
	// Input is the path of the raw transactions CSV to read.
	Input string `mapstructure:"input"`
}

// ReportConfig holds configuration for report generation.
type ReportConfig struct {
	// OutputDir is the directory where summary tables are written.
	OutputDir string `mapstructure:"output_dir"`

	// OutlierThreshold is the z-score magnitude at which a month is
	// flagged as a revenue outlier.
	OutlierThreshold float64 `mapstructure:"outlier_threshold"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Generate: GenerateConfig{
			Output:    "data/raw/sales_transactions.csv",
			StartDate: "2023-01-01",
			EndDate:   "2025-12-31",
			Seed:      42,
		},
		Build: BuildConfig{
			Input: "data/raw/sales_transactions.csv",
		},
		Report: ReportConfig{
			OutputDir:        "outputs/tables",
			OutlierThreshold: 2.0,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salestar.yaml
// 3. ~/.config/salestar/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("salestar")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salestar"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if c.Generate.Output == "" {
		return fmt.Errorf("output path is required for generate")
	}
	start, err := time.Parse("2006-01-02", c.Generate.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start_date %q: %w", c.Generate.StartDate, err)
	}
	end, err := time.Parse("2006-01-02", c.Generate.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end_date %q: %w", c.Generate.EndDate, err)
	}
	if end.Before(start) {
		return fmt.Errorf("end_date %s is before start_date %s",
			c.Generate.EndDate, c.Generate.StartDate)
	}
	return nil
}

// ValidateBuild checks configuration required for the build command.
func (c *Config) ValidateBuild() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Build.Input == "" {
		return fmt.Errorf("input path is required for build")
	}
	return nil
}

// ValidateReport checks configuration required for the report command.
func (c *Config) ValidateReport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Report.OutputDir == "" {
		return fmt.Errorf("output directory is required for report")
	}
	if c.Report.OutlierThreshold <= 0 {
		return fmt.Errorf("outlier_threshold must be positive")
	}
	return nil
}
