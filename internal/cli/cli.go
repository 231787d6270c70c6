//-------------------------------------------------------------------------
//
// Salestar Warehouse Builder
//
// Copyright (c) 2025 - 2026, the Salestar authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for salestar.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/salestar/salestar/internal/config"
	"github.com/salestar/salestar/internal/logging"
	"github.com/salestar/salestar/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "salestar",
		Short: "Sales star-schema warehouse builder and analyzer",
		Long: `salestar builds a star-schema sales warehouse in PostgreSQL from raw
transaction data and runs analytical rollups against it.

The typical workflow has three steps: 'generate' emits a synthetic raw
transaction CSV, 'build' transforms the CSV into dimension and fact
tables and loads them transactionally, and 'report' exports KPI,
monthly, regional, category and seasonality rollups as CSV tables,
flagging months whose revenue is statistically anomalous.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./salestar.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(reportCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
