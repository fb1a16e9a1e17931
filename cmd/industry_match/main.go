// Package main provides the industry_match CLI and HTTP API server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/industry-match/internal/config"
	"github.com/jonathan/industry-match/internal/db"
	"github.com/jonathan/industry-match/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "industry_match",
	Short:         "Industry experience matching engine",
	Long:          "industry_match normalizes industry tags, derives a candidate's years of experience per industry from work history, and scores jobs against that experience.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	logJSON    bool
	debug      bool
	outputJSON bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Print results as JSON")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings reads the optional config file and fills defaults. Flags win over the file.
func loadSettings() (config.Config, error) {
	fileCfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		fileCfg = loaded
	}

	cfg := fileCfg.MergeWithDefaults(config.Config{})
	cfg.LogJSON = cfg.LogJSON || logJSON
	cfg.Debug = cfg.Debug || debug
	return cfg, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

func openDB(ctx context.Context, cfg config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return db.Connect(ctx, cfg.DatabaseURL)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
