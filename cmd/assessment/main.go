// Package main provides the entry point for the assessment engine CLI and HTTP API server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/assessment-engine/internal/config"
	"github.com/jonathan/assessment-engine/internal/db"
	"github.com/jonathan/assessment-engine/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	// Resolved in PersistentPreRunE
	appConfig = config.Defaults()
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "assessment",
	Short: "Assessment scoring and profile-inference engine",
	Long: `Scores personality-assessment answer sets, infers dimension profiles and
tension pairs, and assigns participants to taxonomies in balanced fashion.

Configuration is layered: --config file over environment (DATABASE_URL, PORT,
CORE_QUOTA, SCORE_CACHE_SIZE, LOG_LEVEL, LOG_FORMAT) over built-in defaults.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Resolve(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if logFormat != "" {
			cfg.LogFormat = logFormat
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		l, err := logging.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		appConfig = cfg
		logger = l
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: json or console (overrides LOG_FORMAT)")
}

// connectDB opens the configured database
func connectDB(ctx context.Context) (*db.DB, error) {
	if appConfig.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	database, err := db.Connect(ctx, appConfig.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return database, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
