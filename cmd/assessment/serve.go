package main

import (
	"fmt"

	"github.com/jonathan/assessment-engine/internal/server"
	"github.com/jonathan/assessment-engine/internal/server/ratelimit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes scoring, assignment, and result endpoints backed by PostgreSQL.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from PORT or 8080)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply the database schema before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	database, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	if serveMigrate {
		if err := database.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("schema applied")
	}

	port := servePort
	if port == 0 {
		port = appConfig.Port
	}

	srv, err := server.New(server.Config{
		Port:           port,
		CoreQuota:      appConfig.CoreQuota,
		ScoreCacheSize: appConfig.ScoreCacheSize,
		RateLimit:      ratelimit.LoadConfig(),
		Logger:         logger,
	}, database)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("serving", zap.Int("port", port), zap.Int("core_quota", appConfig.CoreQuota))
	return srv.Start()
}
