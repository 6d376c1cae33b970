package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-tailor/internal/server"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Run the customization REST API server",
	Long: `Starts an HTTP server exposing customization as async jobs
(POST /customize + GET /customizations/{id}) and synchronously
(POST /customize/sync). Jobs are stored in PostgreSQL or Redis when
configured, in memory otherwise.`,
	RunE: runServeCmd,
}

var (
	serveAddr     string
	serveDBURL    string
	serveRedisURL string
	serveAPIKey   string
	serveAuth     bool
)

func init() {
	serveCommand.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCommand.Flags().StringVar(&serveDBURL, "db-url", "", "PostgreSQL connection URL for job storage (default: DATABASE_URL)")
	serveCommand.Flags().StringVar(&serveRedisURL, "redis-url", "", "Redis URL for job storage (default: REDIS_URL)")
	serveCommand.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (default: GEMINI_API_KEY)")
	serveCommand.Flags().BoolVar(&serveAuth, "auth", false, "Require JWT authentication (needs JWT_SECRET)")

	rootCmd.AddCommand(serveCommand)
}

func runServeCmd(_ *cobra.Command, _ []string) error {
	apiKey := serveAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key required: set --api-key or GEMINI_API_KEY")
	}

	dbURL := serveDBURL
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	redisURL := serveRedisURL
	if redisURL == "" {
		redisURL = os.Getenv("REDIS_URL")
	}

	srv, err := server.New(context.Background(), server.Config{
		ListenAddr:  serveAddr,
		APIKey:      apiKey,
		DatabaseURL: dbURL,
		RedisURL:    redisURL,
		RequireAuth: serveAuth,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
