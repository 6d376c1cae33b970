// Package server provides the HTTP REST API for the profile tailor.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/profile-tailor/internal/config"
	"github.com/jonathan/profile-tailor/internal/jobstore"
	"github.com/jonathan/profile-tailor/internal/llm"
)

// shutdownTimeout bounds graceful shutdown
const shutdownTimeout = 10 * time.Second

// Config holds server configuration
type Config struct {
	ListenAddr  string
	APIKey      string
	DatabaseURL string
	RedisURL    string
	// Client overrides the default Gemini client when set
	Client llm.Client
	// RequireAuth enables JWT authentication on customization endpoints.
	// Requires JWT_SECRET in the environment.
	RequireAuth bool
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      jobstore.Store
	apiKey     string
	client     llm.Client
	jwtService *JWTService
	validate   *validator.Validate
}

// New creates a server with the job store backend implied by the config:
// PostgreSQL when a database URL is set, Redis when a Redis URL is set, and
// in-memory otherwise.
func New(ctx context.Context, cfg Config) (*Server, error) {
	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:    store,
		apiKey:   cfg.APIKey,
		client:   cfg.Client,
		validate: validator.New(),
	}

	if cfg.RequireAuth {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)
	}

	addr := cfg.ListenAddr
	if addr == "" {
		addr = ":8080"
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func newStore(ctx context.Context, cfg Config) (jobstore.Store, error) {
	switch {
	case cfg.DatabaseURL != "":
		return jobstore.NewPostgresStore(ctx, cfg.DatabaseURL)
	case cfg.RedisURL != "":
		return jobstore.NewRedisStore(ctx, cfg.RedisURL)
	default:
		return jobstore.NewMemoryStore(), nil
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /customize", s.requireAuth(s.handleCustomize))
	mux.HandleFunc("POST /customize/sync", s.requireAuth(s.handleCustomizeSync))
	mux.HandleFunc("GET /customizations/{id}", s.requireAuth(s.handleGetCustomization))
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
		log.Printf("Shutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return s.store.Close()
}
