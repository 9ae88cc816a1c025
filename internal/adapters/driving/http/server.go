package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OrtizDiego/versewise/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	logger     *slog.Logger

	// Services
	authService      driving.AuthService
	assistantService driving.AssistantService
	bibleService     driving.BibleService
	settingsService  driving.SettingsService

	// Infrastructure
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Version:        "dev",
		AllowedOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	assistantService driving.AssistantService,
	bibleService driving.BibleService,
	settingsService driving.SettingsService,
	db Pinger,
	redisClient Pinger, // can be nil
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router:           http.NewServeMux(),
		version:          cfg.Version,
		logger:           logger,
		authService:      authService,
		assistantService: assistantService,
		bibleService:     bibleService,
		settingsService:  settingsService,
		db:               db,
		redisClient:      redisClient,
	}

	s.setupRoutes()

	// Outermost first: recovery catches panics from everything below,
	// CORS answers preflights before they hit logging or routing.
	handler := NewLoggingMiddleware(logger).Handler(s.router)
	handler = NewCORSMiddleware(cfg.AllowedOrigins).Handler(handler)
	handler = NewRecoveryMiddleware(logger).Handler(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Create middleware
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	s.router.HandleFunc("POST /api/v1/auth/refresh", s.handleRefresh)

	// Setup endpoint (public, one-time use)
	s.router.HandleFunc("POST /api/v1/setup", s.handleSetup)

	// Auth endpoints (authenticated)
	s.router.Handle("POST /api/v1/auth/logout",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogout)))
	s.router.Handle("GET /api/v1/me",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetMe)))

	// Assistant endpoints (authenticated)
	s.router.Handle("POST /api/v1/assistant/question",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleAskQuestion)))
	s.router.Handle("POST /api/v1/assistant/interpret",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleInterpretVerse)))
	s.router.Handle("POST /api/v1/assistant/passages",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSearchPassages)))

	// Bible endpoints (authenticated)
	s.router.Handle("GET /api/v1/bible/books",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListBooks)))
	s.router.Handle("GET /api/v1/bible/translations",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListTranslations)))
	s.router.Handle("GET /api/v1/bible/{book}/chapters",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListChapters)))
	s.router.Handle("GET /api/v1/bible/{book}/{chapter}/verses",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetVerses)))
	s.router.Handle("GET /api/v1/bible/{book}/{chapter}/greek",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetGreekVerses)))
	s.router.Handle("GET /api/v1/bible/{book}/{chapter}/hebrew",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetHebrewVerses)))

	// Lexicon endpoint (authenticated)
	s.router.Handle("GET /api/v1/lexicon/{word}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDefineWord)))

	// AI settings endpoints (admin-only for mutations)
	s.router.Handle("GET /api/v1/settings/ai",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleGetAISettings))))
	s.router.Handle("PUT /api/v1/settings/ai",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleUpdateAISettings))))
	s.router.Handle("GET /api/v1/settings/ai/status",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetAIStatus)))
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
