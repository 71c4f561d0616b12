// Package server provides the HTTP REST API for the profile optimizer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/profile-optimizer/internal/logging"
	"github.com/jonathan/profile-optimizer/internal/optimizer"
	"github.com/jonathan/profile-optimizer/internal/session"
	"github.com/jonathan/profile-optimizer/internal/vision"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	session    *session.Session
	persister  *session.Persister
	store      session.Store
	optimizer  *optimizer.Optimizer
	analyzer   *vision.Analyzer
	handlers   *Handlers
}

// Config holds server configuration
type Config struct {
	Port           int
	Session        *session.Session
	Persister      *session.Persister
	Store          session.Store
	Optimizer      *optimizer.Optimizer
	Analyzer       *vision.Analyzer
	JobDescription string
}

// New creates a new server instance
func New(cfg Config) *Server {
	s := &Server{
		session:   cfg.Session,
		persister: cfg.Persister,
		store:     cfg.Store,
		optimizer: cfg.Optimizer,
		analyzer:  cfg.Analyzer,
	}
	s.handlers = NewHandlers(cfg.Session, cfg.Optimizer, cfg.Analyzer, cfg.JobDescription)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /session", s.handlers.GetSession)
	mux.HandleFunc("POST /session/section", s.handlers.SelectSection)
	mux.HandleFunc("POST /session/entry", s.handlers.SelectEntry)
	mux.HandleFunc("POST /session/mode", s.handlers.SetInputMode)
	mux.HandleFunc("POST /session/content", s.handlers.SetContent)

	mux.HandleFunc("POST /extract/text", s.handlers.ExtractText)
	mux.HandleFunc("POST /analyze/screenshot", s.handlers.AnalyzeScreenshot)

	mux.HandleFunc("POST /optimize", s.handlers.Optimize)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // AI calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.persister != nil {
		if err := s.persister.Flush(ctx); err != nil {
			slog.Error("final session flush failed", "error", err)
		}
	}
	if s.store != nil {
		s.store.Close()
	}

	slog.Info("server stopped")
	return nil
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging tags each request with an ID and logs it.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()[:8]
		ctx := logging.WithRequestID(r.Context(), requestID)

		start := time.Now()
		slog.Info("request started", "request_id", requestID, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
		slog.Info("request completed", "request_id", requestID, "method", r.Method, "path", r.URL.Path, "duration", time.Since(start).String())
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}
