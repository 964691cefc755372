// Package httpapi is the presentation surface: a JSON API serving the
// autocomplete box, the insights payload, and the operational endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fieldsense/location-insights/internal/domain"
	"github.com/fieldsense/location-insights/internal/insights"
)

// InsightsAPI is the service surface the handlers need.
type InsightsAPI interface {
	Autocomplete(ctx context.Context, text, sessionToken string) ([]domain.PlaceCandidate, error)
	Lookup(ctx context.Context, placeID, sessionToken string) (insights.Insights, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the insights API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	api        InsightsAPI
	logger     *slog.Logger
}

// NewServer builds the router and wraps it in an http.Server.
func NewServer(addr string, corsOrigins []string, api InsightsAPI, logger *slog.Logger) *Server {
	s := &Server{
		api:    api,
		logger: logger,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", s.handleHealth)
	router.Get("/readyz", s.handleReady)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Post("/session", s.handleSession)
		r.Get("/places", s.handlePlaces)
		r.Get("/insights", s.handleInsights)
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 70 * time.Second, // above the middleware timeout; upstream calls can be slow
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.api.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleSession issues a fresh autocomplete session token. One token per
// page visit; the client sends it back on /api/places and /api/insights.
func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"token": uuid.NewString()})
}

func (s *Server) handlePlaces(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	session := r.URL.Query().Get("session")

	candidates, err := s.api.Autocomplete(r.Context(), query, session)
	if err != nil {
		s.logger.Error("autocomplete failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "address lookup failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"candidates": candidates})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	placeID := r.URL.Query().Get("place_id")
	session := r.URL.Query().Get("session")
	if placeID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "place_id is required"})
		return
	}

	result, err := s.api.Lookup(r.Context(), placeID, session)
	if err != nil {
		s.logger.Error("insight lookup failed", "place_id", placeID, "error", err)
		if errors.Is(err, insights.ErrMalformedRecord) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "events data contract violation"})
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "insight lookup failed"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
