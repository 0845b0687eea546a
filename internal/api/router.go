// Package api serves progress reports and API merges over HTTP
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/spunky-sabin/clash-clone/internal/models"
)

// Server holds the HTTP server dependencies
type Server struct {
	catalog *models.Catalog
	router  chi.Router
	origins []string

	// clock and tick drive the live countdown stream
	clock func() time.Time
	tick  time.Duration
}

// New creates a new API server over a loaded catalog
func New(cat *models.Catalog, allowedOrigins []string) *Server {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:*"}
	}
	s := &Server{
		catalog: cat,
		router:  chi.NewRouter(),
		origins: allowedOrigins,
		clock:   time.Now,
		tick:    time.Second,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Compress(5))
			r.Use(middleware.AllowContentType("application/json"))
			r.Post("/analyze", s.handleAnalyze)
			r.Post("/merge", s.handleMerge)
		})

		// websocket upgrades cannot go through the compressor
		r.Get("/watch", s.handleWatch)
	})

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
