// Package web serves a read-only preview of the extracted curriculum hours.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/curriculum/internal/config"
	"github.com/JonMunkholm/curriculum/internal/curriculum"
	"github.com/JonMunkholm/curriculum/internal/hours"
	weblog "github.com/JonMunkholm/curriculum/internal/web/middleware"
)

// Server is the HTTP preview server. The facts it serves are fixed at
// construction.
type Server struct {
	facts  []curriculum.Fact
	plan   map[string]int
	years  []int
	cfg    config.ServerConfig
	router *chi.Mux
	server *http.Server
}

// NewServer creates a Server over an extracted fact set.
func NewServer(facts []curriculum.Fact, cfg config.ServerConfig) *Server {
	s := &Server{
		facts:  facts,
		plan:   hours.Plan(hours.FromFacts(facts)),
		years:  yearsOf(facts),
		cfg:    cfg,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(weblog.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(securityHeaders)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/facts", s.handleFacts)
		r.Get("/plan", s.handlePlan)
	})
}

// Start begins listening for HTTP requests. It returns
// http.ErrServerClosed once Shutdown has been called, including when
// Shutdown ran before Start.
func (s *Server) Start() error {
	slog.Info("server starting", "addr", s.server.Addr, "facts", len(s.facts))
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func yearsOf(facts []curriculum.Fact) []int {
	seen := map[int]bool{}
	var years []int
	for _, f := range facts {
		if !seen[f.Year] {
			seen[f.Year] = true
			years = append(years, f.Year)
		}
	}
	sort.Ints(years)
	return years
}
