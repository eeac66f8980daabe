package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/markdave123-py/delulu-meter/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/delulu-meter/internal/api/middlewares"
	"github.com/markdave123-py/delulu-meter/internal/config"
	"github.com/markdave123-py/delulu-meter/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewRouter builds the chi router with every route wired.
func NewRouter(cfg *config.Config, svc *services.AnalysisService, stats handlers.StatsProvider) http.Handler {
	analysisHandler := handlers.NewAnalysisHandler(svc)
	healthHandler := handlers.NewHealthHandler(stats)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CorsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// Uploads have no request deadline: a sync analysis runs until MaxLines
	// are processed or the client goes away.
	upload := r.With(appMiddleware.UploadLimit(cfg.MaxUploadBytes()))
	upload.Post("/analyze-chat", analysisHandler.AnalyzeChat)
	upload.Post("/api/analyze-chat", analysisHandler.AnalyzeChat)

	r.Group(func(quick chi.Router) {
		quick.Use(middleware.Timeout(60 * time.Second))
		quick.Get("/ping", healthHandler.Ping)
		quick.Get("/api/jobs/{id}", analysisHandler.GetJob)
		quick.Get("/api/stats", healthHandler.Stats)
	})

	return r
}

// NewServer wraps the router in an http.Server bound to cfg.Port.
func NewServer(cfg *config.Config, handler http.Handler) *Server {
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
