// Package server wires the router, middleware and handlers of the reference
// server, and owns startup and graceful shutdown. main.go stays minimal: it
// builds a Config and calls Start.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"descgen/internal/generator"
	"descgen/internal/handler"
	"descgen/internal/middleware"
	sqliteRepo "descgen/internal/repository/sqlite"
	"descgen/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port        int
	DBPath      string
	OllamaURL   string
	OllamaModel string
}

// Server owns the router and the resources behind it. The database connection
// is closed during shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain: database, generation backend,
// services, handlers, routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes(generator.NewOllama(cfg.OllamaURL, cfg.OllamaModel))
	return s, nil
}

func (s *Server) setupRoutes(gen generator.Generator) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	generation := service.NewGenerationService(s.db.Descriptions, s.db.Corrections, s.db.Saved, s.db.Prompts, gen, s.logger)
	library := service.NewLibraryService(s.db.Saved, s.logger)
	corrections := service.NewCorrectionService(s.db.Corrections, s.logger)
	prompts := service.NewPromptService(s.db.Prompts, s.logger)
	learning := service.NewLearningService(s.db.Descriptions, s.db.Saved, s.db.Corrections)

	descriptionHandler := handler.NewDescriptionHandler(generation, s.logger)
	savedHandler := handler.NewSavedHandler(library, s.logger)
	correctionHandler := handler.NewCorrectionHandler(corrections, s.logger)
	exampleHandler := handler.NewExampleHandler(library, s.logger)
	promptHandler := handler.NewPromptHandler(prompts, s.logger)
	learningHandler := handler.NewLearningHandler(learning, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/descriptions", func(r chi.Router) {
			r.Post("/generate", descriptionHandler.HandleGenerate)
			r.Get("/{id}", descriptionHandler.HandleGet)
		})

		r.Route("/saved-descriptions", func(r chi.Router) {
			r.Post("/save", savedHandler.HandleSave)
			r.Post("/suggest-metadata", savedHandler.HandleSuggestMetadata)
			r.Get("/list", savedHandler.HandleList)
			r.Get("/{id}", savedHandler.HandleGet)
			r.Post("/{id}/toggle-active", savedHandler.HandleToggleActive)
			r.Delete("/{id}", savedHandler.HandleDelete)
		})

		r.Route("/corrections", func(r chi.Router) {
			r.Post("/submit", correctionHandler.HandleSubmit)
			r.Get("/list", correctionHandler.HandleList)
			r.Post("/{id}/apply", correctionHandler.HandleApply)
		})

		r.Route("/examples", func(r chi.Router) {
			r.Post("/add", exampleHandler.HandleAdd)
			r.Get("/list", exampleHandler.HandleList)
			r.Get("/public", exampleHandler.HandlePublic)
			r.Put("/{id}", exampleHandler.HandleUpdate)
			r.Delete("/{id}", exampleHandler.HandleDelete)
		})

		r.Route("/prompts", func(r chi.Router) {
			r.Get("/list", promptHandler.HandleList)
			r.Post("/add", promptHandler.HandleAdd)
			r.Put("/{id}", promptHandler.HandleUpdate)
			r.Delete("/{id}", promptHandler.HandleDelete)
			r.Post("/activate/{id}", promptHandler.HandleActivate)
			r.Get("/active/{type}", promptHandler.HandleActive)
		})

		r.Route("/learning-data", func(r chi.Router) {
			r.Get("/dashboard", learningHandler.HandleDashboard)
			r.Get("/stats", learningHandler.HandleStats)
		})
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests, close
// the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.router,
		// Generation requests can take a while on a cold model.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.Int("port", s.config.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		s.logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
