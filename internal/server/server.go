// Package server wires the application together: database, services,
// handlers, middleware, and routes. It is the composition root — every
// dependency is constructed here and main.go stays minimal.
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

	"github.com/sakif/movie-ratings/internal/auth"
	"github.com/sakif/movie-ratings/internal/config"
	"github.com/sakif/movie-ratings/internal/handler"
	"github.com/sakif/movie-ratings/internal/middleware"
	sqliteRepo "github.com/sakif/movie-ratings/internal/repository/sqlite"
	"github.com/sakif/movie-ratings/internal/service"
)

// Server holds the router and the resources it owns. The database
// connection is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain: database, password and token
// services, domain services, handlers, and routes. Each layer only
// receives what it needs — handlers never touch the database, services
// never touch HTTP.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
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

	if err := s.setup(); err != nil {
		db.Close()
		return nil, err
	}

	if cfg.SeedMovies {
		n, err := db.Movies().SeedMovies(context.Background())
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("seeding movies: %w", err)
		}
		if n > 0 {
			logger.Info("seeded starter movies", slog.Int("count", n))
		}
	}

	return s, nil
}

// Handler exposes the router, mainly for httptest in integration tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setup configures middleware and routes.
//
// Route structure:
//
//	GET  /                 → home page
//	GET  /register         → registration form
//	POST /register         → create an account
//	GET  /login            → login form
//	POST /login            → authenticate, set session cookie
//	GET  /logout           → clear session cookie
//	GET  /users            → user list
//	GET  /users/{userID}   → user detail with their ratings
//	GET  /movies           → movie list
//	GET  /movies/{movieID} → movie detail with scores and average
//	POST /add-rating       → submit or update the current user's rating
func (s *Server) setup() error {
	tokens, err := auth.NewTokenService(s.config.SessionSecret, s.config.SessionTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService(s.config.BcryptCost)

	renderer, err := handler.NewRenderer(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	accountSvc := service.NewAccountService(s.db.Users(), passwords, s.logger)
	catalogSvc := service.NewCatalogService(s.db.Users(), s.db.Movies(), s.db.Ratings(), s.logger)
	ratingSvc := service.NewRatingService(s.db.Movies(), s.db.Ratings(), s.logger)

	accountHandler := handler.NewAccountHandler(accountSvc, tokens, renderer, s.logger)
	catalogHandler := handler.NewCatalogHandler(catalogSvc, renderer, s.logger)
	ratingHandler := handler.NewRatingHandler(ratingSvc, renderer, s.logger)

	// Middleware order: request ID and real IP first so the logger sees
	// them, Recoverer before our handlers, then session resolution on
	// every route — pages render differently for logged-in viewers but
	// none of them require auth up front.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(auth.OptionalAuth(tokens))

	s.router.Get("/", catalogHandler.HandleHome)

	s.router.Get("/register", accountHandler.HandleRegisterForm)
	s.router.Post("/register", accountHandler.HandleRegister)
	s.router.Get("/login", accountHandler.HandleLoginForm)
	s.router.Post("/login", accountHandler.HandleLogin)
	s.router.Get("/logout", accountHandler.HandleLogout)

	s.router.Get("/users", catalogHandler.HandleUserList)
	s.router.Get("/users/{userID}", catalogHandler.HandleUserDetail)
	s.router.Get("/movies", catalogHandler.HandleMovieList)
	s.router.Get("/movies/{movieID}", catalogHandler.HandleMovieDetail)

	s.router.Post("/add-rating", ratingHandler.HandleSubmit)

	s.router.NotFound(renderer.RenderNotFound)

	return nil
}

// Start runs the HTTP server until a shutdown signal arrives, then drains
// in-flight requests and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Give in-flight requests time to complete before closing the DB.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
