// Package server is the composition root of the dev API: it wires the store,
// services, handlers and middleware into one chi router and runs it with
// graceful shutdown.
//
//	sqlite.DB -> services -> handlers -> routes under /api
package server

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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/realspace/realspace/internal/auth"
	"github.com/realspace/realspace/internal/handler"
	"github.com/realspace/realspace/internal/middleware"
	"github.com/realspace/realspace/internal/repository"
	sqliteRepo "github.com/realspace/realspace/internal/repository/sqlite"
	"github.com/realspace/realspace/internal/service"
)

type Config struct {
	Port      int
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration
	// PasswordCost overrides the bcrypt cost when > 0. Tests use bcrypt.MinCost.
	PasswordCost int
}

// Server owns the router and the database connection, which Start closes on
// shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database at cfg.DBPath and wires every route.
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
	if err := s.setupRoutes(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

// Handler exposes the router, for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start calls it on shutdown.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes configures middleware and routes.
//
// MIDDLEWARE ORDER:
//  1. RequestID - reuses the client's X-Request-ID or makes one
//  2. RealIP    - client IP from X-Forwarded-For
//  3. Recoverer - a panic becomes a 500, not a dead process
//  4. Logger    - one line per request
//
// AUTH PER ROUTE GROUP:
//   - none:     auth/register, auth/login
//   - optional: public reads (topics, topic-posts' comments, entities, events,
//     users/{id}); a token personalises isLikedByCurrentUser
//   - required: everything else
func (s *Server) setupRoutes(store repository.Store) error {
	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return err
	}
	passwords := auth.NewPasswordService()
	if s.config.PasswordCost > 0 {
		passwords = auth.NewPasswordServiceForTest(s.config.PasswordCost)
	}

	authService := service.NewAuthService(store, tokens, passwords, s.logger)
	postService := service.NewPostService(store, s.logger)
	topicService := service.NewTopicService(store, s.logger)
	commentService := service.NewCommentService(store, s.logger)
	venueService := service.NewVenueService(store, s.logger)
	listService := service.NewListItemService(store, s.logger)

	authHandler := handler.NewAuthHandler(authService, postService, s.logger)
	postHandler := handler.NewPostHandler(postService, commentService, s.logger)
	topicHandler := handler.NewTopicHandler(topicService, commentService, s.logger)
	commentHandler := handler.NewCommentHandler(commentService, s.logger)
	venueHandler := handler.NewVenueHandler(venueService, s.logger)
	listHandler := handler.NewListHandler(listService, s.logger)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth(tokens))

			r.Get("/topics", topicHandler.HandleList)
			r.Get("/topics/{id}", topicHandler.HandleGet)
			r.Get("/topics/{id}/posts", topicHandler.HandleListPosts)
			r.Get("/topicposts/{id}/comments", topicHandler.HandleListComments)

			r.Get("/entities", venueHandler.HandleListEntities)
			r.Get("/entities/{id}", venueHandler.HandleGetEntity)
			r.Get("/events", venueHandler.HandleListEvents)
			r.Get("/events/{id}", venueHandler.HandleGetEvent)

			r.Get("/users/{id}", authHandler.HandleGetUser)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/auth/me", authHandler.HandleMe)
			r.Get("/users/{id}/posts", authHandler.HandleGetUserPosts)

			r.Get("/posts", postHandler.HandleList)
			r.Post("/posts", postHandler.HandleCreate)
			r.Get("/posts/{id}", postHandler.HandleGet)
			r.Put("/posts/{id}", postHandler.HandleUpdate)
			r.Delete("/posts/{id}", postHandler.HandleDelete)
			r.Post("/posts/{id}/like", postHandler.HandleLike)
			r.Delete("/posts/{id}/like", postHandler.HandleUnlike)
			r.Get("/posts/{id}/comments", postHandler.HandleListComments)
			r.Post("/posts/{id}/comments", postHandler.HandleCreateComment)

			r.Post("/topics", topicHandler.HandleCreate)
			r.Post("/topics/{id}/posts", topicHandler.HandleCreatePost)
			r.Get("/topicposts/{id}", topicHandler.HandleGetPost)
			r.Put("/topicposts/{id}", topicHandler.HandleUpdatePost)
			r.Delete("/topicposts/{id}", topicHandler.HandleDeletePost)
			r.Post("/topicposts/{id}/like", topicHandler.HandleLikePost)
			r.Delete("/topicposts/{id}/like", topicHandler.HandleUnlikePost)
			r.Post("/topicposts/{id}/comments", topicHandler.HandleCreateComment)

			r.Delete("/comments/{id}", commentHandler.HandleDelete)

			r.Post("/entities", venueHandler.HandleCreateEntity)
			r.Put("/entities/{id}", venueHandler.HandleUpdateEntity)
			r.Post("/events", venueHandler.HandleCreateEvent)
			r.Put("/events/{id}", venueHandler.HandleUpdateEvent)

			r.Get("/list", listHandler.HandleList)
			r.Post("/list", listHandler.HandleCreate)
			r.Delete("/list/{id}", listHandler.HandleDelete)
		})
	})

	return nil
}

// Start serves until SIGINT/SIGTERM, then drains in-flight requests for up to
// 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d/api", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}
	return nil
}
