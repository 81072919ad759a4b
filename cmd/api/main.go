package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mfadel/tripcollab/docs"
	"github.com/mfadel/tripcollab/internal/auth"
	"github.com/mfadel/tripcollab/internal/config"
	"github.com/mfadel/tripcollab/internal/database"
	"github.com/mfadel/tripcollab/internal/realtime"
	"github.com/mfadel/tripcollab/internal/trip"
	"github.com/mfadel/tripcollab/internal/user"
	mw "github.com/mfadel/tripcollab/pkg/middleware"
)

// @title        TripCollab API
// @version      1.0
// @description  Collaborative travel planning backend with realtime trip editing
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Not an error in containerized deployments
		os.Stderr.WriteString("no .env file found, using environment variables\n")
	}

	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	// Users live in Postgres
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	// Trips live in Mongo
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoDB, err := database.NewMongoConnection(ctx, cfg.MongoURI, cfg.MongoDB)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = mongoDB.Client().Disconnect(disconnectCtx)
	}()

	logger.Info().Msg("connected to databases")

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Auth feature
	authService := auth.NewService(userService, tokens)
	authHandler := auth.NewHandler(authService)

	// Realtime hub; the trip service publishes mutation events through it
	hub := realtime.NewHub(logger)

	// Trip feature
	tripRepo := trip.NewRepository(mongoDB)
	tripService := trip.NewService(tripRepo, hub)
	tripHandler := trip.NewHandler(tripService)

	wsHandler := realtime.NewHandler(hub, tokens, tripService, logger, nil)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(mw.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Connection-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/ws", wsHandler.ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())
		r.Get("/public/trips/{token}", tripHandler.ResolvePublic)

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(tokens))
			r.Get("/auth/me", authHandler.Me)
			r.Mount("/users", userHandler.Routes())
			r.Mount("/trips", tripHandler.Routes())
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-stop
	logger.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
		os.Exit(1)
	}
	logger.Info().Msg("server stopped")
}
