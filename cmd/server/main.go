package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhub/user-portal/internal/api"
	"github.com/userhub/user-portal/internal/core/domain"
	"github.com/userhub/user-portal/internal/core/service"
	"github.com/userhub/user-portal/internal/infrastructure/config"
	"github.com/userhub/user-portal/internal/infrastructure/db/sqlite"
	"github.com/userhub/user-portal/pkg/logger"
)

const tokenTTL = 24 * time.Hour

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := sqlite.Open(sqlite.Config{Path: cfg.SQLite.Path, Reset: cfg.SQLite.Reset})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open sqlite store")
	}
	defer db.Close()

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	// Resolved once: with no secrets configured each call would mint a new
	// random key.
	jwtKey := cfg.JWTKey()
	sessionKey := cfg.SessionKey()

	userRepo := sqlite.NewUserRepository(db)
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, jwtKey, tokenTTL)

	seed(userService, cfg, log)

	e, err := api.NewRouter(api.RouterDeps{
		UserService: userService,
		AuthService: authService,
		Store:       db,
		SessionKey:  sessionKey,
		JWTSecret:   jwtKey,
		Logger:      log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// seed inserts the example user so the portal is usable out of the box.
// When the store is not reset on start the user may already exist; that is
// not an error.
func seed(users *service.UserService, cfg *config.Config, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := users.Create(ctx, cfg.Seed.Username, cfg.Seed.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return
		}
		log.Fatal().Err(err).Msg("failed to seed user")
	}
	log.Info().Uint("id", user.ID).Str("username", user.Username).Msg("seeded user")
}
