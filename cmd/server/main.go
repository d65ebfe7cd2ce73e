package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"specialties/internal/auth"
	"specialties/internal/cache"
	"specialties/internal/config"
	"specialties/internal/db"
	"specialties/internal/handler"
	"specialties/internal/logger"
	"specialties/internal/model"
	"specialties/internal/notify"
	"specialties/internal/panel"
	"specialties/internal/repository"
	"specialties/internal/router"
	"specialties/internal/service"
)

// @title Provider Specialties API
// @version 1.0
// @description Manage the service categories a provider offers, with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if cfg.ResetDB {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
		for _, table := range []interface{}{&model.Specialty{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Warn().Err(err).Msg("drop table (may not exist)")
			}
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	var toasts notify.Sink = notify.NewRedisSink(cacheClient, cfg.ToastTTL)
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, keeping toasts in memory")
		toasts = notify.NewMemory()
	}
	cancel()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	specialtyRepo := repository.NewSpecialtyRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	session := auth.NewSession(tokenStore, log.With().Str("component", "session").Logger())

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)

	policy := repository.UniquenessPolicy(cfg.Uniqueness)
	panels := panel.NewRegistry(panel.Deps{
		Stores: func(userID uuid.UUID) panel.Store {
			return repository.NewOwnerScope(specialtyRepo, userID, policy)
		},
		Notifiers: func(userID uuid.UUID) panel.Notifier {
			return notify.For(toasts, userID, log.Zerolog())
		},
		Session: session,
		Logger:  log.With().Str("component", "panel").Logger(),
	})

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, panels, cfg.AppEnv != "development")
	specialtyHandler := handler.NewSpecialtyHandler(panels, toasts)
	pageHandler := handler.NewPageHandler(authHandler, panels, toasts, log.Zerolog())

	// Register routes
	router.Register(e, cfg, log, session, authHandler, specialtyHandler, pageHandler)

	log.Info().Str("url", swaggerURL(cfg)).Msg("swagger documentation available")

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
