package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsroom/docs"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"newsroom/internal/auth"
	"newsroom/internal/cache"
	"newsroom/internal/config"
	"newsroom/internal/db"
	"newsroom/internal/handler"
	"newsroom/internal/model"
	"newsroom/internal/publisher"
	"newsroom/internal/repository"
	"newsroom/internal/router"
	"newsroom/internal/service"
)

// @title Newsroom API
// @version 1.0
// @description Scheduled news publishing API with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is not set; all authenticated requests will be rejected")
	}
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.News{},
	); err != nil {
		logger.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	newsRepo := repository.NewNewsRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	newsService := service.NewNewsService(newsRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	newsHandler := handler.NewNewsHandler(newsService)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, jwtService, authHandler, newsHandler)

	// Start the scheduled publisher alongside the HTTP server.
	pub := publisher.New(newsRepo, cacheClient, logger, cfg.PublishInterval)
	pub.Start(ctx)

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Infof("listening on %s", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	pub.Shutdown()

	logger.Info("bye")
}
