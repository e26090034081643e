package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/meejain/da-crawl/configs"
	"github.com/meejain/da-crawl/internal/analyzer"
	"github.com/meejain/da-crawl/internal/crawler"
	"github.com/meejain/da-crawl/internal/handler"
	"github.com/meejain/da-crawl/internal/middleware"
	"github.com/meejain/da-crawl/internal/repository"
	"github.com/meejain/da-crawl/internal/server"
	"github.com/meejain/da-crawl/internal/service"
	"github.com/meejain/da-crawl/internal/treeclient"
)

// hookable functions for dependency injection
var (
	LoadConfig = configs.Load
	NewDB      = repository.NewDB
	MigrateDB  = repository.Migrate
)

// Run loads config, opens the DB, runs migrations, starts the crawler
// pool, and serves the API until interrupted.
func Run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("config load error: %w", err)
	}

	db, err := NewDB(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}

	if err := MigrateDB(db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	// Repositories.
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	jobRepo := repository.NewCrawlJobRepo(db)
	reportRepo := repository.NewPageReportRepo(db)

	// Document store client and analyzer.
	client := treeclient.New(
		cfg.AdminBaseURL, cfg.AdminToken, cfg.UserAgent,
		treeclient.WithTimeout(cfg.CrawlTimeout),
	)
	anal := analyzer.New()

	// Crawler pool, stopped when the process receives an interrupt.
	pool := crawler.New(jobRepo, reportRepo, client, anal, 4, 128)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go pool.Start(ctx)

	// Services.
	userService := service.NewUserService(userRepo)
	tokenService := service.NewTokenService(userService, tokenRepo, cfg.JWTSecret, cfg.JWTLifetime)
	healthService := service.NewHealthService(db, "da-crawl")
	crawlService := service.NewCrawlService(jobRepo, reportRepo, pool, service.CrawlDefaults{
		RootPath:    cfg.RootPath,
		Concurrency: cfg.CrawlConcurrency,
	})

	// Handlers.
	authHandler := handler.NewAuthHandler(tokenService, userService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(healthService)
	crawlHandler := handler.NewCrawlHandler(crawlService)

	gin.SetMode(cfg.ServerMode)
	r := gin.New()
	server.RegisterRoutes(
		r,
		middleware.JWTAuthMiddleware(tokenService, userService),
		[]server.RouteRegistrar{
			healthHandler,
			server.RegistrarFunc(authHandler.RegisterPublicRoutes),
			server.RegistrarFunc(userHandler.RegisterPublicRoutes),
		},
		[]server.RouteRegistrar{
			server.RegistrarFunc(authHandler.RegisterProtectedRoutes),
			server.RegistrarFunc(userHandler.RegisterProtectedRoutes),
			server.RegistrarFunc(crawlHandler.RegisterProtectedRoutes),
		},
	)

	return r.Run(cfg.ServerHost + ":" + cfg.ServerPort)
}
