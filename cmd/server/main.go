package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"razzrel/docs"
	"razzrel/internal/auth"
	"razzrel/internal/cache"
	"razzrel/internal/config"
	"razzrel/internal/db"
	"razzrel/internal/events"
	"razzrel/internal/handler"
	"razzrel/internal/obs"
	"razzrel/internal/repository"
	"razzrel/internal/router"
	"razzrel/internal/service"
)

//go:generate swag init --dir ../../ --generalInfo cmd/server/main.go --output ../../docs --outputTypes go

// @title Razzrel Event Booking API
// @version 1.0
// @description Event booking API with JWT authentication, package catalog, booking workflow, notifications and a community feed.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description The token, optionally prefixed with "Bearer ".
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.SetLevel(parseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, "razzrel-api", cfg.Env, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("tracing init: %v", err)
	}

	gormDB, err := db.NewMySQL(ctx, cfg.MySQLDSN, db.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnectRetries:  cfg.DBConnectRetries,
		RetryBackoff:    cfg.DBRetryBackoff,
		LogSQL:          !cfg.IsProduction(),
	})
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	publisher := events.Connect(cfg.RabbitURL, cfg.BookingExchange)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient, jwtService, cfg.RoleCacheTTL)
	productService := service.NewProductService(productRepo, cacheClient)
	notificationService := service.NewNotificationService(notificationRepo)
	bookingService := service.NewBookingService(bookingRepo, productRepo, notificationService, publisher)
	postService := service.NewPostService(postRepo)

	guard := router.Guard{Verifier: jwtService, Revocations: tokenStore}
	if cfg.RecheckAdminRole {
		guard.Roles = userService
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, guard, router.Handlers{
		Auth:         handler.NewAuthHandler(authService, jwtService.TTL()),
		User:         handler.NewUserHandler(userService),
		Product:      handler.NewProductHandler(productService),
		Booking:      handler.NewBookingHandler(bookingService),
		Notification: handler.NewNotificationHandler(notificationService),
		Post:         handler.NewPostHandler(postService),
		Health: handler.NewHealthHandler(func(ctx context.Context) error {
			return db.Ping(ctx, gormDB)
		}),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	log.Infof("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown: %v", err)
	}
	if err := publisher.Close(); err != nil {
		log.Warnf("close publisher: %v", err)
	}
	if err := cacheClient.Close(); err != nil {
		log.Warnf("close cache: %v", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Warnf("tracer shutdown: %v", err)
	}
}

func parseLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
