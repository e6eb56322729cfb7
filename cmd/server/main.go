package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"support-portal/internal/api"
	"support-portal/internal/auth"
	"support-portal/internal/config"
	"support-portal/internal/content"
	"support-portal/internal/dashboard"
	"support-portal/internal/db"
	"support-portal/internal/i18n"
	"support-portal/internal/logging"
	"support-portal/internal/middleware"
	"support-portal/internal/page"
	"support-portal/internal/session"
	"support-portal/internal/user"
	"support-portal/internal/validation"
	"support-portal/internal/worker"
	"support-portal/redis"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	config.LoadConfig()
	cfg := config.AppConfig

	logger, err := logging.New(logging.ConfigFor(cfg.Environment, cfg.LogLevel))
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := validation.RegisterGin(); err != nil {
		logger.Fatal("Failed to register validators", zap.Error(err))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool := worker.NewWorkerPool(cfg.WorkerCount, 16, logger)

	// Session storage
	storage, closeStorage, err := openStorage(ctx, cfg, pool, logger)
	if err != nil {
		logger.Fatal("Failed to open session storage", zap.Error(err), zap.String("backend", cfg.SessionBackend))
	}
	defer closeStorage()

	messages := i18n.Get(i18n.ParseLanguage(cfg.Language))
	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	store := session.NewStore(storage, logger)

	// Initialize services
	authManager := auth.NewManager(auth.ManagerConfig{
		Store:         store,
		Authenticator: client,
		Issuer:        auth.NewIssuer(cfg.JWTSecret, cfg.SessionTTL),
		Messages:      messages,
		CookieName:    cfg.SessionCookie,
		CookieTTL:     cfg.SessionTTL,
		SecureCookie:  cfg.IsProduction(),
		Logger:        logger,
	})
	contentService := content.NewService(client, messages, logger)
	userService := user.NewService(client, messages, logger)
	dashboardService := dashboard.NewService(client, messages, logger)

	// Initialize handlers
	authHandler := auth.NewHandler()
	contentHandler := content.NewHandler(contentService, messages)
	userHandler := user.NewHandler(userService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	pageHandler := page.NewHandler(contentService, dashboardService, userService, messages)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// cors setting
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.IsProduction() {
		corsConfig.AllowOrigins = []string{cfg.FrontendAddress}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(
		cors.New(corsConfig),
		middleware.AccessLog(logger),
		middleware.ErrorHandler(logger),
		middleware.Recovery(logger),
		authManager.Middleware(),
	)

	apiGroup := router.Group("/api")
	authHandler.RegisterRoutes(apiGroup.Group("/auth"))

	private := apiGroup.Group("", auth.RequireAuthenticated())
	contentHandler.RegisterRoutes(private.Group("/content"))
	userHandler.RegisterRoutes(private.Group("/users"))
	private.GET("/dashboard", dashboardHandler.Show)

	pageHandler.RegisterRoutes(router)

	// Server configuration
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Server listening", zap.String("port", cfg.ServerPort), zap.String("api", client.BaseURL()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
	pool.Shutdown(shutdownCtx)

	logger.Info("Server shutdown complete")
}

// openStorage connects the configured session backend. The postgres backend
// also migrates its table and schedules purging of expired rows.
func openStorage(ctx context.Context, cfg config.Config, pool *worker.WorkerPool, logger *zap.Logger) (session.Storage, func(), error) {
	switch cfg.SessionBackend {
	case "postgres":
		gdb, err := db.Connect(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(gdb); err != nil {
			db.Close(gdb, logger)
			return nil, nil, err
		}
		storage := session.NewGormStorage(gdb, cfg.SessionTTL)
		session.SchedulePurge(ctx, pool, storage, cfg.SessionPurgeInterval, logger)
		return storage, func() { db.Close(gdb, logger) }, nil

	case "redis", "":
		client, err := redis.Connect(ctx, cfg.RedisAddress, logger)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStorage(client, cfg.SessionTTL), func() { client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}
