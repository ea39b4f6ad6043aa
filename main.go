package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"property-verify/backend/internal/cache"
	"property-verify/backend/internal/config"
	"property-verify/backend/internal/handlers"
	"property-verify/backend/internal/middleware"
	"property-verify/backend/internal/monitoring"
	"property-verify/backend/internal/repositories"
	"property-verify/backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func setupRouter(cfg *config.Config, db *gorm.DB, cacheInstance *cache.RedisCache) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(monitoring.MetricsMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"*"}
	router.Use(cors.New(corsConfig))

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewIPRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.BurstSize,
			cfg.RateLimit.CleanupInterval,
		)
		router.Use(limiter.Middleware())
	}

	taskService := services.NewTaskService()
	walletService := services.NewWalletService(cacheInstance)
	seedService := services.NewSeedService()

	taskHandler := handlers.NewTaskHandler(db, taskService, walletService)
	userHandler := handlers.NewUserHandler(db, walletService)
	systemHandler := handlers.NewSystemHandler(db, seedService, cacheInstance)

	router.GET("/", systemHandler.Root)
	router.GET("/test", systemHandler.TestDatabase)
	router.GET("/metrics", monitoring.MetricsHandler())
	router.GET("/health", monitoring.HealthHandler())

	api := router.Group("/api")
	{
		api.GET("/hello", systemHandler.Hello)
		api.POST("/seed", systemHandler.Seed)
		api.POST("/tasks/assign", taskHandler.AssignTask)
		api.POST("/tasks/submit", taskHandler.SubmitTask)
		api.GET("/users/:email/wallet", userHandler.GetWallet)
	}

	return router
}

func main() {
	// Load .env if present without overwriting already-set variables.
	if envMap, err := godotenv.Read(); err == nil {
		for k, v := range envMap {
			if os.Getenv(k) == "" {
				os.Setenv(k, v)
			}
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := repositories.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := repositories.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var cacheInstance *cache.RedisCache
	if cfg.Cache.Enabled {
		cacheConfig := &cache.CacheConfig{
			Addr:         cfg.GetRedisAddr(),
			Password:     cfg.Cache.Password,
			DB:           cfg.Cache.DB,
			PoolSize:     cfg.Cache.PoolSize,
			MinIdleConns: cfg.Cache.MinIdleConns,
			MaxRetries:   cfg.Cache.MaxRetries,
			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,
		}
		cacheInstance = cache.NewRedisCache(cacheConfig)
		defer cacheInstance.Close()

		if err := cacheInstance.Health(); err != nil {
			log.Printf("cache unavailable, continuing without warm reads: %v", err)
		}
	}

	monitoring.RegisterHealthCheck("database", func(ctx context.Context) error {
		return repositories.Ping(db)
	})
	if cacheInstance != nil {
		monitoring.RegisterHealthCheck("cache", func(ctx context.Context) error {
			return cacheInstance.Health()
		})
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, db, cacheInstance)

	srv := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("listening on %s", cfg.GetServerAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("server exited")
}
