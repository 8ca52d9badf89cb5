package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"auto-diag.backend/internal/config"
	"auto-diag.backend/internal/infrastructure/models"
	"auto-diag.backend/internal/infrastructure/repositories"
	"auto-diag.backend/internal/interfaces/http/handlers"
	"auto-diag.backend/internal/interfaces/http/middleware"
	"auto-diag.backend/internal/usecases"
	"auto-diag.backend/pkg/jwt"
	"auto-diag.backend/pkg/logger"
	"auto-diag.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis; the key cache is optional and the gateway runs
	// against the database alone when it is unavailable
	var keyCache usecases.KeyCache
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Warn(context.Background(), "Redis unavailable, key cache disabled", zap.Error(err))
	} else {
		keyCache = redis.NewKeyCache(cfg.Redis.KeyCacheTTL)
		logger.Info(context.Background(), "Redis initialized")
	}

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
		if err := db.AutoMigrate(&models.ApiKey{}, &models.RateLimitRecord{}, &models.RequestLog{}); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	apiKeyRepo := repositories.NewApiKeyRepository(db)
	rateLimitRepo := repositories.NewRateLimitRepository(db)
	requestLogRepo := repositories.NewRequestLogRepository(db)

	// Initialize usecases
	apiKeyUsecase := usecases.NewApiKeyUsecase(apiKeyRepo, keyCache)
	rateLimiter := usecases.NewRateLimiterUsecase(rateLimitRepo, cfg.Gateway.RateLimitWindow)
	janitor := usecases.NewJanitorUsecase(rateLimitRepo, cfg.Gateway.JanitorRetention,
		usecases.ProbabilitySampler(cfg.Gateway.JanitorProbability))
	usageRecorder := usecases.NewUsageRecorderUsecase(requestLogRepo)
	diagnostics := usecases.NewDiagnosticsUsecase()
	authUsecase := usecases.NewAuthUsecase(cfg.Admin.Email, cfg.Admin.PasswordHash, jwtService)

	// Initialize handlers
	diagnosticsHandler := handlers.NewDiagnosticsHandler(diagnostics)
	authHandler := handlers.NewAuthHandler(authUsecase)
	apiKeyHandler := handlers.NewApiKeyHandler(apiKeyUsecase, usageRecorder)
	healthHandler := handlers.NewHealthHandler()

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	applyCORSMiddleware(r)
	registerHealthRoute(r, healthHandler)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		diagnosticsHandler: diagnosticsHandler,
		authHandler:        authHandler,
		apiKeyHandler:      apiKeyHandler,
		apiKeyAuth:         middleware.APIKeyAuth(apiKeyUsecase),
		rateLimit:          middleware.RateLimit(rateLimiter, janitor),
		recordUsage:        middleware.RecordUsage(usageRecorder),
		adminAuth:          middleware.JWTAuth(jwtService),
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Start server
	log.Printf("🚀 AutoDiag API starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
