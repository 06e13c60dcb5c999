package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"campus-portal.backend/internal/config"
	"campus-portal.backend/internal/domain/repositories"
	"campus-portal.backend/internal/infrastructure/models"
	"campus-portal.backend/internal/infrastructure/notifications"
	"campus-portal.backend/internal/infrastructure/ratelimit"
	infrarepos "campus-portal.backend/internal/infrastructure/repositories"
	"campus-portal.backend/internal/interfaces/http/handlers"
	"campus-portal.backend/internal/interfaces/http/middleware"
	"campus-portal.backend/internal/usecases"
	"campus-portal.backend/pkg/logger"
	"campus-portal.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		if cfg.Driver == "postgres" {
			return gorm.Open(postgres.New(postgres.Config{
				DSN:                  cfg.URL(),
				PreferSimpleProtocol: true,
			}), &gorm.Config{})
		}
		return gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
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

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else {
		log.Printf("connected to %s database", cfg.Database.Driver)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Student{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Recovery cooldown is enforced through Redis when configured,
	// otherwise requests are always admitted.
	var limiter repositories.CooldownLimiter = ratelimit.NewNoopCooldown()
	if cfg.Redis.URL != "" {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		limiter = ratelimit.NewRedisCooldown(redis.GetClient(), "recovery")
		logger.Info(context.Background(), "Redis initialized, recovery cooldown enabled")
	}

	// Verification codes go out over SMTP when configured; without it
	// they are written to the log, which is enough for development.
	var sender repositories.CodeSender = notifications.NewLogSender()
	if cfg.SMTP.Host != "" {
		sender = notifications.NewSMTPSender(notifications.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
		logger.Info(context.Background(), "SMTP sender configured", zap.String("host", cfg.SMTP.Host))
	}

	// Initialize repositories
	userRepo := infrarepos.NewUserRepository(db)
	studentRepo := infrarepos.NewStudentRepository(db)
	uow := infrarepos.NewUnitOfWork(db)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, studentRepo, uow)
	recoveryUsecase := usecases.NewRecoveryUsecase(userRepo, sender, limiter, cfg.Recovery.TokenTTL, cfg.Recovery.SendCooldown)
	adminUsecase := usecases.NewAdminUsecase(userRepo, studentRepo, uow)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	recoveryHandler := handlers.NewRecoveryHandler(recoveryUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase)
	userHandler := handlers.NewUserHandler(authUsecase)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	registerAPIRoutes(r, routeDeps{
		authHandler:     authHandler,
		recoveryHandler: recoveryHandler,
		adminHandler:    adminHandler,
		userHandler:     userHandler,
		pingDB:          sqlDB.Ping,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		sqlDB.Close()
		os.Exit(0)
	}()

	log.Printf("Campus portal backend starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/api/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
