package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/hanyustudent/backend/docs"
	"github.com/hanyustudent/backend/internal/auth"
	"github.com/hanyustudent/backend/internal/clients/tts"
	"github.com/hanyustudent/backend/internal/config"
	"github.com/hanyustudent/backend/internal/handlers"
	"github.com/hanyustudent/backend/internal/logger"
	"github.com/hanyustudent/backend/internal/middlewares"
	"github.com/hanyustudent/backend/internal/repositories"
	"github.com/hanyustudent/backend/internal/services"
)

// @title HanyuStudent API
// @version 1.0
// @description API for Chinese vocabulary learning: progress, tests, mistakes, and daily challenges

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting HanyuStudent API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := auth.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	vocabRepo := repositories.NewVocabularyRepository(db)
	progressRepo := repositories.NewProgressRepository(db)
	sessionRepo := repositories.NewSessionProgressRepository(db)
	activityRepo := repositories.NewActivityLogRepository(db)
	mistakeRepo := repositories.NewMistakeRepository(db)
	testRepo := repositories.NewTestSessionRepository(db)
	speedRepo := repositories.NewSpeedChallengeRepository(db)
	completionRepo := repositories.NewChallengeCompletionRepository(db)

	// Initialize TTS client for listening audio
	ttsClient := tts.NewClient(cfg.TTS.BaseURL, cfg.TTS.Timeout)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenGenerator)
	progressService := services.NewProgressService(progressRepo, vocabRepo, sessionRepo, activityRepo, testRepo)
	sessionService := services.NewSessionService(sessionRepo, vocabRepo)
	statsService := services.NewStatsService(activityRepo, progressRepo, vocabRepo, testRepo)
	mistakeService := services.NewMistakeService(mistakeRepo, vocabRepo)
	challengeService := services.NewChallengeService(completionRepo)
	speedService := services.NewSpeedChallengeService(speedRepo, progressRepo, vocabRepo)
	testService := services.NewTestService(progressService, mistakeService, mistakeService, testRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger.Logger)
	vocabHandler := handlers.NewVocabularyHandler(progressService, vocabRepo, ttsClient, logger.Logger)
	sessionHandler := handlers.NewSessionProgressHandler(sessionService, logger.Logger)
	statsHandler := handlers.NewStatsHandler(statsService, logger.Logger)
	mistakeHandler := handlers.NewMistakeHandler(mistakeService, logger.Logger)
	challengeHandler := handlers.NewChallengeHandler(challengeService, logger.Logger)
	speedHandler := handlers.NewSpeedChallengeHandler(speedService, logger.Logger)
	testHandler := handlers.NewTestHandler(testService, logger.Logger)

	// Initialize auth middleware
	authMiddleware := auth.Middleware(tokenGenerator)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(10 * 1024 * 1024)) // 10MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authMiddleware)
		vocabHandler.RegisterRoutes(r, authMiddleware)
		sessionHandler.RegisterRoutes(r, authMiddleware)
		statsHandler.RegisterRoutes(r, authMiddleware)
		mistakeHandler.RegisterRoutes(r, authMiddleware)
		challengeHandler.RegisterRoutes(r, authMiddleware)
		speedHandler.RegisterRoutes(r, authMiddleware)
		testHandler.RegisterRoutes(r, authMiddleware)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
