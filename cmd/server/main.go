package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"cineasta-server/internal/config"
	"cineasta-server/internal/database"
	"cineasta-server/internal/handler"
	"cineasta-server/internal/imagegen"
	"cineasta-server/internal/repository"
	"cineasta-server/internal/service"
	"cineasta-server/internal/storage"
	"cineasta-server/internal/transcribe"
	"cineasta-server/pkg/ai"
	"cineasta-server/pkg/logger"
	"cineasta-server/pkg/migration"
)

func main() {
	// Загрузка переменных окружения из .env (в production файла может не быть)
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting cineasta-server", zap.String("environment", cfg.Environment))

	// Подключение к PostgreSQL
	pool, err := initDatabase(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()
	log.Info("Database connection established", zap.String("dsn", cfg.GetMaskedDSN()))

	// Применение миграций схемы
	migrator := migration.NewMigrator(migration.Config{
		MigrationsPath: database.MigrationsPath,
		MigrationsFS:   database.MigrationsFS,
	}, pool)
	if err := migrator.Up(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Инфраструктурные клиенты
	aiClient, err := ai.New(ai.Config{
		APIKey:        cfg.AIAPIKey,
		BaseURL:       cfg.AIBaseURL,
		ModelName:     cfg.AIModel,
		Timeout:       cfg.AITimeout,
		MaxAttempts:   cfg.AIMaxAttempts,
		BaseRetryWait: cfg.AIBaseRetryWait,
	})
	if err != nil {
		log.Fatal("Failed to initialize AI client", zap.Error(err))
	}

	objectStorage, err := storage.NewLocalStorage(cfg.StorageSavePath, cfg.StoragePublicBaseURL, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	imageGenerator := imagegen.NewHTTPClient(cfg.ImageGenBaseURL, cfg.ImageGenTimeout, log)
	transcriber := transcribe.NewHTTPClient(cfg.TranscribeBaseURL, cfg.TranscribeTimeout, log)

	// Репозитории
	storyRepo := repository.NewPgStoryRepository(pool, log)
	avatarRepo := repository.NewPgAvatarRepository(pool, log)
	audioRepo := repository.NewPgAudioRepository(pool, log)
	classroomRepo := repository.NewPgClassroomRepository(pool, log)
	userRepo := repository.NewPgUserRepository(pool, log)

	// Сервисы
	storyService := service.NewStoryService(storyRepo, avatarRepo, aiClient, log)
	avatarService := service.NewAvatarService(avatarRepo, objectStorage, imageGenerator, log)
	audioService := service.NewAudioService(audioRepo, storyRepo, objectStorage, transcriber, cfg.TranscribeLang, log)
	classroomService := service.NewClassroomService(classroomRepo, storyRepo, userRepo, log)
	userService := service.NewUserService(userRepo, log)

	h := handler.NewHandler(storyService, avatarService, audioService, classroomService, userService, cfg.JWTSecret, log)

	// HTTP сервер
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handler.ZapLoggingMiddleware(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	prom := ginprometheus.NewPrometheus("gin")
	prom.Use(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	// Раздача объектов хранилища (фото, аватары, аудио)
	router.Static("/files", cfg.StorageSavePath)

	h.RegisterRoutes(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.Int("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown по SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// initDatabase создает пул соединений pgx и проверяет доступность БД.
func initDatabase(cfg *config.Config, log *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MaxConnIdleTime = cfg.DBIdleTime

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}
