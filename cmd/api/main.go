package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"lingodeck/internal/adapter"
	"lingodeck/internal/cache"
	"lingodeck/internal/config"
	"lingodeck/internal/database"
	"lingodeck/internal/handler"
	"lingodeck/internal/importer"
	"lingodeck/internal/logger"
	"lingodeck/internal/middleware"
	"lingodeck/internal/repository"
	"lingodeck/internal/service"
	"lingodeck/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const lessonCacheTTL = 1 * time.Hour

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Blob storage for normalized flashcard media
	blobStore, err := storage.NewLocalBlobStore(cfg.Storage.BlobDir)
	if err != nil {
		appLogger.Fatal("Failed to initialize blob store", zap.Error(err))
	}
	appLogger.Info("Blob store initialized", zap.String("dir", cfg.Storage.BlobDir))

	// Initialize repositories
	flashcardRepository := repository.NewFlashcardDatabaseAdapter(db)
	lessonRepository := repository.NewLessonDatabaseAdapter(db)
	progressRepository := repository.NewProgressDatabaseAdapter(db)
	userRepository := repository.NewSQLXUserRepository(db)

	// Initialize Redis client
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	cacheService := service.NewCacheService(cacheAdapter, lessonCacheTTL)

	// Initialize the import pipeline
	assembler := importer.NewAssembler(blobStore, flashcardRepository, appLogger)

	// Initialize services
	importService := service.NewImportService(assembler, lessonRepository, cacheService, cfg.Import.Timeout)
	lessonService := service.NewLessonService(lessonRepository, flashcardRepository, blobStore, cacheService)
	progressService := service.NewProgressService(progressRepository, flashcardRepository)
	userService := service.NewUserService(userRepository)

	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	appLogger.Info("AuthService initialized")

	// Initialize handlers
	importHandler := handler.NewImportHandler(importService)
	lessonHandler := handler.NewLessonHandler(lessonService)
	progressHandler := handler.NewProgressHandler(progressService)
	authHandler := handler.NewAuthHandler(authService, cacheAdapter)
	userHandler := handler.NewUserHandler(userService)
	blobHandler := handler.NewBlobHandler(blobStore)

	validationMiddleware := middleware.NewValidationMiddleware()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		// Import batches carry raw audio and images.
		BodyLimit: 100 * 1024 * 1024,
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)

	// User routes
	userGroup := apiGroup.Group("/users", middleware.Protected(authService))
	userGroup.Get("/me", userHandler.GetMyProfile)
	userGroup.Get("/me/lessons", lessonHandler.GetMyLessons)

	// Lesson routes. AdminOnly goes on the management routes themselves;
	// a group-level Use would also gate the student routes below.
	lessonGroup := apiGroup.Group("/lessons", middleware.Protected(authService))
	lessonGroup.Post("/", middleware.AdminOnly(), lessonHandler.CreateLesson)
	lessonGroup.Delete("/:id", middleware.AdminOnly(), validationMiddleware.ValidateLessonID(), lessonHandler.DeleteLesson)
	lessonGroup.Post("/:id/assign", middleware.AdminOnly(), validationMiddleware.ValidateLessonID(), lessonHandler.AssignLesson)
	lessonGroup.Post("/:id/flashcards/import",
		middleware.AdminOnly(),
		validationMiddleware.ValidateLessonID(),
		validationMiddleware.ValidateImportParams(),
		importHandler.ImportFlashcards)

	lessonGroup.Get("/", lessonHandler.ListLessons)
	lessonGroup.Get("/:id", validationMiddleware.ValidateLessonID(), lessonHandler.GetLesson)
	lessonGroup.Get("/:id/flashcards", validationMiddleware.ValidateLessonID(), lessonHandler.GetLessonFlashcards)
	lessonGroup.Get("/:id/review", validationMiddleware.ValidateLessonID(), progressHandler.GetReviewQueue)
	lessonGroup.Get("/:id/progress", validationMiddleware.ValidateLessonID(), progressHandler.GetLessonSummary)

	// Flashcard routes
	apiGroup.Delete("/flashcards/:id",
		middleware.Protected(authService), middleware.AdminOnly(),
		validationMiddleware.ValidateFlashcardID(),
		lessonHandler.DeleteFlashcard)
	apiGroup.Post("/flashcards/:id/answer",
		middleware.Protected(authService),
		validationMiddleware.ValidateFlashcardID(),
		progressHandler.RecordAnswer)

	// Stored media
	apiGroup.Get("/blobs/*", middleware.Protected(authService), blobHandler.GetBlob)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
