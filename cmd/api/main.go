// @title Trivia API
// @version 1.0
// @description Question catalog and quiz play API.
// @host localhost:5000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "trivia-api/cmd/api/docs"
	"trivia-api/internal/adapter"
	"trivia-api/internal/cache"
	"trivia-api/internal/catalog"
	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/domain"
	"trivia-api/internal/handler"
	"trivia-api/internal/logger"
	"trivia-api/internal/middleware"
	"trivia-api/internal/repository"
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, cfg, db, database.Up); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis is optional; without it the category list is read from the database every time
	var kv domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, category cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			kv = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
		}
	}

	// Initialize repositories
	questionRepository := repository.NewQuestionDatabaseAdapter(db)
	categoryRepository := service.NewCachedCategoryRepository(
		repository.NewCategoryDatabaseAdapter(db), kv, cfg.Catalog.CategoryCacheTTL)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize services
	questionService := service.NewQuestionService(questionRepository, categoryRepository, txManager, cfg.Catalog.PageSize)
	categoryService := service.NewCategoryService(categoryRepository)
	quizService := service.NewQuizService(questionRepository, catalog.NewSelector(nil))

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	// recover sits inside the logger so panics are logged and counted as 500s
	app.Use(middleware.RequestLogger())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization,true",
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handler.RegisterRoutes(app, handler.Handlers{
		Questions:  handler.NewQuestionHandler(questionService),
		Categories: handler.NewCategoryHandler(categoryService, questionService),
		Quiz:       handler.NewQuizHandler(quizService),
		Health:     handler.NewHealthHandler(db, kv),
	})

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("env", cfg.Logger.Env),
			zap.String("driver", cfg.DB.Driver),
		)
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
