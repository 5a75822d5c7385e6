package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/avoronov/techstore-backend/config"
	"github.com/avoronov/techstore-backend/internal/app/controller"
	"github.com/avoronov/techstore-backend/internal/app/repository"
	"github.com/avoronov/techstore-backend/internal/app/service"
	"github.com/avoronov/techstore-backend/internal/db"
	"github.com/avoronov/techstore-backend/internal/middleware"
	"github.com/avoronov/techstore-backend/internal/router"
	"github.com/avoronov/techstore-backend/pkg/logger"
	"github.com/avoronov/techstore-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting TechStore Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed database (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize Redis for token revocation (optional)
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	brandRepo := repository.NewBrandRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	commentRepo := repository.NewCommentRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	ratingRepo := repository.NewRatingRepository(db.GetDB())
	favoriteRepo := repository.NewFavoriteRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	productService := service.NewProductService(productRepo, brandRepo)
	brandService := service.NewBrandService(brandRepo, productRepo)
	commentService := service.NewCommentService(commentRepo, productRepo)
	cartService := service.NewCartService(cartRepo, db.GetDB())
	ratingService := service.NewRatingService(ratingRepo, productRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, productRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	brandController := controller.NewBrandController(brandService)
	commentController := controller.NewCommentController(commentService)
	cartController := controller.NewCartController(cartService)
	ratingController := controller.NewRatingController(ratingService)
	favoriteController := controller.NewFavoriteController(favoriteService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		brandController,
		commentController,
		cartController,
		ratingController,
		favoriteController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
