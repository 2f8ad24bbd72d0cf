package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rewear/pkg/cache"
	"rewear/pkg/config"
	"rewear/pkg/database"
	"rewear/pkg/jwt"
	"rewear/pkg/logger"
	"rewear/pkg/middleware"
	"rewear/pkg/models"
	"rewear/services/admin/handlers"
	"rewear/services/admin/repository"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Auto migrate
	if err := db.AutoMigrate(&models.User{}, &models.Item{}, &models.Transaction{}); err != nil {
		log.Error("Failed to migrate database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	jwtService := jwt.NewService(cfg.JWTSecret)
	adminRepo := repository.NewAdminRepository(db)
	adminHandler := handlers.NewAdminHandler(adminRepo, redisClient, log)

	r := gin.Default()

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService), middleware.RequireRole("admin"))
	{
		api.GET("/admin/users", adminHandler.GetUsers)
		api.POST("/admin/users/:user_id/ban", adminHandler.BanUser)
		api.POST("/admin/users/:user_id/unban", adminHandler.UnbanUser)
		api.POST("/admin/users/:user_id/points", adminHandler.GrantPoints)

		api.GET("/admin/listings", adminHandler.GetListings)
		api.GET("/admin/listings/pending", adminHandler.GetPendingListings)
		api.POST("/admin/listings/review/:item_id", adminHandler.ReviewListing)
		api.POST("/admin/listings/approve/:item_id", adminHandler.ApproveListing)
		api.POST("/admin/listings/reject/:item_id", adminHandler.RejectListing)
		api.DELETE("/admin/listings/:item_id", adminHandler.RemoveListing)

		api.GET("/admin/orders", adminHandler.GetOrders)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Admin service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down admin service...")

	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Admin service exited")
}
