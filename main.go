package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	v1 "github.com/pcm-backend/api/v1"
	"github.com/pcm-backend/config"
	"github.com/pcm-backend/database"
	"github.com/pcm-backend/pkg/logger"
	"github.com/pcm-backend/services"
)

func main() {
	// Load .env before anything reads the environment
	config.LoadEnv()

	log, err := logger.New(config.AppEnv())
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Database
	db, err := database.Connect(config.DatabaseURL())
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", "error", err)
	}
	if err := database.SeedPermissions(db); err != nil {
		log.Fatal("failed to seed permissions", "error", err)
	}
	log.Info("connected to database")

	// Announcement visibility sweeper
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	scheduler := services.NewAnnouncementScheduler(db, log, time.Minute)
	go scheduler.Run(ctx)

	// Router
	if config.AppEnv() == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	apiV1 := router.Group("/api/v1")
	v1.RegisterRoutes(apiV1, db, log)

	port := config.Port()
	log.Info("pcm backend starting", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("failed to start server", "error", err)
	}
}
