package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"tianguis/internal/caching"
	"tianguis/internal/config"
	"tianguis/internal/handlers"
	"tianguis/internal/jobs"
	"tianguis/internal/middleware"
	"tianguis/internal/repositories"
	"tianguis/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Connected to database")

	cacheService := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := cacheService.Ping(context.Background()); err != nil {
		log.Printf("Redis unavailable, continuing without cache warm: %v", err)
	}

	minioService, err := services.NewMinioService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to create minio client: %v", err)
	}
	if err := minioService.EnsureBucketExists(context.Background(), cfg.MinioBucket); err != nil {
		log.Fatalf("Failed to ensure bucket %s: %v", cfg.MinioBucket, err)
	}

	// Repositories
	estadoRepo := repositories.NewEstadoRepo(pool)
	municipioRepo := repositories.NewMunicipioRepo(pool)
	coloniaRepo := repositories.NewColoniaRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	listingRepo := repositories.NewListingRepo(pool)
	interestRepo := repositories.NewInterestRepo(pool)

	// Services
	geographyService := services.NewGeographyService(estadoRepo, municipioRepo, coloniaRepo, cacheService)
	userService := services.NewUserService(userRepo, geographyService, cfg.JWTSecret)
	listingService := services.NewListingService(listingRepo, geographyService, minioService, cfg.MinioBucket)
	notificationService := services.NewNotificationService(services.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})
	interestService := services.NewInterestService(interestRepo, listingRepo, userRepo, notificationService, cfg.FrontendURL)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(userService)
	userHandlers := handlers.NewUserHandlers(userService)
	listingHandlers := handlers.NewListingHandlers(listingService)
	interestHandlers := handlers.NewInterestHandlers(interestService)
	locationHandlers := handlers.NewLocationHandlers(geographyService)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheService)

	// Background jobs
	scheduler, err := jobs.NewJobScheduler(geographyService)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop scheduler: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	authMiddleware := middleware.JWTMiddleware(userRepo, cfg.JWTSecret)

	// Health
	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)

	api := e.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)
	auth.GET("/me", authHandlers.Me, authMiddleware)

	// Locations (public reference data)
	locations := api.Group("/locations")
	locations.GET("/estados", locationHandlers.ListEstados)
	locations.GET("/estados/:id/municipios", locationHandlers.ListMunicipios)
	locations.GET("/municipios/:id", locationHandlers.GetMunicipio)
	locations.GET("/colonias/cp/:codigoPostal", locationHandlers.FindColonias)

	// Users (self-service only)
	users := api.Group("/users", authMiddleware)
	users.GET("/:id", userHandlers.GetUser)
	users.PUT("/:id", userHandlers.UpdateUser)
	users.DELETE("/:id", userHandlers.DeleteUser)

	// Listings: browsing is public, mutations require auth
	listings := api.Group("/listings")
	listings.GET("", listingHandlers.ListListings)
	listings.GET("/:id", listingHandlers.GetListing)
	listings.POST("", listingHandlers.CreateListing, authMiddleware)
	listings.PUT("/:id", listingHandlers.UpdateListing, authMiddleware)
	listings.DELETE("/:id", listingHandlers.DeleteListing, authMiddleware)
	listings.GET("/user/:userId", listingHandlers.ListUserListings, authMiddleware)

	// Interests
	interests := api.Group("/interests", authMiddleware)
	interests.POST("", interestHandlers.CreateInterest)
	interests.GET("/received", interestHandlers.ListReceived)
	interests.GET("/sent", interestHandlers.ListSent)
	interests.PUT("/:id/read", interestHandlers.MarkRead)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := e.Start(addr); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Failed to shut down server: %v", err)
	}
}
