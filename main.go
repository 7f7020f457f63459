package main

import (
	"log"

	"snaplink/internal/analytics"
	"snaplink/internal/codegen"
	"snaplink/internal/config"
	"snaplink/internal/controllers"
	"snaplink/internal/enrich"
	"snaplink/internal/middleware"
	"snaplink/internal/service"
	"snaplink/internal/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize the analytics mirror (optional - continue if Redis is unavailable)
	var mirror analytics.Mirror
	if cfg.RedisURL != "" {
		m, err := analytics.NewRedisMirror(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis (%v). Continuing without click mirroring.", err)
		} else {
			log.Println("Connected to Redis click mirror")
			mirror = m
		}
	}

	// Initialize the engine: store, code generator, click enrichment
	aliasStore := store.New()
	generator := codegen.NewGenerator(cfg.CodeLength)
	enricher := enrich.NewStatic()
	aliasService := service.NewAliasService(aliasStore, generator, enricher, mirror)

	// Initialize controllers
	shortenerController := controllers.NewShortenerController(aliasService, cfg.BaseURL, cfg.DefaultValidityMin)
	qrcodeController := controllers.NewQRCodeController(aliasService, cfg.BaseURL)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	shortenRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitShortenRPS), cfg.RateLimitShortenBurst)
	redirectRateLimiter := middleware.NewRateLimiter(30.0, 60) // More lenient for redirects (30 req/s, burst 60)

	// Create a Gin router
	router := gin.Default()

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Redirect endpoint with rate limiting
	router.GET("/:shortCode", redirectRateLimiter.LimitMiddleware(), shortenerController.RedirectToURL)

	// API v1 routes group with general rate limiting
	api := router.Group("/api/v1")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Link creation with stricter rate limiting
		api.POST("/shorten", shortenRateLimiter.LimitMiddleware(), shortenerController.CreateShortURL)

		// Statistics and inspection
		api.GET("/urls", shortenerController.GetAllAliases)
		api.GET("/url/:shortCode", shortenerController.GetAliasDetails)

		// QR Code generation
		api.GET("/qrcode/:shortCode", qrcodeController.GenerateQRCode)
	}

	// Start the server
	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	router.Run(":" + cfg.Port)
}
