package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Paul4805/AI-Dashboard-Tool/api"
	"github.com/Paul4805/AI-Dashboard-Tool/config"
	"github.com/Paul4805/AI-Dashboard-Tool/llm"
	"github.com/Paul4805/AI-Dashboard-Tool/policy"
	"github.com/Paul4805/AI-Dashboard-Tool/service"
	"github.com/Paul4805/AI-Dashboard-Tool/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting dashboard backend...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("LLM URL: %s", cfg.LLMBaseURL)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize LLM client
	llmClient := llm.NewLLMClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)

	// Initialize SQL policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize service
	svc := service.New(db, llmClient, policyEngine, cfg)

	// Initialize handlers
	h := api.NewHandler(svc)

	// Create Echo server
	server := echo.New()
	server.HideBanner = true

	// Middleware
	server.Use(middleware.Logger())
	server.Use(middleware.Recover())
	server.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
	}))

	// Register routes
	h.RegisterRoutes(server)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Dashboard backend started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down dashboard backend...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Dashboard backend stopped")
}
