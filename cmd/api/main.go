package main

import (
	"context"
	"fmt"
	"log"

	"wonderlens/internal/config"
	"wonderlens/internal/db"
	"wonderlens/internal/pkg/vision"
	"wonderlens/internal/routes"
	"wonderlens/internal/storage"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY is not set")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	dbConn, err := db.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	store, err := storage.NewMinIOStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object store: %v", err)
	}

	analyzer := vision.NewAnalyzer(cfg.OpenAIAPIKey)

	router := routes.SetupRouter(dbConn, cfg, store, analyzer)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
