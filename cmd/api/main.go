package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Trippy3/pr-comments-fetcher/internal/api"
	"github.com/Trippy3/pr-comments-fetcher/internal/config"
	"github.com/Trippy3/pr-comments-fetcher/internal/fetcher"
	"github.com/Trippy3/pr-comments-fetcher/internal/storage"
	"github.com/Trippy3/pr-comments-fetcher/internal/storage/postgres"
	"github.com/Trippy3/pr-comments-fetcher/internal/storage/sqlite"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize storage
	var store storage.Storage
	switch cfg.StorageType {
	case "postgres":
		store, err = postgres.NewPostgresStorage(cfg.PostgresURL)
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL storage: %v", err)
		}
	default:
		store, err = sqlite.NewSQLiteStorage(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite storage: %v", err)
		}
	}
	defer store.Close()

	// Initialize fetch pipeline
	pipeline := fetcher.NewPipeline(fetcher.NewGitHubFetcher(cfg.GitHubToken))

	// Initialize handler
	handler := api.NewHandler(pipeline, store)

	// Setup routes
	router := api.SetupRoutes(handler)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	fmt.Printf("Starting API server on %s\n", addr)
	fmt.Printf("Storage type: %s\n", cfg.StorageType)

	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}
