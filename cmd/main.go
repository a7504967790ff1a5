package main

import (
	"log"

	"wallboard-backend/internal/api"
	"wallboard-backend/internal/api/routes"
	"wallboard-backend/internal/config"
	"wallboard-backend/internal/libraries"
	"wallboard-backend/internal/repo"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := config.Load()

	// Pick the snapshot store backend
	var store repo.SnapshotStore
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		if err := config.ConnectDB(cfg.DBURL); err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		dbStore := repo.NewDBStore(config.DB)
		if err := dbStore.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		store = dbStore
	default:
		store = repo.NewFileStore(cfg.DataFile)
	}

	// Start the push channel hub
	hub := libraries.NewHub()
	go hub.Run()

	// Create and configure Fiber app
	app := api.NewServer(cfg)

	// Register routes
	routes.Register(app, store, hub)

	// Start server
	if err := api.StartServer(app, cfg.Addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
