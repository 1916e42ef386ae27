package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Borcheg1/go-restaurant-api/internal/cache"
	"github.com/Borcheg1/go-restaurant-api/internal/db"
	"github.com/Borcheg1/go-restaurant-api/internal/storage"
	"github.com/Borcheg1/go-restaurant-api/internal/sync"

	"github.com/joho/godotenv"
)

// Standalone reconciliation worker for deployments that keep the API
// process free of background jobs.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, using environment variables")
	}

	log.Println("📄 Sync Worker starting...")

	for _, k := range []string{"DATABASE_URL", "REDIS_ADDR", "MENU_XLSX_PATH"} {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	store := cache.Connect()
	defer store.Close()

	path := os.Getenv("MENU_XLSX_PATH")
	engine := sync.NewEngine(sync.NewPostgresRepository(pgDB), store, path)

	interval := 15 * time.Second
	if v := os.Getenv("SYNC_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("❌ Invalid SYNC_INTERVAL: %v", err)
		}
		interval = d
	}

	worker := sync.NewWorker(engine, interval)
	if os.Getenv("R2_ENDPOINT") != "" {
		r2Client, err := storage.NewR2Client(context.Background())
		if err != nil {
			log.Fatal("❌ R2 init failed:", err)
		}
		worker = worker.WithFetcher(r2Client, os.Getenv("R2_OBJECT_KEY"))
	}

	log.Printf("✅ Sync Worker running every %s. Press Ctrl+C to stop.", interval)
	worker.Run()
}
