package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/pranavk/queuectl/cmd"
	"github.com/pranavk/queuectl/internal/config"
	"github.com/pranavk/queuectl/internal/engine"
	"github.com/pranavk/queuectl/internal/recovery"
	"github.com/pranavk/queuectl/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatal("Failed to create data directory:", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "queue.db")

	store, err := storage.NewStore(dbPath)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}
	defer store.Close()

	if err := config.Seed(store, cfg); err != nil {
		log.Fatal("Failed to seed runtime configuration:", err)
	}

	if _, err := recovery.Sweep(store); err != nil {
		log.Fatal("Recovery sweep failed:", err)
	}

	dispatcher := engine.New(store, cfg.DataDir)

	cmd.Execute(store, cfg, dispatcher)
}
