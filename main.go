package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/acarlisle/figuredraw/api"
	"github.com/acarlisle/figuredraw/config"
	"github.com/acarlisle/figuredraw/display"
	"github.com/acarlisle/figuredraw/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	// Initialize database
	database, err := store.NewDatabase(cfg.DatabasePath())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize web server
	webServer := api.NewWebServer(database, cfg)

	if cfg.OpenBrowserEnabled() {
		go display.OpenWhenReady("http://" + cfg.ListenAddr)
	}

	webServer.Start(cfg.ListenAddr)
}
