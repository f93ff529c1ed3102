package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

	"storecheck/database"
	"storecheck/internal/config"
	"storecheck/server"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	db, err := database.NewStoreDB(cfg.DatabasePath, database.DefaultDBConfig())
	if err != nil {
		log.Fatalf("Failed to open store database: %v", err)
	}
	defer db.Close()

	srv := server.NewServer(cfg, db, logger)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
