// Package main runs the realspace dev API.
//
// Settings come from REALSPACE_-prefixed environment variables or an optional
// ./realspace.yaml (see internal/config):
//
//	REALSPACE_JWT_SECRET=$(openssl rand -hex 32) REALSPACE_PORT=8080 realspace-api
//
// The API listens on /api and stops gracefully on SIGINT/SIGTERM.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/realspace/realspace/internal/config"
	"github.com/realspace/realspace/internal/logger"
	"github.com/realspace/realspace/internal/server"
)

func main() {
	cfg, err := config.LoadAPI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "realspace-api: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Writer: os.Stdout})
	if err != nil {
		fmt.Fprintf(os.Stderr, "realspace-api: %v\n", err)
		os.Exit(1)
	}

	// mkdir -p for the database file's directory.
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		DBPath:    cfg.DBPath,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}, log)
	if err != nil {
		log.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Blocks until shutdown.
	if err := srv.Start(); err != nil {
		log.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
