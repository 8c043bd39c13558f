// Command migrate applies database migrations from the embedded set.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pressly/goose/v3"

	"notarium/internal/platform/config"
	"notarium/internal/platform/database"
	"notarium/internal/platform/logger"
	"notarium/migrations"
)

func main() {
	var (
		command = flag.String("command", "up", "goose command: up, down, status, version")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if cfg.Database.DSN == "" {
		log.Error("database DSN is not configured")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.Open(ctx, database.Config{
		URL:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		log.Error("open database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Error("set dialect", "error", err)
		os.Exit(1)
	}

	db := pool.DB()
	switch *command {
	case "up":
		err = goose.UpContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	case "status":
		err = goose.StatusContext(ctx, db, ".")
	case "version":
		err = goose.VersionContext(ctx, db, ".")
	default:
		log.Error("unknown command", "command", *command)
		os.Exit(2)
	}
	if err != nil {
		log.Error("migration failed", "command", *command, "error", err)
		os.Exit(1)
	}

	log.Info("migration complete", "command", *command)
}
