// Package main applies the goose migrations. Usage:
//
//	migrate [up|down|status|version]
//
// DATABASE_URL selects the target; MIGRATIONS_DIR overrides the default
// ./migrations directory.
package main

import (
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/dronewatch/dronewatch/internal/config"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}
	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = "migrations"
	}

	dbConn, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer dbConn.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatal("set dialect", zap.Error(err))
	}

	switch command {
	case "up":
		err = goose.Up(dbConn, dir)
	case "down":
		err = goose.Down(dbConn, dir)
	case "status":
		err = goose.Status(dbConn, dir)
	case "version":
		err = goose.Version(dbConn, dir)
	default:
		logger.Fatal("unknown command", zap.String("command", command))
	}
	if err != nil {
		logger.Fatal("migration failed", zap.String("command", command), zap.Error(err))
	}
	logger.Info("migrations applied", zap.String("command", command))
}
