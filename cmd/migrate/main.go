package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"log"

	"agrimart-be/internal/config"
	"agrimart-be/internal/db"
	"agrimart-be/migrations"

	"github.com/pressly/goose/v3"
)

func main() {
	mode := flag.String("mode", "up", "migration mode: up, down or status")
	flag.Parse()

	cfg := config.LoadConfig()

	conn, err := db.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer conn.Close()

	if err := run(conn, *mode, migrations.FS); err != nil {
		log.Fatal(err)
	}
}

func run(conn *sql.DB, mode string, fsys fs.FS) error {
	migrate, err := command(mode)
	if err != nil {
		return err
	}

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := migrate(conn, migrations.Dir); err != nil {
		return fmt.Errorf("migration %s failed: %w", mode, err)
	}
	return nil
}

func command(mode string) (func(*sql.DB, string, ...goose.OptionsFunc) error, error) {
	switch mode {
	case "up":
		return goose.Up, nil
	case "down":
		return goose.Down, nil
	case "status":
		return goose.Status, nil
	default:
		return nil, fmt.Errorf("unknown mode: %s (use 'up', 'down' or 'status')", mode)
	}
}
