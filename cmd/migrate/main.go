package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"list-blitz/internal/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const migrationsDir = "db/migrations"

func main() {
	action := flag.String("action", "up", "up, down or create")
	steps := flag.Int("steps", 0, "number of migrations to roll back with -action down (0 means all)")
	name := flag.String("name", "", "migration name for -action create")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	switch *action {
	case "create":
		if err := createMigration(*name); err != nil {
			log.Fatalf("create migration failed: %v", err)
		}
	case "up":
		m := mustMigrator()
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("database migration failed: %v", err)
		}
		log.Println("database migrations applied")
	case "down":
		m := mustMigrator()
		var err error
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("database rollback failed: %v", err)
		}
		log.Println("database migrations rolled back")
	default:
		log.Fatalf("unknown action %q", *action)
	}
}

func mustMigrator() *migrate.Migrate {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	m, err := migrate.New("file://"+migrationsDir, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("migration setup failed: %v", err)
	}
	return m
}

func createMigration(name string) error {
	if name == "" {
		return errors.New("migration name is required")
	}
	if strings.ContainsAny(name, " /") {
		return errors.New("migration name must not contain spaces or slashes")
	}
	base := fmt.Sprintf("%s_%s", time.Now().UTC().Format("20060102150405"), name)
	upPath := filepath.Join(migrationsDir, base+".up.sql")
	downPath := filepath.Join(migrationsDir, base+".down.sql")
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return err
	}
	for _, path := range []string{upPath, downPath} {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s", path)
		}
		if err := os.WriteFile(path, []byte("-- "+filepath.Base(path)+"\n"), 0o644); err != nil {
			return err
		}
	}
	log.Printf("created %s and %s", upPath, downPath)
	return nil
}
