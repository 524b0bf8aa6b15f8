package main

import (
	"flag"
	"log"

	"list-blitz/internal/config"
	"list-blitz/internal/db"
	"list-blitz/internal/prompts"
)

func main() {
	filePath := flag.String("file", "prompts.csv", "path to a pack,pack_title,product_id,text csv")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
	}

	records, err := prompts.ReadCSV(*filePath)
	if err != nil {
		log.Fatalf("failed to read prompts: %v", err)
	}
	inserted, err := prompts.Import(conn, records)
	if err != nil {
		log.Fatalf("failed to import prompts after %d rows: %v", inserted, err)
	}
	log.Printf("loaded %d prompts", inserted)
}
