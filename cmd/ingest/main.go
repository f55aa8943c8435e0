// Package main loads a holder snapshot CSV into PostgreSQL.
// Existing addresses are skipped so repeated loads are safe.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"solana-rewards-lab/internal/holderfile"
	"solana-rewards-lab/internal/storage"
	"solana-rewards-lab/internal/storage/migrations"
	pgstore "solana-rewards-lab/internal/storage/postgres"
)

func main() {
	csvPath := flag.String("csv", "", "Holder snapshot CSV file (address,tokens,hours_after_launch)")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	flag.Parse()

	logger := log.New(os.Stdout, "[ingest] ", log.LstdFlags|log.Lshortfile)

	if *csvPath == "" {
		logger.Fatal("--csv is required")
	}
	if *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required")
	}

	ctx := context.Background()

	records, err := holderfile.Load(*csvPath)
	if err != nil {
		logger.Fatalf("Failed to load holder file: %v", err)
	}
	logger.Printf("Loaded %d holders from %s", len(records), *csvPath)

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	store := pgstore.NewHolderStore(pool)

	inserted, skipped := 0, 0
	for _, rec := range records {
		err := store.Insert(ctx, rec)
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, storage.ErrDuplicateKey):
			skipped++
		default:
			logger.Fatalf("Failed to insert holder %s: %v", rec.Address, err)
		}
	}

	logger.Printf("Done: %d inserted, %d already present", inserted, skipped)
}
