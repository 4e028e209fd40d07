package main

import (
	"context"
	"log"
	"time"

	"github.com/savageut/scheduler-backend/config"
	"github.com/savageut/scheduler-backend/internal/bootstrap"
	"github.com/savageut/scheduler-backend/internal/customers"
	"github.com/savageut/scheduler-backend/internal/scheduling/repository"
	"github.com/savageut/scheduler-backend/internal/storage/postgres"
)

// RunImportCustomers loads a customer CSV, matching on phone number so
// re-running the same file is safe.
func RunImportCustomers(args []string) {
	if len(args) < 1 {
		log.Fatal("usage: admin import-customers <file.csv>")
	}
	path := args[0]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[config] %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatalf("[db] %v", err)
	}
	defer pool.Close()

	store := repository.NewPostgresStore(pool)
	res, err := customers.ImportCSV(ctx, store, path)
	if err != nil {
		log.Fatalf("[import] %v", err)
	}
	log.Printf("[import] done: %d imported, %d updated, %d skipped", res.Imported, res.Updated, res.Skipped)
}
