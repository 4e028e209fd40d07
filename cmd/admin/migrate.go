package main

import (
	"log"

	"github.com/savageut/scheduler-backend/config"
	"github.com/savageut/scheduler-backend/internal/storage/postgres"
)

func RunMigrate() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[config] %v", err)
	}

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("[db] %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("[migrate] %v", err)
	}
}
