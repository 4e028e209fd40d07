package main

import (
	"context"
	"log"
	"time"

	"github.com/savageut/scheduler-backend/config"
	authdomain "github.com/savageut/scheduler-backend/internal/auth/domain"
	authrepo "github.com/savageut/scheduler-backend/internal/auth/repository"
	authservice "github.com/savageut/scheduler-backend/internal/auth/service"
	"github.com/savageut/scheduler-backend/internal/bootstrap"
	"github.com/savageut/scheduler-backend/internal/storage/postgres"
)

// RunCreateAdmin seeds the first account so someone can log in and invite
// the rest of the team.
func RunCreateAdmin(args []string) {
	if len(args) < 3 {
		log.Fatal("usage: admin create-admin <username> <email> <password>")
	}
	username, email, password := args[0], args[1], args[2]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[config] %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatalf("[db] %v", err)
	}
	defer pool.Close()

	auth := authservice.NewAuthService(authrepo.NewUserRepository(pool), cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	user, err := auth.CreateUser(ctx, username, email, password, authdomain.RoleAdmin)
	if err != nil {
		log.Fatalf("[create-admin] %v", err)
	}
	log.Printf("[create-admin] created admin %q (id=%d)", user.Username, user.ID)
}
