package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/savageut/scheduler-backend/config"
	"github.com/savageut/scheduler-backend/internal/analytics"
	authrepo "github.com/savageut/scheduler-backend/internal/auth/repository"
	authservice "github.com/savageut/scheduler-backend/internal/auth/service"
	"github.com/savageut/scheduler-backend/internal/bootstrap"
	"github.com/savageut/scheduler-backend/internal/customers"
	"github.com/savageut/scheduler-backend/internal/export"
	"github.com/savageut/scheduler-backend/internal/notify"
	cronjob "github.com/savageut/scheduler-backend/internal/scheduling/cron"
	"github.com/savageut/scheduler-backend/internal/scheduling/repository"
	"github.com/savageut/scheduler-backend/internal/scheduling/service"
	"github.com/savageut/scheduler-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[config] %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatalf("[db] %v", err)
	}
	defer pool.Close()

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Printf("[redis] cache disabled: %v", err)
		rdb = nil
	} else {
		defer rdb.Close()
	}

	store := repository.NewPostgresStore(pool)

	var emailSender notify.EmailSender = notify.ConsoleEmailSender{}
	if cfg.Sendgrid.APIKey != "" {
		emailSender = notify.NewSendgridSender(cfg.Sendgrid.APIKey, cfg.Sendgrid.FromName, cfg.Sendgrid.FromEmail)
	} else {
		log.Println("[notify] SENDGRID_API_KEY not set, emails will be logged")
	}

	var smsSender notify.SMSSender = notify.ConsoleSMSSender{}
	if cfg.Twilio.AccountSID != "" {
		smsSender = notify.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber)
	} else {
		log.Println("[notify] TWILIO_ACCOUNT_SID not set, texts will be logged")
	}

	dispatcher := notify.NewDispatcher(emailSender, smsSender)
	exporter := export.NewWriter(cfg.Export.Dir)
	search := customers.NewSearchService(store, rdb)

	projects := service.NewProjectService(store,
		bootstrap.ExportHook(exporter, store),
		bootstrap.NotifyHook(dispatcher),
		bootstrap.CacheHook(search),
	)

	userRepo := authrepo.NewUserRepository(pool)
	auth := authservice.NewAuthService(userRepo, cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	reminders := cronjob.NewScheduler(store, dispatcher, cfg.Scheduler.ReminderHour)
	if err := reminders.Start(); err != nil {
		log.Fatalf("[cron] %v", err)
	}
	defer reminders.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "scheduler-backend",
		Version:     cfg.App.Version,
		DB:          pool,
		Redis:       rdb,
		Projects:    projects,
		Auth:        auth,
		Search:      search,
		Analytics:   analytics.NewService(store),
		LoginPerMin: cfg.Auth.LoginPerMin,
		LoginBurst:  cfg.Auth.LoginBurst,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("[api] listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[api] server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("[api] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[api] shutdown: %v", err)
		os.Exit(1)
	}
}
