package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"booknotes/internal/config"
	"booknotes/internal/database"
	"booknotes/internal/database/repositories"
	"booknotes/internal/logger"
	"booknotes/internal/notepolicy"
	"booknotes/internal/partner"
	"booknotes/internal/partner/south"
	"booknotes/internal/server"
)

func gracefulShutdown(fiberServer *server.FiberServer, log logger.Logger, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	if err := fiberServer.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Error("server forced to shutdown", logger.Error(err))
	}

	log.Info("server exiting")
	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLog, err := logger.New(cfg.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = appLog.Sync() }()

	if err := run(cfg, appLog); err != nil {
		appLog.Error("server stopped", logger.Error(err))
	}
}

func run(cfg *config.Config, appLog logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg.Database.DSN(), appLog)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db.DB(), appLog); err != nil {
		return err
	}

	partners := partner.NewRegistry()
	if cfg.Partners.SouthURL != "" {
		client := partner.NewClient(cfg.Partners.SouthURL, cfg.Partners.Timeout)
		partners.Register(notepolicy.South, partner.NewFeed(client, south.NewResponseMapper()))
	} else {
		appLog.Warn("SOUTH_PARTNER_URL not set, south partner feed disabled")
	}

	app := server.New(cfg, server.Deps{
		DB:       db,
		Users:    repositories.NewUserRepository(db.DB()),
		Notes:    repositories.NewNoteRepository(db.DB()),
		Partners: partners,
		Logger:   appLog,
	})

	done := make(chan bool, 1)
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(fmt.Sprintf(":%d", cfg.Server.Port))
	}()

	go gracefulShutdown(app, appLog, done)

	select {
	case <-done:
		return nil
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		<-done
		return nil
	}
}
