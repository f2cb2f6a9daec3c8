// Package app assembles the store, notifier, services and dispatcher from a Config.
package app

import (
	"context"
	"fmt"
	"log"

	"varal-dos-sonhos/config"
	"varal-dos-sonhos/connection"
	"varal-dos-sonhos/db"
	"varal-dos-sonhos/handler"
	"varal-dos-sonhos/notify"
	"varal-dos-sonhos/services"
	"varal-dos-sonhos/store"
)

type App struct {
	Dispatcher *handler.Dispatcher
	notifier   *notify.Async
	closers    []func() error
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	for _, w := range cfg.Warnings() {
		log.Printf("⚠️  %s", w)
	}

	a := &App{}

	gateway, err := a.gateway(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	next, err := a.backend(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.notifier = notify.NewAsync(next, cfg.NotifyTimeout)

	h := &handler.Handlers{
		Catalog:  &services.CatalogService{Store: gateway, Tables: cfg.Tables},
		Users:    &services.UserService{Store: gateway, Table: cfg.Tables.Users, Notifier: a.notifier},
		Adoption: &services.AdoptionService{Store: gateway, Table: cfg.Tables.Donations, Notifier: a.notifier},
	}
	a.Dispatcher = handler.NewDispatcher(cfg.RequestTimeout, h.Routes()...)
	return a, nil
}

func (a *App) gateway(cfg *config.Config) (store.Gateway, error) {
	if cfg.Store != config.StorePostgres {
		return store.NewAirtable(cfg.Airtable.Endpoint, cfg.Airtable.BaseID, cfg.Airtable.APIKey)
	}

	database, err := db.InitDB(cfg.Postgres)
	if err != nil {
		return nil, err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	a.closers = append(a.closers, sqlDB.Close)
	return &db.Gateway{DB: database}, nil
}

// backend picks the delivery path: the Redis queue, then direct SMTP, then log only.
func (a *App) backend(ctx context.Context, cfg *config.Config) (notify.Notifier, error) {
	switch {
	case cfg.RedisHost != "":
		client, err := connection.NewRedis(ctx, cfg.RedisHost)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		log.Printf("Queueing notifications on %s", cfg.Mail.Queue)
		return notify.NewQueue(client, cfg.Mail.Queue), nil

	case cfg.Mail.SMTPHost != "":
		var next notify.Notifier = notify.NewMailer(cfg.Mail)
		if cfg.Mail.ArchiveBucket != "" {
			client, err := notify.NewS3Client(ctx)
			if err != nil {
				return nil, err
			}
			next = notify.NewArchive(next, client, cfg.Mail.ArchiveBucket)
		}
		log.Printf("Sending notifications through %s:%d", cfg.Mail.SMTPHost, cfg.Mail.SMTPPort)
		return next, nil
	}

	log.Println("No mail backend configured; notifications are only logged")
	return notify.LogNotifier{}, nil
}

// Flush blocks until every notification sent so far has been handled.
func (a *App) Flush() {
	if a.notifier != nil {
		a.notifier.Wait()
	}
}

// Close waits for pending notifications, then releases connections.
func (a *App) Close() {
	a.Flush()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("close: %v", err)
		}
	}
	a.closers = nil
}
