// Package app assembles the client: configuration, credentials, the
// remote adapter, the state stores, and the push channel.
package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/credential"
	"github.com/taskboard/taskboard/internal/persist"
	"github.com/taskboard/taskboard/internal/push"
	"github.com/taskboard/taskboard/internal/remote"
	"github.com/taskboard/taskboard/internal/store"
)

// App owns the application-wide singletons. Its lifecycle is the
// lifetime of the process; construct it once and share the registry.
type App struct {
	registry   *store.Registry
	subscriber *push.Subscriber
	kv         *persist.SQLiteKV
	log        zerolog.Logger
}

// New builds the full client from configuration: resolves the API
// token, opens local storage, wires the remote services into the two
// stores, and prepares (but does not start) the push subscriber.
func New(cfg *config.Config) (*App, error) {
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("server_url is not configured")
	}

	token, err := credential.Token()
	if err != nil {
		return nil, fmt.Errorf("resolving API token: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)

	kv, err := persist.OpenSQLiteKV(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("opening local storage: %w", err)
	}

	client := remote.NewClient(cfg.ServerURL, token).
		WithLogger(log.With().Str("component", "remote").Logger())

	tasks := store.NewTaskStore(remote.NewTaskService(client), cfg.PageSize)
	notifications := store.NewNotificationStore(
		remote.NewNotificationService(client), kv,
	)

	a := &App{
		registry: store.NewRegistry(tasks, notifications),
		kv:       kv,
		log:      log,
	}

	if cfg.PushURL != "" {
		a.subscriber = push.New(cfg.PushURL, token, notifications).
			WithLogger(log.With().Str("component", "push").Logger())
	}

	return a, nil
}

// Registry returns the store registry.
func (a *App) Registry() *store.Registry {
	return a.registry
}

// StartPush begins consuming the push channel, when one is configured.
func (a *App) StartPush() {
	if a.subscriber != nil {
		a.subscriber.Start()
	}
}

// Close stops the push channel and releases local storage.
func (a *App) Close() error {
	if a.subscriber != nil {
		a.subscriber.Stop()
	}
	return a.kv.Close()
}
