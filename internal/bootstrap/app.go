// Package bootstrap wires configuration, storage, and the session components
// into a running application.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mocksmith/adminctl/config"
	"github.com/mocksmith/adminctl/internal/adapters/filestore"
	"github.com/mocksmith/adminctl/internal/adapters/memstore"
	"github.com/mocksmith/adminctl/internal/adapters/nopstore"
	"github.com/mocksmith/adminctl/internal/adapters/redisstore"
	"github.com/mocksmith/adminctl/internal/apiclient"
	"github.com/mocksmith/adminctl/internal/ports"
	"github.com/mocksmith/adminctl/internal/session"
)

// App holds the wired application components.
type App struct {
	Config     config.AppConfig
	Logger     *slog.Logger
	Storage    ports.Storage
	Scheduler  *session.Scheduler
	Store      *session.Store
	Client     *apiclient.Client
	Controller *session.Controller

	redisClient redis.UniversalClient
}

// NewApp constructs the full component graph from configuration: storage
// adapter, refresh scheduler, session store, API client, and controller. The
// controller is wired as the scheduler's failure handler and as the client's
// session-expired hook, so a fatal refresh failure on either path drops the
// session to unauthenticated.
func NewApp(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	app := &App{Config: cfg, Logger: logger}

	storage, err := app.openStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	app.Storage = storage

	app.Scheduler = session.NewScheduler(session.SchedulerOptions{
		Window: cfg.Auth.RefreshWindow(),
		Logger: logger,
	})
	app.Store = session.NewStore(session.StoreOptions{
		Storage:   storage,
		Scheduler: app.Scheduler,
		Logger:    logger,
	})

	app.Client = apiclient.New(apiclient.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Store:   app.Store,
		Logger:  logger,
		OnSessionExpired: func(cause error) {
			// Late-bound: the controller is constructed right below.
			if app.Controller != nil {
				app.Controller.ForceLogout(context.Background(), cause)
			}
		},
	})

	app.Controller = session.NewController(session.ControllerOptions{
		Store:        app.Store,
		API:          app.Client,
		Scheduler:    app.Scheduler,
		ExpiryBuffer: cfg.Auth.ExpiryBuffer(),
		Logger:       logger,
	})

	return app, nil
}

// Close releases held resources. Safe to call once after use.
func (a *App) Close() error {
	if a.Scheduler != nil {
		a.Scheduler.Cancel()
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			return fmt.Errorf("close redis client: %w", err)
		}
	}
	return nil
}

//nolint:ireturn // returning ports.Storage lets config pick the adapter at runtime.
func (a *App) openStorage(ctx context.Context, cfg config.StorageConfig) (ports.Storage, error) {
	switch cfg.Backend {
	case config.StorageBackendFile:
		path := cfg.FilePath
		if path == "" {
			defaultPath, err := filestore.DefaultPath()
			if err != nil {
				return nil, fmt.Errorf("resolve session file path: %w", err)
			}
			path = defaultPath
		}
		a.Logger.Debug("using file session storage", "path", path)
		return filestore.New(path), nil

	case config.StorageBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		a.redisClient = client
		a.Logger.Debug("using redis session storage", "addr", cfg.Redis.Addr)
		return redisstore.NewWithOptions(client, cfg.Redis.KeyPrefix, 0), nil

	case config.StorageBackendMemory:
		return memstore.New(), nil

	case config.StorageBackendNone:
		return nopstore.New(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
