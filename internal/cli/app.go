package cli

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"briefy/internal/config"
	"briefy/internal/database"
	"briefy/internal/events"
	"briefy/internal/llm/client"
	"briefy/internal/logger"
	"briefy/internal/observability"
	"briefy/internal/prompts"
	"briefy/internal/services"
)

// App holds the process-wide resources a command needs. Commands call
// startup with only the parts they use and always defer shutdown.
type App struct {
	cfg *config.Config
	log *logger.Logger

	db       *gorm.DB
	svc      *services.Services
	gateway  *client.Gateway
	keys     *services.KeyringService
	redis    *redis.Client
	dbClose  func() error
	otelStop func(context.Context) error
}

func newApp(configFile string) (*App, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return &App{cfg: cfg, log: log}, nil
}

// openKeyring is lazy; a keyring that cannot be opened only disables the
// fallback credential source.
func (a *App) openKeyring() (*services.KeyringService, error) {
	if a.keys != nil {
		return a.keys, nil
	}
	keys, err := services.NewKeyringService(a.cfg.Keyring.Dir, a.cfg.Keyring.Password)
	if err != nil {
		return nil, err
	}
	a.keys = keys
	return keys, nil
}

func (a *App) openGateway() (*client.Gateway, error) {
	if a.gateway != nil {
		return a.gateway, nil
	}
	provider, err := client.ParseProvider(a.cfg.AI.Provider)
	if err != nil {
		return nil, err
	}
	apiKey := a.cfg.APIKey()
	if apiKey == "" {
		if keys, err := a.openKeyring(); err == nil {
			apiKey = keys.Resolve(string(provider), "")
		} else {
			a.log.Warn("keyring unavailable", "error", err)
		}
	}
	a.gateway = client.New(client.Config{
		Provider:  provider,
		APIKey:    apiKey,
		Model:     a.cfg.AI.Model,
		MaxTokens: a.cfg.AI.MaxTokens,
	})
	return a.gateway, nil
}

// report logs configuration problems loudly and keeps going.
func (a *App) report() {
	hasKey := false
	if gw, err := a.openGateway(); err == nil {
		hasKey = gw.Validate() == nil
	}
	for _, d := range a.cfg.Diagnostics(hasKey) {
		switch d.Severity {
		case config.SeverityError:
			a.log.Error(d.Message, "hint", d.Hint)
		default:
			a.log.Warn(d.Message, "hint", d.Hint)
		}
	}
}

func (a *App) dbConfig() database.Config {
	return database.Config{
		DSN:      a.cfg.Database.URL,
		Path:     a.cfg.Database.Path,
		LogLevel: a.cfg.Database.GormLogLevel(),
		Logger:   a.log,
	}
}

// startup opens the database and builds the services. migrate controls
// whether AutoMigrate runs first.
func (a *App) startup(ctx context.Context, migrate bool) error {
	events.EnableLoggerEmitter(a.log)
	a.otelStop = observability.Init(ctx, a.log, observability.Config{
		Exporter:    a.cfg.Telemetry.Exporter,
		Endpoint:    a.cfg.Telemetry.Endpoint,
		ServiceName: a.cfg.Telemetry.ServiceName,
		Version:     Version,
	})

	dbCfg := a.dbConfig()
	open := database.Open
	if migrate {
		open = database.Init
	}
	db, err := open(dbCfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.db = db
	if sqlDB, err := db.DB(); err != nil {
		a.log.Error("failed to get sql.DB", "error", err)
	} else {
		a.dbClose = sqlDB.Close
	}
	a.log.Info("database ready", "driver", dbCfg.Driver())

	gateway, err := a.openGateway()
	if err != nil {
		return err
	}

	var cache prompts.OverrideCache = prompts.NewMemoryCache()
	if addr := a.cfg.Redis.Addr; addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			a.log.Warn("redis unreachable, using in-process prompt cache", "addr", addr, "error", err)
			a.redis.Close()
			a.redis = nil
		} else {
			cache = prompts.NewRedisCache(a.redis)
		}
	}

	a.svc = services.NewServices(db, services.Deps{
		Gateway:  gateway,
		Cache:    cache,
		CacheTTL: a.cfg.Prompts.CacheTTL,
		Logger:   a.log,
	})
	a.report()
	return nil
}

// shutdown releases everything startup opened.
func (a *App) shutdown(ctx context.Context) {
	if a.otelStop != nil {
		if err := a.otelStop(ctx); err != nil {
			a.log.Warn("failed to flush traces", "error", err)
		}
	}
	if a.redis != nil {
		a.redis.Close()
		a.redis = nil
	}
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			a.log.Error("failed to close database", "error", err)
		} else {
			a.log.Debug("database closed")
		}
		a.dbClose = nil
	}
	a.log.Sync()
}
