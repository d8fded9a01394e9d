package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"briefy/internal/logger"
	"briefy/internal/models"
)

// Config holds DB configuration. A non-empty DSN selects Postgres (the hosted
// backend); otherwise a local SQLite file at Path is used.
type Config struct {
	DSN      string
	Path     string
	LogLevel gormLogger.LogLevel
	Logger   *logger.Logger
}

// Driver reports which dialect Init will open for cfg.
func (cfg Config) Driver() string {
	if strings.TrimSpace(cfg.DSN) != "" {
		return "postgres"
	}
	return "sqlite"
}

// Init opens the database and runs migrations
func Init(cfg Config) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Open connects without migrating.
func Open(cfg Config) (*gorm.DB, error) {
	if cfg.LogLevel == 0 {
		cfg.LogLevel = gormLogger.Warn
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	gormLog := gormLogger.New(
		cfg.Logger.With("component", "gorm"),
		gormLogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  cfg.LogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	gormCfg := &gorm.Config{Logger: gormLog}

	if cfg.Driver() == "postgres" {
		db, err := gorm.Open(postgres.Open(cfg.DSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, nil
	}

	if cfg.Path == "" {
		cfg.Path = GetDefaultDBPath()
	}
	// Paths that already carry query parameters (in-memory test databases)
	// are used verbatim.
	dsn := cfg.Path
	if !strings.Contains(dsn, "?") {
		dsn = fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", cfg.Path)
	}
	db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite allows a single writer.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return db, nil
}

// Migrate runs all automigrations. Keep the model list in one place.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Project{},
		&models.PullRequest{},
		&models.Flowchart{},
		&models.Epic{},
		&models.Task{},
		&models.SupportMaterial{},
		&models.GlobalPrompt{},
		&models.VideoExtraction{},
		&models.AIAnalysis{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
