package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"civic-reports/internal/config"
)

// New opens the Postgres connection, applies pool settings and runs the
// schema migrations.
func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if cfg.Environment == "development" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	database, err := gorm.Open(postgres.Open(cfg.DB.DSN), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}

	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.ConnMaxLifetime != "" {
		if lifetime, err := time.ParseDuration(cfg.DB.ConnMaxLifetime); err == nil {
			sqlDB.SetConnMaxLifetime(lifetime)
		} else {
			log.Warn().Str("value", cfg.DB.ConnMaxLifetime).Msg("ignoring invalid DB_CONN_MAX_LIFETIME")
		}
	}

	if err := runMigrations(database); err != nil {
		return nil, err
	}

	log.Info().Msg("database ready")
	return database, nil
}
