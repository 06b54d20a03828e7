// Package store persists trades, history events, cached prices and user
// settings in PostgreSQL and exposes them as the streaming cursors the
// replay engine consumes.
package store

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the database connection settings.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Store wraps the gorm handle. All query logging goes through zap, so the
// gorm logger stays silent.
type Store struct {
	db  *gorm.DB
	sql *sql.DB
	log *zap.Logger
}

// Open connects to PostgreSQL and configures the connection pool. A nil
// logger disables logging.
func Open(cfg Config, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	gcfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	gdb, err := gorm.Open(postgres.Open(cfg.DSN), gcfg)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	sqldb, err := gdb.DB()
	if err != nil {
		return nil, errors.Wrap(err, "accessing connection pool")
	}

	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqldb.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	return &Store{db: gdb, sql: sqldb, log: log}, nil
}

// Migrate creates or updates the schema.
func (s *Store) Migrate() error {
	err := s.db.AutoMigrate(
		&tradeRow{},
		&historyEventRow{},
		&priceRow{},
		&settingRow{},
		&ignoredAssetRow{},
	)
	return errors.Wrap(err, "migrating schema")
}

// Ping verifies the connection is alive.
func (s *Store) Ping() error {
	return s.sql.Ping()
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}
	return s.sql.Close()
}
