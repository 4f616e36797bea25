package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// PostgresOptions tunes the connection pool. A composite report fans out one query per
// section, so MaxConns should stay above the largest section count.
type PostgresOptions struct {
	MaxConns    int
	MaxLifetime time.Duration
	SlowQuery   time.Duration
}

// ConnectPostgres opens the report database and verifies it answers a ping.
func ConnectPostgres(dsn string, opts PostgresOptions, logger zerolog.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn must not be empty")
	}
	if opts.MaxConns <= 0 {
		opts.MaxConns = 16
	}
	if opts.SlowQuery <= 0 {
		opts.SlowQuery = 500 * time.Millisecond
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(zerologWriter{logger: logger.With().Str("component", "gorm").Logger()}, gormlogger.Config{
			SlowThreshold:             opts.SlowQuery,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(opts.MaxConns)
	sqlDB.SetMaxIdleConns(opts.MaxConns / 2)
	if opts.MaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.MaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("unable to reach postgres: %w", err)
	}

	return db, nil
}

type zerologWriter struct {
	logger zerolog.Logger
}

func (w zerologWriter) Printf(format string, args ...interface{}) {
	w.logger.Warn().Msgf(format, args...)
}
