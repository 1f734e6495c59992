package db

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options controls pool sizing and connection retry behaviour.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectRetries  int
	RetryBackoff    time.Duration
	LogSQL          bool
}

// NewMySQL returns a pooled GORM DB instance. The initial connection is
// health-checked with a ping and retried with exponential backoff.
func NewMySQL(ctx context.Context, dsn string, opts Options) (*gorm.DB, error) {
	logMode := logger.Warn
	if opts.LogSQL {
		logMode = logger.Info
	}

	var (
		db  *gorm.DB
		err error
	)
	err = Retry(ctx, opts.ConnectRetries, opts.RetryBackoff, func() error {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger:         logger.Default.LogMode(logMode),
			TranslateError: true,
		})
		if err != nil {
			return err
		}
		return Ping(ctx, db)
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	return db, nil
}

// Ping checks that the pool can hand out a live connection.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return sqlDB.PingContext(pingCtx)
}

// Retry runs fn up to attempts times, doubling the wait after each failure.
func Retry(ctx context.Context, attempts int, backoff time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	wait := backoff
	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		log.Warnf("db: attempt %d/%d failed: %v (retrying in %s)", i, attempts, err, wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
	return err
}
