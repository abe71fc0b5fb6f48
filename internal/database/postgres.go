package database

import (
	"fmt"
	"time"

	"admarket-api/internal/config"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresConnection opens a pooled GORM connection to Postgres. The
// initial connect is retried with exponential backoff because managed
// databases often come up a few seconds after the app container; once the
// backoff budget is exhausted the error is returned and startup must abort.
func NewPostgresConnection(cfg config.DatabaseConfig) (*gorm.DB, error) {
	// Simple protocol avoids server-side prepared statement name collisions
	// (SQLSTATE 42P05) when the pool is shared across handlers. It must be
	// set through the driver config, not the DSN: appending it as a keyword
	// would corrupt URL-form DSNs and pgx v5 no longer accepts it as a
	// connection parameter.
	dialector := postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true,
	})

	var db *gorm.DB

	connect := func() error {
		var err error
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to get underlying sql.DB: %w", err))
		}
		if err := sqlDB.Ping(); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = time.Duration(cfg.ConnectTimeout) * time.Second

	if err := backoff.Retry(connect, policy); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Bounded pool instead of a single shared session: concurrent requests
	// each acquire a connection, execute, and release it.
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	return db, nil
}

// HealthCheck performs the trivial round trip the health endpoint reports on.
func HealthCheck(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database instance is nil")
	}

	if db.Statement == nil {
		return fmt.Errorf("database is not properly initialized")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if sqlDB == nil {
		return fmt.Errorf("underlying sql.DB is nil")
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}
