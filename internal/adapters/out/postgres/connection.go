package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectionConfig describes how to reach PostgreSQL.
type ConnectionConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	// ConnectTimeout bounds the total time spent retrying the first connection.
	ConnectTimeout time.Duration
}

// DSN renders the config as a lib/pq connection URL.
func (c ConnectionConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	return u.String()
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Open connects through lib/pq, waits until the database answers and returns
// both the GORM handle and the underlying *sql.DB used for migrations.
func Open(ctx context.Context, cfg ConnectionConfig, logger *slog.Logger) (*gorm.DB, *sql.DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err = WaitForDatabase(ctx, sqlDB, cfg.ConnectTimeout, logger); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}

	gormDB, err := NewGormDB(sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}

	return gormDB, sqlDB, nil
}

// NewGormDB wraps an existing connection pool.
func NewGormDB(sqlDB *sql.DB) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
}

// WaitForDatabase pings db with exponential backoff until it answers or
// maxElapsed passes. A zero maxElapsed defaults to one minute.
func WaitForDatabase(ctx context.Context, db Pinger, maxElapsed time.Duration, logger *slog.Logger) error {
	if maxElapsed <= 0 {
		maxElapsed = time.Minute
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = maxElapsed

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		pingErr := db.PingContext(ctx)
		if pingErr != nil && ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		if pingErr != nil {
			logger.Warn("database not ready", "attempt", attempt, "error", pingErr)
		}
		return pingErr
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return fmt.Errorf("postgres unreachable after %d attempts: %w", attempt, err)
	}

	return nil
}
