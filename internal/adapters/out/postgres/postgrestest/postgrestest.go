// Package postgrestest starts a disposable PostgreSQL container with the
// service schema applied. It is meant for integration test suites only.
package postgrestest

import (
	"context"
	"database/sql"
	"time"

	postgres_adapter "climasite/internal/adapters/out/postgres"
	"climasite/internal/adapters/out/postgres/migrations"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Database bundles a running container with open connections to it.
type Database struct {
	Container *postgres.PostgresContainer
	SQL       *sql.DB
	Gorm      *gorm.DB
}

// Start runs postgres:15-alpine and migrates it to the latest schema version.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	db := &Database{Container: container}
	if err = db.connect(ctx); err != nil {
		_ = db.Terminate(ctx)
		return nil, err
	}

	return db, nil
}

func (d *Database) connect(ctx context.Context) error {
	dsn, err := d.Container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return err
	}

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	d.SQL = sqlDB

	if err = migrations.Up(sqlDB); err != nil {
		return err
	}

	d.Gorm, err = postgres_adapter.NewGormDB(sqlDB)
	return err
}

// Truncate empties every service table.
func (d *Database) Truncate() error {
	return d.Gorm.Exec("TRUNCATE TABLE order_notes, order_items, orders, payment_webhook_events").Error
}

// Terminate closes connections and removes the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d.SQL != nil {
		_ = d.SQL.Close()
	}
	if d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
