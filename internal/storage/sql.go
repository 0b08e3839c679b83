package storage

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"evaluation-backend/internal/config"
)

type SQLProvider struct {
	db *sqlx.DB

	config *config.Storage

	logger *slog.Logger
}

func NewSQLProvider(config *config.Storage, driverName string, dataSource string) (provider *SQLProvider) {
	db, err := sqlx.Open(driverName, dataSource)
	if err != nil {
		slog.Error("Failed to open database", "driver", driverName, "error", err)
		return nil
	}

	logger := slog.With("component", "storage")

	return &SQLProvider{
		db:     db,
		config: config,
		logger: logger,
	}
}

func (p *SQLProvider) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *SQLProvider) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// GetSchemaVersion returns the highest applied migration version, or 0
// for a zero-state database.
func (p *SQLProvider) GetSchemaVersion(ctx context.Context) (int, error) {
	if err := p.ensureMigrationTable(ctx); err != nil {
		return 0, err
	}

	var version int
	err := p.db.GetContext(ctx, &version, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`)
	if err != nil {
		return 0, err
	}
	return version, nil
}

func (p *SQLProvider) ensureMigrationTable(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	return err
}
