package storage

import (
	"context"
	"log/slog"

	"evaluation-backend/internal/config"
)

type Provider interface {
	Close() error
	Ping(ctx context.Context) error
	GetSchemaVersion(ctx context.Context) (int, error)

	// Evaluation methods
	ListEvaluations(ctx context.Context) ([]Evaluation, error)
	SaveEvaluation(ctx context.Context, evaluation Evaluation, vote VoteControl) error
	Statistics(ctx context.Context, today string) (*Statistics, error)

	// Vote-control ledger methods
	GetVoteControl(ctx context.Context, deviceID string) (*VoteControl, error)
	ClearVoteControl(ctx context.Context) (int64, error)

	// Audit trail methods
	AppendSystemLog(ctx context.Context, entry SystemLogEntry) error
	ListSystemLog(ctx context.Context, limit int) ([]SystemLogEntry, error)
}

func NewProvider(config *config.Storage) Provider {
	switch {
	case config.SQLite != nil:
		provider := NewSQLiteProvider(config)
		if provider == nil {
			return nil
		}
		if err := provider.runMigrations("sqlite3"); err != nil {
			slog.Error("Failed to run migrations", "error", err)
			return nil
		}
		return provider

	default:
		slog.Error("Unsupported storage configuration", "config", config)
	}

	return nil
}
