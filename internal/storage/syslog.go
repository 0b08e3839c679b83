package storage

import (
	"context"
	"fmt"
)

// AppendSystemLog appends one audit trail entry. Callers treat this as
// best-effort; entries are never mutated or deleted.
func (p *SQLProvider) AppendSystemLog(ctx context.Context, entry SystemLogEntry) error {
	_, err := p.db.NamedExecContext(ctx, `
		INSERT INTO system_log (action, details, timestamp)
		VALUES (:action, :details, :timestamp)`, entry)
	if err != nil {
		return fmt.Errorf("append system log: %w", err)
	}
	return nil
}

// ListSystemLog returns the most recent audit entries, newest first.
// A limit <= 0 returns everything.
func (p *SQLProvider) ListSystemLog(ctx context.Context, limit int) ([]SystemLogEntry, error) {
	query := `
		SELECT id, action, COALESCE(details, '') AS details, timestamp
		FROM system_log
		ORDER BY id DESC`
	entries := []SystemLogEntry{}

	var err error
	if limit > 0 {
		err = p.db.SelectContext(ctx, &entries, query+` LIMIT ?`, limit)
	} else {
		err = p.db.SelectContext(ctx, &entries, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list system log: %w", err)
	}
	return entries, nil
}
