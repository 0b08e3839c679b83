package storage

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"

	"evaluation-backend/internal/config"
)

type SQLiteProvider struct {
	SQLProvider
}

func NewSQLiteProvider(config *config.Storage) (provider *SQLiteProvider) {
	dataSource := config.SQLite.Path
	if dataSource == ":memory:" {
		// Every pooled connection would otherwise see its own empty
		// in-memory database.
		dataSource = "file::memory:?cache=shared"
	}

	p := NewSQLProvider(config, "sqlite3", dataSource)
	if p == nil {
		return nil
	}

	// SQLite allows a single writer; one pooled connection avoids
	// SQLITE_BUSY under concurrent requests.
	p.db.SetMaxOpenConns(1)

	return &SQLiteProvider{
		SQLProvider: *p,
	}
}

// isPrimaryKeyConflict reports whether err is a SQLite primary-key
// constraint violation.
func isPrimaryKeyConflict(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
