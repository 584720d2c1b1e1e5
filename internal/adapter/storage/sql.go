package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"taskboard/internal/core/ports"
)

const createLocalStorageTable = `
CREATE TABLE IF NOT EXISTS local_storage (
  storage_key VARCHAR(255) NOT NULL PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL
)`

// SQL is a key/value store kept in a local_storage table.
type SQL struct {
	db *sqlx.DB
}

var _ ports.SessionStorage = (*SQL)(nil)

// NewSQL prepares the local_storage table.
func NewSQL(ctx context.Context, db *sqlx.DB) (*SQL, error) {
	if _, err := db.ExecContext(ctx, createLocalStorageTable); err != nil {
		return nil, err
	}
	return &SQL{db: db}, nil
}

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, s.db.Rebind("SELECT value FROM local_storage WHERE storage_key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set replaces the value in one transaction; DELETE then INSERT works on both
// sqlite and mysql.
func (s *SQL) Set(ctx context.Context, key, value string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM local_storage WHERE storage_key = ?"), key); err != nil {
		return err
	}
	if _, err := tx.ExecContext(
		ctx,
		tx.Rebind("INSERT INTO local_storage (storage_key, value, updated_at) VALUES (?, ?, ?)"),
		key, value, time.Now().UTC(),
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM local_storage WHERE storage_key = ?"), key)
	return err
}

func (s *SQL) Clear(ctx context.Context, prefix string) error {
	_, err := s.db.ExecContext(
		ctx,
		s.db.Rebind("DELETE FROM local_storage WHERE storage_key LIKE ? ESCAPE '!'"),
		escapeLike(prefix)+"%",
	)
	return err
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func escapeLike(value string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(value)
}
