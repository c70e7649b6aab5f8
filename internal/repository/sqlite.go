package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bachelorious/pkg/customerror"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the documents in a single table of a local SQLite file.
type SQLiteStore struct {
	DB   *sql.DB
	Path string
}

// NewSQLiteStore opens (or creates) the database at path with WAL journaling
// and makes sure the documents table exists.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, customerror.NewError("sqliteStore.NewSQLiteStore", "sqlite:"+path, err.Error())
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, customerror.NewError("sqliteStore.NewSQLiteStore", "sqlite:"+path, err.Error())
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, customerror.NewError("sqliteStore.NewSQLiteStore", "sqlite:"+path, err.Error())
	}
	store := &SQLiteStore{DB: db, Path: path}
	if err := store.CreateTables(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (store *SQLiteStore) CreateTables(ctx context.Context) error {
	createTableQuery := `
	CREATE TABLE IF NOT EXISTS documents (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := store.DB.ExecContext(ctx, createTableQuery)
	if err != nil {
		return customerror.NewError("sqliteStore.CreateTables", store.Endpoint(), err.Error())
	}
	return nil
}

func (store *SQLiteStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := store.DB.QueryRowContext(ctx, `SELECT value FROM documents WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, customerror.NewError("sqliteStore.Load", store.Endpoint(), err.Error())
	}
	return value, true, nil
}

func (store *SQLiteStore) Save(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO documents (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	_, err := store.DB.ExecContext(ctx, query, key, value)
	if err != nil {
		return customerror.NewError("sqliteStore.Save", store.Endpoint(), err.Error())
	}
	return nil
}

func (store *SQLiteStore) Remove(ctx context.Context, key string) error {
	_, err := store.DB.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, key)
	if err != nil {
		return customerror.NewError("sqliteStore.Remove", store.Endpoint(), err.Error())
	}
	return nil
}

func (store *SQLiteStore) Endpoint() string {
	return "sqlite:" + store.Path
}

func (store *SQLiteStore) Close() error {
	return store.DB.Close()
}
