package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/socialbattery/internal/dbx"
	"github.com/dmitrijs2005/socialbattery/internal/models"
)

// SqliteStore keeps the record set as a single JSON blob in a kv table.
// Suitable for the single-binary CLI deployment where the whole user set
// is small and always read and written together.
type SqliteStore struct {
	db   *sql.DB
	name string
}

func NewSqliteStore(dsn string, blobName string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	query := `CREATE TABLE IF NOT EXISTS blobs (
        name TEXT PRIMARY KEY,
        value BLOB NOT NULL
    )`
	if _, err := db.ExecContext(context.Background(), query); err != nil {
		db.Close()
		return nil, fmt.Errorf("error initializing schema: %w", err)
	}

	return &SqliteStore{db: db, name: blobName}, nil
}

func (s *SqliteStore) load(ctx context.Context, q dbx.DBTX) []models.UserRecord {
	var data []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM blobs WHERE name = ?`, s.name).Scan(&data)
	if err != nil {
		return []models.UserRecord{}
	}

	var records []models.UserRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return []models.UserRecord{}
	}
	return records
}

func (s *SqliteStore) save(ctx context.Context, q dbx.DBTX, records []models.UserRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}

	query := `INSERT INTO blobs (name, value) VALUES (?, ?)
	          ON CONFLICT(name) DO UPDATE SET value = excluded.value`
	if _, err := q.ExecContext(ctx, query, s.name, data); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (s *SqliteStore) LoadAll(ctx context.Context) ([]models.UserRecord, error) {
	return s.load(ctx, s.db), nil
}

func (s *SqliteStore) SaveAll(ctx context.Context, records []models.UserRecord) error {
	return s.save(ctx, s.db, records)
}

func (s *SqliteStore) Find(ctx context.Context, identifier string) (*models.UserRecord, error) {
	return findIn(s.load(ctx, s.db), identifier)
}

func (s *SqliteStore) Upsert(ctx context.Context, record models.UserRecord) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.save(ctx, tx, upsertIn(s.load(ctx, tx), record))
	})
}

func (s *SqliteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
