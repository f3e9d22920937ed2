package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/socialbattery/internal/common"
	"github.com/dmitrijs2005/socialbattery/internal/dbx"
	"github.com/dmitrijs2005/socialbattery/internal/models"
	"github.com/dmitrijs2005/socialbattery/internal/store/migrations"
)

// PostgresStore keeps one row per user. Parameters and the cached forecast
// are stored as JSONB columns so the blob semantics of the Store interface
// survive the relational layout.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	s := &PostgresStore{db: db}

	if err := s.RunMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return s, nil
}

func (s *PostgresStore) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, s.db, "."); err != nil {
		return err
	}

	return nil
}

func scanRecord(row interface{ Scan(...any) error }) (*models.UserRecord, error) {
	var r models.UserRecord
	var parameters []byte
	var lastForecast sql.Null[[]byte]

	if err := row.Scan(&r.Identifier, &r.Credential, &parameters, &lastForecast); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(parameters, &r.Parameters); err != nil {
		return nil, fmt.Errorf("error decoding parameters: %w", err)
	}
	if lastForecast.Valid {
		var f models.ForecastResult
		if err := json.Unmarshal(lastForecast.V, &f); err != nil {
			return nil, fmt.Errorf("error decoding forecast: %w", err)
		}
		r.LastForecast = &f
	}

	return &r, nil
}

func recordArgs(record models.UserRecord) (parameters []byte, lastForecast any, err error) {
	parameters, err = json.Marshal(record.Parameters)
	if err != nil {
		return nil, nil, err
	}
	if record.LastForecast != nil {
		data, err := json.Marshal(record.LastForecast)
		if err != nil {
			return nil, nil, err
		}
		lastForecast = data
	}
	return parameters, lastForecast, nil
}

func (s *PostgresStore) upsert(ctx context.Context, q dbx.DBTX, record models.UserRecord) error {
	parameters, lastForecast, err := recordArgs(record)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO users (identifier, credential, parameters, last_forecast)
	     VALUES ($1, $2, $3, $4)
	     ON CONFLICT (identifier) DO UPDATE
	        SET credential = excluded.credential,
	            parameters = excluded.parameters,
	            last_forecast = excluded.last_forecast
	     `

	if _, err := q.ExecContext(ctx, query, record.Identifier, record.Credential, parameters, lastForecast); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (s *PostgresStore) LoadAll(ctx context.Context) ([]models.UserRecord, error) {
	query :=
		`SELECT identifier, credential, parameters, last_forecast FROM users
	     ORDER BY identifier
	     `

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	records := []models.UserRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *PostgresStore) SaveAll(ctx context.Context, records []models.UserRecord) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
			return fmt.Errorf("error performing sql request: %w", err)
		}
		for _, record := range records {
			if err := s.upsert(ctx, tx, record); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PostgresStore) Find(ctx context.Context, identifier string) (*models.UserRecord, error) {
	query :=
		`SELECT identifier, credential, parameters, last_forecast FROM users
	     WHERE identifier = $1
	     `

	r, err := scanRecord(s.db.QueryRowContext(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return r, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, record models.UserRecord) error {
	return s.upsert(ctx, s.db, record)
}

func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
