// Package store persists user records. The whole user set is treated as one
// logical blob: LoadAll returns every record, SaveAll replaces every record.
// Backends range from an in-memory map to Postgres and S3; all of them
// implement the same Store interface and pass the same contract tests.
package store

import (
	"context"

	"github.com/dmitrijs2005/socialbattery/internal/common"
	"github.com/dmitrijs2005/socialbattery/internal/models"
)

// Store is the persistence boundary for user records.
//
// A corrupt or unreadable blob is treated as an empty store: LoadAll returns
// no records and no error, and the next SaveAll overwrites the damage.
type Store interface {
	// LoadAll returns every stored record.
	LoadAll(ctx context.Context) ([]models.UserRecord, error)
	// SaveAll replaces the full record set.
	SaveAll(ctx context.Context, records []models.UserRecord) error
	// Find returns the record with the given identifier, or
	// common.ErrorNotFound.
	Find(ctx context.Context, identifier string) (*models.UserRecord, error)
	// Upsert inserts the record or replaces the one sharing its identifier.
	Upsert(ctx context.Context, record models.UserRecord) error
	// Close releases backend resources.
	Close() error
}

func findIn(records []models.UserRecord, identifier string) (*models.UserRecord, error) {
	for i := range records {
		if records[i].Identifier == identifier {
			r := records[i]
			return &r, nil
		}
	}
	return nil, common.ErrorNotFound
}

func upsertIn(records []models.UserRecord, record models.UserRecord) []models.UserRecord {
	for i := range records {
		if records[i].Identifier == record.Identifier {
			records[i] = record
			return records
		}
	}
	return append(records, record)
}
