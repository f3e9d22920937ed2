package store

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/socialbattery/internal/models"
)

// MemoryStore keeps records in memory. Used by the CLI in ephemeral mode and
// heavily by tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records []models.UserRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadAll(_ context.Context) ([]models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.UserRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) SaveAll(_ context.Context, records []models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]models.UserRecord, len(records))
	copy(s.records, records)
	return nil
}

func (s *MemoryStore) Find(_ context.Context, identifier string) (*models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findIn(s.records, identifier)
}

func (s *MemoryStore) Upsert(_ context.Context, record models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = upsertIn(s.records, record)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
