package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/socialbattery/internal/filex"
	"github.com/dmitrijs2005/socialbattery/internal/models"
)

// FileStore persists the record set as a single JSON file, written atomically.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore ensures dir exists and stores records in dir/<filename>.
func NewFileStore(dir string, filename string) (*FileStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(abs, filename)}, nil
}

func (s *FileStore) read() []models.UserRecord {
	data, err := filex.ReadIfExists(s.path)
	if err != nil || len(data) == 0 {
		return []models.UserRecord{}
	}

	var records []models.UserRecord
	if err := json.Unmarshal(data, &records); err != nil {
		// unparseable blob behaves like an empty store
		return []models.UserRecord{}
	}
	return records
}

func (s *FileStore) write(records []models.UserRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return filex.WriteAtomic(s.path, data)
}

func (s *FileStore) LoadAll(_ context.Context) ([]models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(), nil
}

func (s *FileStore) SaveAll(_ context.Context, records []models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(records)
}

func (s *FileStore) Find(_ context.Context, identifier string) (*models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return findIn(s.read(), identifier)
}

func (s *FileStore) Upsert(_ context.Context, record models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(upsertIn(s.read(), record))
}

func (s *FileStore) Close() error {
	return nil
}
