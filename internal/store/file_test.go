package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/socialbattery/internal/models"
)

func TestFileStore_CorruptBlobBehavesLikeEmptyStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json at all`), 0o600))

	s, err := NewFileStore(dir, "users.json")
	require.NoError(t, err)

	records, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	// next write overwrites the damage
	require.NoError(t, s.Upsert(ctx, models.NewUserRecord("alice@example.com", "hunter2")))

	records, err = s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s1, err := NewFileStore(dir, "users.json")
	require.NoError(t, err)
	require.NoError(t, s1.Upsert(ctx, models.NewUserRecord("alice@example.com", "hunter2")))

	s2, err := NewFileStore(dir, "users.json")
	require.NoError(t, err)
	got, err := s2.Find(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got.Credential)
}
