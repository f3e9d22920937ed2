package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/socialbattery/internal/common"
	"github.com/dmitrijs2005/socialbattery/internal/models"
	"github.com/dmitrijs2005/socialbattery/internal/store"
)

func runKVContract(t *testing.T, newKV func(t *testing.T) KV) {
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		kv := newKV(t)
		_, err := kv.Get(ctx, "missing")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, kv.Set(ctx, "k", []byte("v1")))
		got, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), got)
	})

	t.Run("set overwrites", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, kv.Set(ctx, "k", []byte("v1")))
		require.NoError(t, kv.Set(ctx, "k", []byte("v2")))
		got, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), got)
	})

	t.Run("delete removes key", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, kv.Set(ctx, "k", []byte("v1")))
		require.NoError(t, kv.Delete(ctx, "k"))
		_, err := kv.Get(ctx, "k")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("delete of missing key is not an error", func(t *testing.T) {
		kv := newKV(t)
		assert.NoError(t, kv.Delete(ctx, "missing"))
	})
}

func TestMemoryKV_Contract(t *testing.T) {
	runKVContract(t, func(t *testing.T) KV {
		return NewMemoryKV()
	})
}

func TestFileKV_Contract(t *testing.T) {
	runKVContract(t, func(t *testing.T) KV {
		kv, err := NewFileKV(t.TempDir())
		require.NoError(t, err)
		return kv
	})
}

func TestSqliteKV_Contract(t *testing.T) {
	n := 0
	runKVContract(t, func(t *testing.T) KV {
		n++
		kv, err := NewSqliteKV(fmt.Sprintf("file:kvtest%d?mode=memory&cache=shared", n))
		require.NoError(t, err)
		t.Cleanup(func() { _ = kv.Close() })
		return kv
	})
}

func TestManager_ActivateCurrentClear(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryKV(), store.NewMemoryStore())

	got, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, m.Activate(ctx, "alice@example.com"))

	got, err = m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got)

	require.NoError(t, m.Clear(ctx))
	got, err = m.Current(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestManager_ActivateReplacesPreviousSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryKV(), store.NewMemoryStore())

	require.NoError(t, m.Activate(ctx, "alice@example.com"))
	require.NoError(t, m.Activate(ctx, "bob@example.com"))

	got, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", got)
}

func TestManager_CorruptPointerCountsAsNoSession(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, common.SessionBlobName, []byte(`{broken`)))

	m := NewManager(kv, store.NewMemoryStore())
	got, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	record, err := m.Resume(ctx)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestManager_ResumeResolvesAgainstStore(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Upsert(ctx, models.NewUserRecord("alice@example.com", "hunter2")))

	m := NewManager(NewMemoryKV(), st)
	require.NoError(t, m.Activate(ctx, "alice@example.com"))

	record, err := m.Resume(ctx)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "alice@example.com", record.Identifier)
}

func TestManager_ResumeOfDeletedIdentityIsNil(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryKV(), store.NewMemoryStore())
	require.NoError(t, m.Activate(ctx, "ghost@example.com"))

	record, err := m.Resume(ctx)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestManager_ResumeAfterRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st := store.NewMemoryStore()
	require.NoError(t, st.Upsert(ctx, models.NewUserRecord("alice@example.com", "hunter2")))

	kv1, err := NewFileKV(dir)
	require.NoError(t, err)
	require.NoError(t, NewManager(kv1, st).Activate(ctx, "alice@example.com"))

	kv2, err := NewFileKV(dir)
	require.NoError(t, err)
	record, err := NewManager(kv2, st).Resume(ctx)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "alice@example.com", record.Identifier)
}
