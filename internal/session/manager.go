package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrijs2005/socialbattery/internal/common"
	"github.com/dmitrijs2005/socialbattery/internal/models"
	"github.com/dmitrijs2005/socialbattery/internal/store"
)

// state is the stored session pointer. Only one identity is signed in at a
// time per installation.
type state struct {
	Identifier string    `json:"identifier"`
	StartedAt  time.Time `json:"startedAt"`
}

// Manager reads and writes the current-session pointer. The pointer is
// non-owning: it names an identifier, and Resume resolves it against the
// record store on every call.
type Manager struct {
	kv    KV
	store store.Store
	key   string
}

func NewManager(kv KV, st store.Store) *Manager {
	return &Manager{kv: kv, store: st, key: common.SessionBlobName}
}

// Activate marks identifier as the signed-in identity, replacing any
// previous session.
func (m *Manager) Activate(ctx context.Context, identifier string) error {
	data, err := json.Marshal(state{Identifier: identifier, StartedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	return m.kv.Set(ctx, m.key, data)
}

// Current returns the signed-in identifier, or "" when nobody is signed in.
// A corrupt session pointer counts as no session.
func (m *Manager) Current(ctx context.Context) (string, error) {
	data, err := m.kv.Get(ctx, m.key)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil
		}
		return "", err
	}

	var s state
	if err := json.Unmarshal(data, &s); err != nil {
		return "", nil
	}
	return s.Identifier, nil
}

// Resume resolves the session pointer to its record. A nil record with a nil
// error means there is nothing to resume: no pointer, or the pointed-at
// identity no longer exists in the store.
func (m *Manager) Resume(ctx context.Context) (*models.UserRecord, error) {
	identifier, err := m.Current(ctx)
	if err != nil {
		return nil, err
	}
	if identifier == "" {
		return nil, nil
	}

	record, err := m.store.Find(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// Clear signs the current identity out. Clearing an absent session is fine.
func (m *Manager) Clear(ctx context.Context) error {
	return m.kv.Delete(ctx, m.key)
}
