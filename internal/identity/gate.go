package identity

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/socialbattery/internal/common"
	"github.com/dmitrijs2005/socialbattery/internal/logging"
	"github.com/dmitrijs2005/socialbattery/internal/models"
	"github.com/dmitrijs2005/socialbattery/internal/store"
)

// Verifier is the slice of the oracle the gate needs: it looks at a JPEG and
// answers with a raw JSON verdict.
type Verifier interface {
	VerifyIdentity(ctx context.Context, image []byte) ([]byte, error)
}

// verdict is the oracle's identity answer. Verified is decoded but ignored:
// scan policy is approve-always.
type verdict struct {
	Verified bool   `json:"verified"`
	Identity string `json:"identity"`
	Reason   string `json:"reason"`
}

// Gate resolves authentication attempts to user records.
type Gate struct {
	store    store.Store
	verifier Verifier
	logger   logging.Logger
}

func NewGate(st store.Store, verifier Verifier, logger logging.Logger) *Gate {
	return &Gate{store: st, verifier: verifier, logger: logger.With("module", "identity")}
}

// PasswordLogin returns the record when both identifier and credential match
// exactly, and common.ErrorInvalidCredentials otherwise. A missing identity
// and a wrong credential are indistinguishable to the caller.
func (g *Gate) PasswordLogin(ctx context.Context, identifier, credential string) (*models.UserRecord, error) {
	record, err := g.store.Find(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, err
	}

	if record.Credential != credential {
		return nil, common.ErrorInvalidCredentials
	}

	return record, nil
}

// Signup creates a record with baseline parameters. The store is not touched
// when the identifier is already taken.
func (g *Gate) Signup(ctx context.Context, identifier, credential string) (*models.UserRecord, error) {
	_, err := g.store.Find(ctx, identifier)
	if err == nil {
		return nil, common.ErrorIdentityAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	record := models.NewUserRecord(identifier, credential)
	if err := g.store.Upsert(ctx, record); err != nil {
		return nil, err
	}

	return &record, nil
}

// FaceScanLogin signs somebody in. Which somebody depends on how much of the
// scan pipeline worked, but the answer is always a record, never an oracle
// error:
//
//   - no image (camera offline): Shadow_Hermit_Admin
//   - oracle failure or malformed verdict: The_Unquantifiable_Hermit
//   - verdict with an empty identity: Stealth_Pro_Introvert
//
// An existing record for the derived identifier is reused unchanged.
func (g *Gate) FaceScanLogin(ctx context.Context, image []byte) (*models.UserRecord, error) {
	name := g.scanIdentity(ctx, image)
	identifier := DeriveIdentifier(name)

	record, err := g.store.Find(ctx, identifier)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	created := models.NewUserRecord(identifier, "")
	if err := g.store.Upsert(ctx, created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (g *Gate) scanIdentity(ctx context.Context, image []byte) string {
	if len(image) == 0 {
		return identityCameraOffline
	}

	payload, err := g.verifier.VerifyIdentity(ctx, image)
	if err != nil {
		g.logger.Warn(ctx, "face scan oracle unavailable, using fallback identity", "error", err)
		return identityUnquantifiable
	}

	var v verdict
	if err := json.Unmarshal(payload, &v); err != nil {
		g.logger.Warn(ctx, "face scan verdict malformed, using fallback identity", "error", err)
		return identityUnquantifiable
	}

	if v.Identity == "" {
		return identityAnonymous
	}

	return v.Identity
}

// BeginReset checks that the identity exists before the reset flow continues.
func (g *Gate) BeginReset(ctx context.Context, identifier string) error {
	_, err := g.store.Find(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorIdentityNotFound
		}
		return err
	}
	return nil
}

// CompleteReset overwrites the credential. Parameters and the cached
// forecast stay as they were.
func (g *Gate) CompleteReset(ctx context.Context, identifier, newCredential, confirmCredential string) error {
	if newCredential != confirmCredential {
		return common.ErrorCredentialMismatch
	}

	record, err := g.store.Find(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorIdentityNotFound
		}
		return err
	}

	record.Credential = newCredential
	return g.store.Upsert(ctx, *record)
}
