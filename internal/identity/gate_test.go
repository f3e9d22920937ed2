package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/socialbattery/internal/common"
	"github.com/dmitrijs2005/socialbattery/internal/logging"
	"github.com/dmitrijs2005/socialbattery/internal/models"
	"github.com/dmitrijs2005/socialbattery/internal/store"
)

// stubVerifier returns a canned payload or error.
type stubVerifier struct {
	payload []byte
	err     error
	calls   int
}

func (s *stubVerifier) VerifyIdentity(_ context.Context, _ []byte) ([]byte, error) {
	s.calls++
	return s.payload, s.err
}

func newTestGate(v Verifier) (*Gate, store.Store) {
	st := store.NewMemoryStore()
	return NewGate(st, v, logging.NewNullLogger()), st
}

func TestGate_SignupThenLogin(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGate(&stubVerifier{})

	created, err := g.Signup(ctx, "alice@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultUserInput(), created.Parameters)

	got, err := g.PasswordLogin(ctx, "alice@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGate_LoginWrongCredential(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGate(&stubVerifier{})

	_, err := g.Signup(ctx, "alice@example.com", "hunter2")
	require.NoError(t, err)

	_, err = g.PasswordLogin(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrorInvalidCredentials)
}

func TestGate_LoginUnknownIdentity(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGate(&stubVerifier{})

	_, err := g.PasswordLogin(ctx, "nobody@example.com", "anything")
	assert.ErrorIs(t, err, common.ErrorInvalidCredentials)
}

func TestGate_DuplicateSignupLeavesRecordUnchanged(t *testing.T) {
	ctx := context.Background()
	g, st := newTestGate(&stubVerifier{})

	created, err := g.Signup(ctx, "alice@example.com", "hunter2")
	require.NoError(t, err)

	created.Parameters.Charge = 1
	require.NoError(t, st.Upsert(ctx, *created))

	_, err = g.Signup(ctx, "alice@example.com", "other")
	assert.ErrorIs(t, err, common.ErrorIdentityAlreadyExists)

	got, err := st.Find(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got.Credential)
	assert.Equal(t, float64(1), got.Parameters.Charge)
}

func TestDeriveIdentifier(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Alex", "face_alex@sbf.internal"},
		{"spaces become underscores", "Grumpy Cat Person", "face_grumpy_cat_person@sbf.internal"},
		{"surrounding whitespace trimmed", "  Shadow Hermit  ", "face_shadow_hermit@sbf.internal"},
		{"already lowercase", "introvert", "face_introvert@sbf.internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveIdentifier(tt.in))
		})
	}
}

func TestGate_FaceScanHappyPath(t *testing.T) {
	ctx := context.Background()
	v := &stubVerifier{payload: []byte(`{"verified":true,"identity":"Grumpy Cat Person","reason":"vibes"}`)}
	g, _ := newTestGate(v)

	record, err := g.FaceScanLogin(ctx, []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "face_grumpy_cat_person@sbf.internal", record.Identifier)
	assert.Empty(t, record.Credential)
	assert.Equal(t, 1, v.calls)
}

func TestGate_FaceScanWithoutImageSkipsOracle(t *testing.T) {
	ctx := context.Background()
	v := &stubVerifier{err: errors.New("should not be called")}
	g, _ := newTestGate(v)

	record, err := g.FaceScanLogin(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "face_shadow_hermit_admin@sbf.internal", record.Identifier)
	assert.Zero(t, v.calls)
}

func TestGate_FaceScanNeverFails(t *testing.T) {
	tests := []struct {
		name           string
		verifier       *stubVerifier
		wantIdentifier string
	}{
		{
			name:           "oracle error",
			verifier:       &stubVerifier{err: errors.New("quota exceeded")},
			wantIdentifier: "face_the_unquantifiable_hermit@sbf.internal",
		},
		{
			name:           "malformed payload",
			verifier:       &stubVerifier{payload: []byte(`not json`)},
			wantIdentifier: "face_the_unquantifiable_hermit@sbf.internal",
		},
		{
			name:           "empty identity",
			verifier:       &stubVerifier{payload: []byte(`{"verified":true,"identity":"","reason":""}`)},
			wantIdentifier: "face_stealth_pro_introvert@sbf.internal",
		},
		{
			name:           "rejected scan still signs in",
			verifier:       &stubVerifier{payload: []byte(`{"verified":false,"identity":"Suspicious Stranger","reason":"no"}`)},
			wantIdentifier: "face_suspicious_stranger@sbf.internal",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGate(tt.verifier)
			record, err := g.FaceScanLogin(context.Background(), []byte("jpeg"))
			require.NoError(t, err)
			assert.Equal(t, tt.wantIdentifier, record.Identifier)
		})
	}
}

func TestGate_FaceScanReusesExistingRecord(t *testing.T) {
	ctx := context.Background()
	v := &stubVerifier{payload: []byte(`{"verified":true,"identity":"Alex","reason":"ok"}`)}
	g, st := newTestGate(v)

	first, err := g.FaceScanLogin(ctx, []byte("jpeg"))
	require.NoError(t, err)

	first.Parameters.Charge = 20
	require.NoError(t, st.Upsert(ctx, *first))

	second, err := g.FaceScanLogin(ctx, []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, float64(20), second.Parameters.Charge)
}

func TestGate_ResetFlow(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGate(&stubVerifier{})

	_, err := g.Signup(ctx, "alice@example.com", "hunter2")
	require.NoError(t, err)

	assert.ErrorIs(t, g.BeginReset(ctx, "nobody@example.com"), common.ErrorIdentityNotFound)
	require.NoError(t, g.BeginReset(ctx, "alice@example.com"))

	err = g.CompleteReset(ctx, "alice@example.com", "new", "different")
	assert.ErrorIs(t, err, common.ErrorCredentialMismatch)

	require.NoError(t, g.CompleteReset(ctx, "alice@example.com", "new", "new"))

	_, err = g.PasswordLogin(ctx, "alice@example.com", "hunter2")
	assert.ErrorIs(t, err, common.ErrorInvalidCredentials)

	got, err := g.PasswordLogin(ctx, "alice@example.com", "new")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultUserInput(), got.Parameters)
}

func TestGate_FailedLoginDoesNotMutateStore(t *testing.T) {
	ctx := context.Background()
	g, st := newTestGate(&stubVerifier{})

	_, err := g.Signup(ctx, "alice@example.com", "hunter2")
	require.NoError(t, err)

	_, err = g.PasswordLogin(ctx, "alice@example.com", "wrong")
	require.Error(t, err)

	all, err := st.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "hunter2", all[0].Credential)
}
