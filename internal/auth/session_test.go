package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/justiceconnect/internal/domain"
)

func testSession(ttl time.Duration) *domain.Session {
	now := time.Now()
	return &domain.Session{
		Token:      NewSessionToken(),
		IdentityID: "identity-1",
		Role:       domain.RoleSurvivor,
		Email:      "jordan@example.com",
		Status:     domain.ApprovalApproved,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
}

func TestMemorySessionStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	session := testSession(time.Hour)

	require.NoError(t, store.Create(context.Background(), session))

	loaded, err := store.Get(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.IdentityID, loaded.IdentityID)
	assert.Equal(t, session.Role, loaded.Role)

	require.NoError(t, store.Delete(context.Background(), session.Token))
	_, err = store.Get(context.Background(), session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	session := testSession(-time.Minute)

	require.NoError(t, store.Create(context.Background(), session))
	_, err := store.Get(context.Background(), session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStoreUnknownToken(t *testing.T) {
	store := NewMemorySessionStore()
	_, err := store.Get(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionTokensAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := NewSessionToken()
		require.False(t, seen[token])
		seen[token] = true
	}
}
