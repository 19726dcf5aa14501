package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadTokenRoundTrip(t *testing.T) {
	manager := NewDownloadTokenManager("test-secret", 15)

	token, err := manager.Generate("case-1", "1693400000000-evidence.pdf")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "case-1", claims.CaseID)
	assert.Equal(t, "1693400000000-evidence.pdf", claims.FileName)
}

func TestDownloadTokenWrongSecretRejected(t *testing.T) {
	issuer := NewDownloadTokenManager("secret-a", 15)
	verifier := NewDownloadTokenManager("secret-b", 15)

	token, err := issuer.Generate("case-1", "file.pdf")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestDownloadTokenGarbageRejected(t *testing.T) {
	manager := NewDownloadTokenManager("test-secret", 15)
	_, err := manager.Parse("not-a-token")
	assert.Error(t, err)
}

func TestDownloadTokenExpired(t *testing.T) {
	manager := &DownloadTokenManager{secret: []byte("test-secret"), ttl: -1}

	token, err := manager.Generate("case-1", "file.pdf")
	require.NoError(t, err)

	_, err = NewDownloadTokenManager("test-secret", 15).Parse(token)
	assert.Error(t, err)
}
