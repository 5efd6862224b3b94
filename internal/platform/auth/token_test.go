package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), 30*time.Minute)

	tok, err := issuer.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	sub, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)
}

func TestTokenExpiredRejected(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), -time.Minute)

	tok, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = issuer.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Minute)
	other := NewTokenIssuer([]byte("another-secret"), time.Minute)

	tok, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbageRejected(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Minute)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := issuer.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestTokenUnsignedAlgRejected(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Minute)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenMissingSubjectRejected(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Minute)

	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	tok, err := raw.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = issuer.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
