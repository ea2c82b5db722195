package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestSessionToken_RoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateSessionToken("u-1", "admin@rxnexus.com", "Administrator", "sess-1", secret, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := ValidateSessionToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Administrator", claims.Role)
	assert.Equal(t, "sess-1", claims.ID)
}

func TestSessionToken_Expired(t *testing.T) {
	token, _, err := GenerateSessionToken("u-1", "a@b.c", "Pharmacist", "sess-1", secret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, secret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateSessionToken("u-1", "a@b.c", "Pharmacist", "sess-1", secret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "other")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ValidateSessionToken("not-a-jwt", secret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
