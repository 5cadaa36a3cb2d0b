package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func newTestManager() *TokenManager {
	return NewTokenManager(testSecret, time.Hour, 7*24*time.Hour)
}

func TestToken_RoundTrip(t *testing.T) {
	m := newTestManager()
	tok, err := m.IssueAccess("acct-123", "a@b.com", "owner")
	require.NoError(t, err)

	claims, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "acct-123", claims.AccountID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "owner", claims.Role)
}

func TestToken_Expired(t *testing.T) {
	// Zero access TTL makes the token already expired at issue time.
	m := NewTokenManager(testSecret, -time.Second, time.Hour)
	tok, err := m.IssueAccess("acct-123", "a@b.com", "user")
	require.NoError(t, err)

	_, err = m.Verify(tok)
	// Expired must be distinguishable from invalid.
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestToken_Garbage(t *testing.T) {
	m := newTestManager()
	_, err := m.Verify("this.is.garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestToken_WrongSecret(t *testing.T) {
	m := newTestManager()
	tok, err := m.IssueAccess("acct-123", "a@b.com", "user")
	require.NoError(t, err)

	other := NewTokenManager("another_secret_that_is_long_enough", time.Hour, time.Hour)
	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestToken_RefreshLongerThanAccess(t *testing.T) {
	m := newTestManager()
	access, err := m.IssueAccess("id", "a@b.com", "user")
	require.NoError(t, err)
	refresh, err := m.IssueRefresh("id", "a@b.com", "user")
	require.NoError(t, err)

	ac, err := m.Verify(access)
	require.NoError(t, err)
	rc, err := m.Verify(refresh)
	require.NoError(t, err)
	assert.True(t, rc.ExpiresAt.After(ac.ExpiresAt.Time))
}

func TestPassword_HashAndVerify(t *testing.T) {
	hash, err := HashPassword("Passw0rd1")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd1", hash)

	assert.True(t, VerifyPassword("Passw0rd1", hash))
	assert.False(t, VerifyPassword("wrongpass", hash))
	assert.False(t, VerifyPassword("Passw0rd1", "not-a-hash"))
}

func TestTOTP_EmptyInputsNeverValid(t *testing.T) {
	assert.False(t, VerifyTOTP("", "SECRET"))
	assert.False(t, VerifyTOTP("123456", ""))
}

func TestTOTP_GenerateSecret(t *testing.T) {
	secret, err := GenerateTOTPSecret("a@b.com")
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
}
