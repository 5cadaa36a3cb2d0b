// Package auth holds the credential and token primitives: bcrypt password
// hashing, HS256 JWT issuance/verification, and TOTP verification for
// multi-factor accounts. Everything here is stateless; persistence is the
// repository layer's job.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures are distinguishable so callers can message the
// user differently ("log in again" vs "invalid session").
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims are the custom claims embedded in every access and refresh token.
type Claims struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies JWTs with a server-held HMAC secret.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccess signs an access token (default TTL 1 hour).
func (m *TokenManager) IssueAccess(accountID, email, role string) (string, error) {
	return m.issue(accountID, email, role, m.accessTTL)
}

// IssueRefresh signs a refresh token (default TTL 7 days).
func (m *TokenManager) IssueRefresh(accountID, email, role string) (string, error) {
	return m.issue(accountID, email, role, m.refreshTTL)
}

func (m *TokenManager) issue(accountID, email, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		AccountID: accountID,
		Email:     email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token. Returns ErrTokenExpired for a
// well-formed token past its expiry and ErrTokenInvalid for any other
// signature or format failure.
func (m *TokenManager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
