// Package auth issues and verifies the HS256 bearer tokens handed to clients.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "storefront"

// Claims is the registered claim set plus the numeric user id.
// ID (jti) identifies the token in the revocation list.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// Manager signs and parses tokens with a single shared secret.
type Manager struct {
	secret        []byte
	ttl           time.Duration
	refreshWindow time.Duration
	now           func() time.Time
}

func NewManager(secret []byte, ttl, refreshWindow time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl, refreshWindow: refreshWindow, now: time.Now}
}

// TTL is the lifetime of newly issued tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a fresh token for userID with a new random jti.
func (m *Manager) Issue(userID int64) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}

	return tokenString, claims, nil
}

// Parse verifies signature, issuer and expiry. Expired tokens yield
// common.ErrTokenExpired, anything else common.ErrInvalidToken.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.ID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// ParseForRefresh verifies the signature but tolerates expiry as long as the
// token was issued less than the refresh window ago.
func (m *Manager) ParseForRefresh(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if claims.Issuer != issuer || claims.ID == "" || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, common.ErrInvalidToken
	}

	if !m.now().Before(m.RefreshDeadline(claims)) {
		return nil, common.ErrRefreshWindowClosed
	}

	return claims, nil
}

// RefreshDeadline is the moment after which the token can no longer be used
// for anything, refresh included. Revocations are kept until then.
func (m *Manager) RefreshDeadline(c *Claims) time.Time {
	deadline := c.ExpiresAt.Time
	if c.IssuedAt != nil {
		if w := c.IssuedAt.Add(m.refreshWindow); w.After(deadline) {
			deadline = w
		}
	}
	return deadline
}

func (m *Manager) keyFunc(t *jwt.Token) (interface{}, error) {
	return m.secret, nil
}
