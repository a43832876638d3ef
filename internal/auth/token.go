package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/registry-dashboard/internal/domain"
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// RealmAccess mirrors the identity provider's realm role claim.
type RealmAccess struct {
	Roles []string `json:"roles,omitempty"`
}

// Claims describes JWT payload.
type Claims struct {
	Username    string      `json:"preferred_username,omitempty"`
	AccountID   string      `json:"account_id,omitempty"`
	Roles       []string    `json:"roles,omitempty"`
	RealmAccess RealmAccess `json:"realm_access,omitempty"`
	jwt.RegisteredClaims
}

// AllRoles merges the top-level and realm role claims.
func (c *Claims) AllRoles() []string {
	out := make([]string, 0, len(c.Roles)+len(c.RealmAccess.Roles))
	out = append(out, c.Roles...)
	return append(out, c.RealmAccess.Roles...)
}

// Identity converts claims to the caller identity.
func (c *Claims) Identity() domain.Identity {
	id := domain.Identity{
		SubjectID: c.Subject,
		Username:  c.Username,
		AccountID: c.AccountID,
		Roles:     c.AllRoles(),
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
	}
	return id
}

// GenerateToken builds and signs a JWT for the identity. Used by the dev token
// command and tests; production tokens come from the identity provider.
func (tm *TokenManager) GenerateToken(identity domain.Identity) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Username:  identity.Username,
		AccountID: identity.AccountID,
		Roles:     identity.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.SubjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
