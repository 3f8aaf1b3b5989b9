package token

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"instudio/internal/domain"
	"instudio/pkg/cache"
)

type Options struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues HS256 tokens and keeps revoked ones in a blacklist
// until they would have expired anyway.
type Manager struct {
	secret    []byte
	issuer    string
	ttl       time.Duration
	blacklist cache.Cache
	now       func() time.Time
}

func NewManager(opts Options, blacklist cache.Cache) *Manager {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		secret:    []byte(opts.Secret),
		issuer:    opts.Issuer,
		ttl:       ttl,
		blacklist: blacklist,
		now:       time.Now,
	}
}

func (m *Manager) Issue(user *domain.User) (string, error) {
	now := m.now()
	c := claims{
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("token could not be signed: %w", err)
	}
	return signed, nil
}

func (m *Manager) Parse(ctx context.Context, tokenString string) (*domain.Claims, error) {
	c, err := m.parse(tokenString)
	if err != nil {
		return nil, domain.NewUnauthorizedError("Invalid or expired token.")
	}

	revoked, err := m.blacklist.Exists(ctx, cache.TokenBlacklistCacheKey(fingerprint(tokenString)))
	if err != nil {
		return nil, fmt.Errorf("token blacklist could not be checked: %w", err)
	}
	if revoked {
		return nil, domain.NewUnauthorizedError("Token has been revoked.")
	}

	return &domain.Claims{
		UserID:    c.Subject,
		Username:  c.Username,
		Role:      domain.Role(c.Role),
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

// Revoke blacklists the raw token. Tokens that no longer parse are still
// blacklisted for a full TTL so a logout never fails on a supplied token.
func (m *Manager) Revoke(ctx context.Context, tokenString string) error {
	if tokenString == "" {
		return domain.NewValidationError("token is required")
	}

	ttl := m.ttl
	if c, err := m.parse(tokenString); err == nil && c.ExpiresAt != nil {
		ttl = c.ExpiresAt.Sub(m.now())
		if ttl <= 0 {
			return nil
		}
	}

	if err := m.blacklist.Set(ctx, cache.TokenBlacklistCacheKey(fingerprint(tokenString)), true, ttl); err != nil {
		return fmt.Errorf("token could not be revoked: %w", err)
	}
	return nil
}

func (m *Manager) parse(tokenString string) (*claims, error) {
	c := &claims{}
	tok, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("token is not valid")
	}
	return c, nil
}

func fingerprint(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))
	return hex.EncodeToString(sum[:])
}
