package domain

import (
	"context"
	"time"
)

// Claims is what a validated bearer token says about its holder.
type Claims struct {
	UserID    string
	Username  string
	Role      Role
	ExpiresAt time.Time
}

type TokenManager interface {
	Issue(user *User) (string, error)
	Parse(ctx context.Context, token string) (*Claims, error)
	Revoke(ctx context.Context, token string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// Validator checks request structs and reports failures as ValidationFailed.
type Validator interface {
	Validate(v interface{}) error
}
