// Package domain holds the nutrition tracker's entities, validation rules,
// calendar-day keys and the repository ports implemented by the adapters.
package domain

import (
	"context"
	"time"
)

// User is an account allowed to access the installation.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// PasswordLess reports whether the account was provisioned by SSO or forward
// auth and cannot log in with a password.
func (u User) PasswordLess() bool {
	return u.PasswordHash == ""
}

// Session is an active login.
type Session struct {
	Token     string
	UserID    int64
	UserAgent string
	IP        string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// UserRepository defines the port for user persistence operations.
type UserRepository interface {
	// GetByUsername returns nil, nil when the user does not exist.
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, username, passwordHash string) (*User, error)
	Count(ctx context.Context) (int, error)
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error
	// GetByToken returns nil, nil when the token is unknown.
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
