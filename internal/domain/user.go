package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the authenticated caller, resolved from a session token by the
// auth middleware and passed explicitly into the handlers.
type Identity struct {
	UserID int64
	Phone  string
}

type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CreateSession(ctx context.Context, session *Session) error
	// GetIdentityByToken returns ErrInvalidToken when the token does not
	// resolve to a session.
	GetIdentityByToken(ctx context.Context, token string) (*Identity, error)
}

type UserUseCase interface {
	Register(ctx context.Context, name, email, phone, password string) (*User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*Identity, error)
}
