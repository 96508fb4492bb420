package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"canteen_service/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresUserRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresUserRepository(db *sql.DB, logger *logrus.Logger) domain.UserRepository {
	return &postgresUserRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (name, email, phone, password_hash)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err := r.db.QueryRowContext(ctx, query, user.Name, user.Email, user.Phone, user.PasswordHash).Scan(
		&user.ID,
		&user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			r.log.Warnf("Attempt to register duplicate email: %s", user.Email)
			return nil, fmt.Errorf("user with email '%s' already exists", user.Email)
		}
		r.log.Errorf("Failed to create user %s: %v", user.Email, err)
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	r.log.Infof("User created with ID %d (%s)", user.ID, user.Email)
	return user, nil
}

func (r *postgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
        SELECT id, name, email, phone, password_hash, created_at
        FROM users
        WHERE email = $1
    `
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email '%s' not found", email)
		}
		r.log.Errorf("Failed to get user by email %s: %v", email, err)
		return nil, fmt.Errorf("could not retrieve user: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	query := `
        INSERT INTO sessions (token, user_id)
        VALUES ($1, $2)
    `
	if _, err := r.db.ExecContext(ctx, query, session.Token, session.UserID); err != nil {
		r.log.Errorf("Failed to create session for user %d: %v", session.UserID, err)
		return fmt.Errorf("could not create session: %w", err)
	}
	return nil
}

func (r *postgresUserRepository) GetIdentityByToken(ctx context.Context, token string) (*domain.Identity, error) {
	query := `
        SELECT u.id, u.phone
        FROM sessions s
        JOIN users u ON u.id = s.user_id
        WHERE s.token = $1
    `
	identity := &domain.Identity{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(&identity.UserID, &identity.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidToken
		}
		r.log.Errorf("Failed to resolve session token: %v", err)
		return nil, fmt.Errorf("could not resolve session: %w", err)
	}
	return identity, nil
}
