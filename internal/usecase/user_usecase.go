package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"canteen_service/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var _ domain.UserUseCase = (*userUseCase)(nil)

type userUseCase struct {
	userRepo domain.UserRepository
	log      *logrus.Logger
}

func NewUserUseCase(repo domain.UserRepository, logger *logrus.Logger) domain.UserUseCase {
	return &userUseCase{
		userRepo: repo,
		log:      logger,
	}
}

func (uc *userUseCase) Register(ctx context.Context, name, email, phone, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	if name == "" {
		return nil, errors.New("user name cannot be empty")
	}
	if !isValidEmail(email) {
		return nil, errors.New("invalid email format")
	}
	if phone == "" {
		return nil, errors.New("phone number cannot be empty")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters long")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password for %s: %v", email, err)
		return nil, fmt.Errorf("internal error processing password: %w", err)
	}

	newUser := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hashedPassword),
	}

	createdUser, err := uc.userRepo.CreateUser(ctx, newUser)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to create user %s: %v", email, err)
		return nil, err
	}

	uc.log.Infof("Use Case: User registered with ID %d (%s)", createdUser.ID, createdUser.Email)
	return createdUser, nil
}

func (uc *userUseCase) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !isValidEmail(email) || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			uc.log.Warnf("Use Case: Login failed, user not found: %s", email)
			return "", domain.ErrInvalidCredentials
		}
		uc.log.Errorf("Use Case: Error retrieving user %s during login: %v", email, err)
		return "", fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warnf("Use Case: Login failed, wrong password for user %s", email)
			return "", domain.ErrInvalidCredentials
		}
		uc.log.Errorf("Use Case: Error comparing password hash for user %s: %v", email, err)
		return "", fmt.Errorf("internal error during authentication: %w", err)
	}

	session := &domain.Session{
		Token:  uuid.NewString(),
		UserID: user.ID,
	}
	if err := uc.userRepo.CreateSession(ctx, session); err != nil {
		uc.log.Errorf("Use Case: Failed to persist session for user %d: %v", user.ID, err)
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	uc.log.Infof("Use Case: User %d logged in", user.ID)
	return session.Token, nil
}

func (uc *userUseCase) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}
	identity, err := uc.userRepo.GetIdentityByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			return nil, err
		}
		uc.log.Errorf("Use Case: Error resolving session token: %v", err)
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	return identity, nil
}

// isValidEmail provides a basic structural check for email addresses.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	domainParts := strings.Split(parts[1], ".")
	return len(domainParts) >= 2 && domainParts[0] != "" && domainParts[len(domainParts)-1] != ""
}
