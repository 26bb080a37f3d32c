package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"taskboard/internal/models"
	"taskboard/internal/repository"
	"taskboard/pkg/auth"
)

type AuthService struct {
	users     *repository.UserRepository
	tokens    *auth.TokenManager
	passwords *auth.PasswordManager
	log       zerolog.Logger
}

func NewAuthService(users *repository.UserRepository, tokens *auth.TokenManager, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: auth.NewPasswordManager(),
		log:       log,
	}
}

// Signup creates a user account and returns it along with a signed bearer
// token. A duplicate email fails with ErrEmailTaken before any row is
// written.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := auth.ValidateEmail(email); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailTaken
	}

	hash, err := s.passwords.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassword) {
			return nil, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, "", err
	}

	user, err := s.users.Create(ctx, name, email, hash)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user signed up")
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown email and wrong password both come back as ErrInvalidCredentials
// so the response does not reveal which one it was.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := s.passwords.ComparePassword(user.PasswordHash, password); err != nil {
		s.log.Debug().Int64("user_id", user.ID).Msg("password mismatch on login")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
