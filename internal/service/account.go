// Package service contains the business logic layer of the application.
//
// Handlers parse HTTP and render pages; services enforce the rules; the
// repositories read and write rows. Services receive repository interfaces,
// not concrete types, so their tests run against in-memory mocks.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/movie-ratings/internal/apperror"
	"github.com/sakif/movie-ratings/internal/auth"
	"github.com/sakif/movie-ratings/internal/model"
	"github.com/sakif/movie-ratings/internal/repository"
)

// AccountService handles registration and login.
type AccountService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAccountService creates an AccountService with all dependencies
// injected.
func NewAccountService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *AccountService {
	return &AccountService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account. The password is bcrypt-hashed before it
// touches the repository — the plaintext is never stored anywhere.
//
// A taken email fails with a Conflict error from the repository's UNIQUE
// constraint; there is deliberately no lookup-before-insert, which would
// race under concurrent registrations.
func (s *AccountService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperror.ValidationFailed("email", "email must contain @")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/account: hashing password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, apperror.ErrNotFound)
}

// Authenticate checks a login attempt.
//
//   - unknown email          → ErrNoSuchAccount (caller should suggest registering)
//   - wrong password         → ErrInvalidCredentials (caller should allow retry)
//   - match                  → the user; the caller issues the session token
//
// The password comparison goes through bcrypt, which is constant-time — a
// caller can't probe password bytes through response timing.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.NoSuchAccount()
		}
		return nil, fmt.Errorf("service/account: looking up %s: %w", email, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		s.logger.Info("login rejected", slog.String("email", email))
		return nil, apperror.InvalidCredentials()
	}

	s.logger.Info("user authenticated",
		slog.String("userID", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}
