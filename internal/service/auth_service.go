package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"fotolab/internal/auth"
	apperrors "fotolab/internal/errors"
	"fotolab/internal/repository"
)

// SessionIssuer creates and revokes session identities.
type SessionIssuer interface {
	Issue(ctx context.Context, userID uint) (string, error)
	Revoke(ctx context.Context, id auth.Identity) error
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, userID uint, err error)
	Logout(ctx context.Context, id auth.Identity) error
}

type authService struct {
	users     repository.UserRepository
	sessions  SessionIssuer
	dummyHash []byte
}

// NewAuthService creates a new authentication service. bcryptCost should
// match the cost of stored hashes.
func NewAuthService(users repository.UserRepository, sessions SessionIssuer, bcryptCost int) (AuthService, error) {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("fotolab-dummy-password"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	return &authService{users: users, sessions: sessions, dummyHash: dummy}, nil
}

// Login verifies the credentials and opens a session. An unknown username and
// a wrong password both yield ErrUnauthorized.
func (s *authService) Login(ctx context.Context, username, password string) (string, uint, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !isNotFound(err) {
			return "", 0, fmt.Errorf("find user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return "", 0, apperrors.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", 0, apperrors.ErrUnauthorized
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return "", 0, fmt.Errorf("open session: %w", err)
	}
	return token, user.ID, nil
}

// Logout revokes the caller's session.
func (s *authService) Logout(ctx context.Context, id auth.Identity) error {
	if err := requireSession(id.UserID); err != nil {
		return err
	}
	return s.sessions.Revoke(ctx, id)
}
