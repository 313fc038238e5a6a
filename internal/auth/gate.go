package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "fotolab/internal/errors"
)

// ErrSessionStore marks a failure of the session backend, as opposed to a
// bad or revoked token.
var ErrSessionStore = errors.New("session store failure")

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID    uint
	SessionID string
}

// SessionGate issues, resolves and revokes session identities.
type SessionGate struct {
	tokens   *JWTService
	sessions SessionStoreInterface
	ttl      time.Duration
}

// NewSessionGate creates a gate. A non-positive ttl falls back to DefaultSessionTTL.
func NewSessionGate(tokens *JWTService, sessions SessionStoreInterface, ttl time.Duration) *SessionGate {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionGate{tokens: tokens, sessions: sessions, ttl: ttl}
}

// TTL returns the session lifetime.
func (g *SessionGate) TTL() time.Duration {
	return g.ttl
}

// Issue creates a session record for userID and returns its signed token.
func (g *SessionGate) Issue(ctx context.Context, userID uint) (string, error) {
	if userID == 0 {
		return "", apperrors.ErrUnauthorized
	}
	sessionID := NewSessionID()
	if err := g.sessions.Store(ctx, sessionID, userID, g.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	token, err := g.tokens.GenerateSessionToken(sessionID, userID, g.ttl)
	if err != nil {
		_ = g.sessions.Delete(ctx, sessionID)
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Authorize resolves a token to a live identity. Bad, expired or revoked
// tokens yield ErrUnauthorized; backend failures yield ErrSessionStore.
func (g *SessionGate) Authorize(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, apperrors.ErrUnauthorized
	}
	claims, err := g.tokens.ValidateToken(token)
	if err != nil {
		return Identity{}, apperrors.ErrUnauthorized
	}

	userID, err := g.sessions.Get(ctx, claims.ID)
	if errors.Is(err, ErrSessionNotFound) {
		return Identity{}, apperrors.ErrUnauthorized
	}
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrSessionStore, err)
	}
	if userID == 0 || userID != claims.UserID {
		return Identity{}, apperrors.ErrUnauthorized
	}

	return Identity{UserID: userID, SessionID: claims.ID}, nil
}

// Revoke deletes the session record behind an identity.
func (g *SessionGate) Revoke(ctx context.Context, id Identity) error {
	if id.SessionID == "" {
		return apperrors.ErrUnauthorized
	}
	if err := g.sessions.Delete(ctx, id.SessionID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
