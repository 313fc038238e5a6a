package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fotolab/internal/kv"
)

const sessionKeyPrefix = "session:"

// ErrSessionNotFound is returned when a session record is missing or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStoreInterface defines the interface for session storage operations.
type SessionStoreInterface interface {
	Store(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (userID uint, err error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionStore keeps session records in Redis.
type SessionStore struct {
	kv *kv.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

type sessionRecord struct {
	UserID uint `json:"user_id"`
}

// NewSessionStore creates a new session store.
func NewSessionStore(client *kv.Client) *SessionStore {
	return &SessionStore{kv: client}
}

// Store saves a session record with TTL.
func (s *SessionStore) Store(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	payload, err := json.Marshal(sessionRecord{UserID: userID})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.kv.Set(ctx, sessionKeyPrefix+sessionID, payload, ttl)
}

// Get returns the user id held by a session record.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (uint, error) {
	data, err := s.kv.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		return 0, fmt.Errorf("load session: %w", err)
	}
	if data == nil {
		return 0, ErrSessionNotFound
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return 0, fmt.Errorf("unmarshal session: %w", err)
	}
	return record.UserID, nil
}

// Delete removes a session record.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.kv.Delete(ctx, sessionKeyPrefix+sessionID)
}
