package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/udon-shop-server/internal/logger"
	"github.com/dtroode/udon-shop-server/internal/model"
)

// Sessions derives session managers from a base key. The single-user
// front end uses the base key alone; the HTTP API scopes a key per
// user so sessions do not collide.
type Sessions struct {
	kv      model.KV
	baseKey string
	logger  *logger.Logger
}

// NewSessions creates a session manager factory over kv.
func NewSessions(kv model.KV, baseKey string, logger *logger.Logger) *Sessions {
	return &Sessions{kv: kv, baseKey: baseKey, logger: logger}
}

// For returns the session manager scoped to the given user.
func (s *Sessions) For(userID uuid.UUID) *Session {
	return NewSession(s.kv, s.baseKey+":"+userID.String(), s.logger)
}

// Session persists the "who is logged in" marker: a sanitized identity
// blob under a fixed key. Presence of the blob means logged in.
type Session struct {
	kv     model.KV
	key    string
	logger *logger.Logger
}

// NewSession creates a session manager over kv, persisting under key.
func NewSession(kv model.KV, key string, logger *logger.Logger) *Session {
	return &Session{
		kv:     kv,
		key:    key,
		logger: logger,
	}
}

// Set persists the identity as the current session.
func (s *Session) Set(ctx context.Context, identity model.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.kv.Set(ctx, s.key, data); err != nil {
		s.logger.Error("Session service: failed to persist session",
			"key", s.key,
			"error", err.Error())
		return fmt.Errorf("failed to persist session: %w", err)
	}

	return nil
}

// Get returns the current session identity, or ErrNotFound when no
// session is set. A corrupt blob reads as no session.
func (s *Session) Get(ctx context.Context) (model.Identity, error) {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Identity{}, model.ErrNotFound
		}
		return model.Identity{}, fmt.Errorf("failed to get session: %w", err)
	}

	var identity model.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		s.logger.Warn("Session service: discarding corrupt session blob",
			"key", s.key,
			"error", err.Error())
		return model.Identity{}, model.ErrNotFound
	}

	return identity, nil
}

// Clear deletes the current session.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// IsLoggedIn reports whether a session is currently set.
func (s *Session) IsLoggedIn(ctx context.Context) bool {
	_, err := s.Get(ctx)
	return err == nil
}
