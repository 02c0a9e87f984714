package context

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/udon-shop-server/internal/model"
)

type contextKey int

const userIDKey contextKey = iota

var _ model.ContextManager = (*Manager)(nil)

// Manager stores and retrieves the authenticated user ID on a context.
type Manager struct{}

// NewManager creates a new context Manager.
func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func (m *Manager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}
