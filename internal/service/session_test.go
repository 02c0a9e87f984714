package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/udon-shop-server/internal/kv"
	"github.com/dtroode/udon-shop-server/internal/model"
	"github.com/dtroode/udon-shop-server/internal/testutil"
)

func newTestSession(t *testing.T) (*Session, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	return NewSession(store, "test:session", testutil.MakeNoopLogger()), store
}

func TestSession_RoundTrip(t *testing.T) {
	ctx := context.Background()
	session, _ := newTestSession(t)

	identity := model.Identity{ID: uuid.New(), Email: "a@b.c", Name: "A"}
	require.NoError(t, session.Set(ctx, identity))

	got, err := session.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
	assert.True(t, session.IsLoggedIn(ctx))
}

func TestSession_Absent(t *testing.T) {
	ctx := context.Background()
	session, _ := newTestSession(t)

	_, err := session.Get(ctx)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.False(t, session.IsLoggedIn(ctx))
}

func TestSession_Clear(t *testing.T) {
	ctx := context.Background()
	session, _ := newTestSession(t)

	require.NoError(t, session.Set(ctx, model.Identity{ID: uuid.New(), Email: "a@b.c", Name: "A"}))
	require.NoError(t, session.Clear(ctx))

	_, err := session.Get(ctx)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.False(t, session.IsLoggedIn(ctx))
}

func TestSession_CorruptBlobReadsAsLoggedOut(t *testing.T) {
	ctx := context.Background()
	session, store := newTestSession(t)

	require.NoError(t, store.Set(ctx, "test:session", []byte("???")))

	_, err := session.Get(ctx)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.False(t, session.IsLoggedIn(ctx))
}
