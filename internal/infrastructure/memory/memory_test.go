package memory

import (
	"context"
	"testing"
	"time"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_Vencimiento(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	l := NewLocker()
	l.nowFn = func() time.Time { return now }

	release, ok, err := l.Acquire(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, _ = l.Acquire(context.Background(), "k", time.Minute)
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	release2, ok, _ := l.Acquire(context.Background(), "k", time.Minute)
	require.True(t, ok)

	// El release vencido no libera el lock nuevo.
	release()
	_, ok, _ = l.Acquire(context.Background(), "k", time.Minute)
	assert.False(t, ok)
	release2()
	_, ok, _ = l.Acquire(context.Background(), "k", time.Minute)
	assert.True(t, ok)
}

func TestSessionStore_Vencimiento(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	s := NewSessionStore()
	s.nowFn = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "session:a", auth.Session{Token: "a", UserID: "1"}, time.Hour))
	got, err := s.Load(ctx, "session:a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "1", got.UserID)

	now = now.Add(2 * time.Hour)
	got, err = s.Load(ctx, "session:a")
	require.NoError(t, err)
	assert.Nil(t, got)
}
