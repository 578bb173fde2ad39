package store

import (
	"context"
	"testing"

	"github.com/mikey/mail-topology/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryStore_SaveAndGet(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	rows := []core.SenderFeatures{
		{Sender: "a@example.com", MailCount: 3, AvgSeconds: 36000, AvgWeekday: 1},
		{Sender: "b@example.com", MailCount: 7, AvgSeconds: 72000, AvgWeekday: 4},
	}
	require.NoError(t, s.Save(ctx, "run-1", rows))

	got, err := s.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestMemoryStore_GetUnknownRun(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	_, err := s.GetRun(context.Background(), "missing")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestMemoryStore_DeleteRun(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "run-1", []core.SenderFeatures{{Sender: "a@x", MailCount: 1}}))
	require.NoError(t, s.DeleteRun(ctx, "run-1"))

	_, err := s.GetRun(ctx, "run-1")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	rows := []core.SenderFeatures{{Sender: "a@x", MailCount: 1}}
	require.NoError(t, s.Save(ctx, "run-1", rows))

	got, err := s.GetRun(ctx, "run-1")
	require.NoError(t, err)
	got[0].MailCount = 99

	again, err := s.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 1, again[0].MailCount)
}
