package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/shutils/internal/db"
	"github.com/erazemk/shutils/internal/model"
)

func TestJWTSecretGeneratesAndPersists(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	secret1, err := s.JWTSecret(ctx)
	require.NoError(t, err)
	require.Len(t, secret1, 64, "32 bytes should encode to 64 hex chars")

	secret2, err := s.JWTSecret(ctx)
	require.NoError(t, err)
	assert.Equal(t, secret1, secret2)
}

func TestSettings(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	_, err := s.Setting(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, s.SetSetting(ctx, "counters", "4"))
	require.NoError(t, s.SetSetting(ctx, "counters", "6"))

	got, err := s.Setting(ctx, "counters")
	require.NoError(t, err)
	assert.Equal(t, "6", got)
}
