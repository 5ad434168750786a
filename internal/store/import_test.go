package store

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/shutils/internal/model"
)

func TestImport(t *testing.T) {
	s, ctx := newTestStore(t)
	f := gofakeit.New(30)

	existing := mustUpsertHunt(t, s, fakeHunt(f))

	h := fakeHunt(f)
	h.ID = existing.ID
	h.Shinies = []*model.Shiny{fakeShiny(f, model.Ptr(int64(999))), fakeShiny(f, nil)}
	detached := fakeShiny(f, model.Ptr(int64(777)))
	detached.ID = 42

	res, err := s.Import(ctx, []*model.Hunt{h}, []*model.Shiny{detached})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Hunts: 1, Shinies: 3}, res)

	hunts, err := s.LoadAllHunts(ctx)
	require.NoError(t, err)
	require.Len(t, hunts, 2)
	assert.Empty(t, hunts[0].Shinies, "existing hunt must be untouched")

	imported := hunts[1]
	assert.NotEqual(t, existing.ID, imported.ID)
	require.Len(t, imported.Shinies, 2)
	for _, sh := range imported.Shinies {
		assert.True(t, sh.BelongsTo(imported.ID))
	}

	loose, err := s.LoadAllShinies(ctx, ShinyFilter{Detached: true})
	require.NoError(t, err)
	require.Len(t, loose, 1)
	assert.Equal(t, detached.Species, loose[0].Species)
}

func TestImportIsAtomic(t *testing.T) {
	s, ctx := newTestStore(t)
	f := gofakeit.New(31)

	good := fakeHunt(f)
	bad := fakeHunt(f)
	bad.PhaseCount = 0

	_, err := s.Import(ctx, []*model.Hunt{good, bad}, nil)
	assert.ErrorIs(t, err, model.ErrValidation)

	hunts, err := s.LoadAllHunts(ctx)
	require.NoError(t, err)
	assert.Empty(t, hunts)
}
