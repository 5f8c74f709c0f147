package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_InsertAndFind(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, bulbasaur()))

	got, err := s.FindBySpecies(ctx, "BULBASAUR")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, bulbasaur(), *got)

	missing, err := s.FindBySpecies(ctx, "Mew")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSQLiteStore_DuplicateSpecies(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, bulbasaur()))

	dup := bulbasaur()
	dup.Species = "bulbasaur"
	assert.Error(t, s.Insert(ctx, dup))

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLiteStore_FindByMove(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, vulpixAlolan()))
	require.NoError(t, s.Insert(ctx, bulbasaur()))

	learners, err := s.FindByMove(ctx, "toxic")
	require.NoError(t, err)
	require.Len(t, learners, 2)
	assert.Equal(t, "Bulbasaur", learners[0].Species)
	assert.Equal(t, "Vulpix-A", learners[1].Species)

	egg, err := s.FindByMove(ctx, "Petal Dance")
	require.NoError(t, err)
	require.Len(t, egg, 1)
	assert.Equal(t, "Bulbasaur", egg[0].Species)

	none, err := s.FindByMove(ctx, "Hyper Beam")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteStore_AllOrdered(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	empty, err := s.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, s.Insert(ctx, vulpixAlolan()))
	require.NoError(t, s.Insert(ctx, bulbasaur()))

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, uint32(1), all[0].DexNum)
	assert.Equal(t, uint32(37), all[1].DexNum)
	assert.Equal(t, vulpixAlolan().Stats, all[1].Stats)
}
