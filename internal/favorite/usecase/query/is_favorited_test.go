package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamarket/backend/internal/favorite/repository"
	"github.com/pandamarket/backend/internal/target"
)

func TestIsFavorited(t *testing.T) {
	repo := repository.NewMemoryFavoriteRepository()
	repo.SeedTarget(target.TypeProduct, 1, 10)
	_, err := repo.Add(5, target.TypeProduct, 1)
	require.NoError(t, err)

	handler := NewIsFavoritedHandler(repo)

	got, err := handler.Handle(IsFavoritedQuery{TargetType: "product", TargetID: 1, UserID: 5})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = handler.Handle(IsFavoritedQuery{TargetType: "product", TargetID: 1, UserID: 6})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestIsFavoritedAnonymous(t *testing.T) {
	repo := repository.NewMemoryFavoriteRepository()
	handler := NewIsFavoritedHandler(repo)

	// Anonymous callers are never favorited, no lookup happens
	got, err := handler.Handle(IsFavoritedQuery{TargetType: "product", TargetID: 1, UserID: 0})
	require.NoError(t, err)
	assert.False(t, got)
}
