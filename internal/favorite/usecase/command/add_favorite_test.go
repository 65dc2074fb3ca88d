package command

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamarket/backend/internal/favorite/domain"
	"github.com/pandamarket/backend/internal/favorite/repository"
	"github.com/pandamarket/backend/internal/target"
)

func TestAddFavorite(t *testing.T) {
	repo := repository.NewMemoryFavoriteRepository()
	repo.SeedTarget(target.TypeProduct, 1, 10)
	handler := NewAddFavoriteHandler(repo)

	result, err := handler.Handle(AddFavoriteCommand{TargetType: "product", TargetID: 1, UserID: 5})
	require.NoError(t, err)
	assert.True(t, result.IsFavorite)
	assert.Equal(t, int64(1), result.Target.FavoriteCount)
	assert.Equal(t, uint(10), result.Target.OwnerID)

	// The counter always equals the number of favorite rows
	count, err := repo.CountByTarget(target.TypeProduct, 1)
	require.NoError(t, err)
	assert.Equal(t, result.Target.FavoriteCount, count)
}

func TestAddFavoriteTwiceConflicts(t *testing.T) {
	repo := repository.NewMemoryFavoriteRepository()
	repo.SeedTarget(target.TypeArticle, 7, 10)
	handler := NewAddFavoriteHandler(repo)

	_, err := handler.Handle(AddFavoriteCommand{TargetType: "article", TargetID: 7, UserID: 5})
	require.NoError(t, err)

	_, err = handler.Handle(AddFavoriteCommand{TargetType: "article", TargetID: 7, UserID: 5})
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)

	// The failed attempt must not have bumped the counter
	count, err := repo.CountByTarget(target.TypeArticle, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAddFavoriteMissingTarget(t *testing.T) {
	repo := repository.NewMemoryFavoriteRepository()
	handler := NewAddFavoriteHandler(repo)

	_, err := handler.Handle(AddFavoriteCommand{TargetType: "product", TargetID: 99, UserID: 5})
	assert.ErrorIs(t, err, target.ErrNotFound)
}

func TestAddFavoriteUnknownType(t *testing.T) {
	repo := repository.NewMemoryFavoriteRepository()
	handler := NewAddFavoriteHandler(repo)

	_, err := handler.Handle(AddFavoriteCommand{TargetType: "banana", TargetID: 1, UserID: 5})
	assert.ErrorIs(t, err, target.ErrUnknownType)
}

func TestAddFavoriteValidation(t *testing.T) {
	repo := repository.NewMemoryFavoriteRepository()
	handler := NewAddFavoriteHandler(repo)

	_, err := handler.Handle(AddFavoriteCommand{TargetType: "product", TargetID: 1, UserID: 0})
	assert.Error(t, err)

	_, err = handler.Handle(AddFavoriteCommand{TargetType: "product", TargetID: 0, UserID: 5})
	assert.Error(t, err)
}

func TestFavoriteToggleSymmetry(t *testing.T) {
	repo := repository.NewMemoryFavoriteRepository()
	repo.SeedTarget(target.TypeProduct, 1, 10)
	add := NewAddFavoriteHandler(repo)
	remove := NewRemoveFavoriteHandler(repo)

	added, err := add.Handle(AddFavoriteCommand{TargetType: "product", TargetID: 1, UserID: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), added.Target.FavoriteCount)

	removed, err := remove.Handle(RemoveFavoriteCommand{TargetType: "product", TargetID: 1, UserID: 5})
	require.NoError(t, err)
	assert.False(t, removed.IsFavorite)
	assert.Equal(t, int64(0), removed.Target.FavoriteCount)

	count, err := repo.CountByTarget(target.TypeProduct, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRemoveFavoriteNotFavorited(t *testing.T) {
	repo := repository.NewMemoryFavoriteRepository()
	repo.SeedTarget(target.TypeProduct, 1, 10)
	handler := NewRemoveFavoriteHandler(repo)

	_, err := handler.Handle(RemoveFavoriteCommand{TargetType: "product", TargetID: 1, UserID: 5})
	assert.ErrorIs(t, err, domain.ErrNotFavorited)
}

func TestTwoUsersFavoriteSameTarget(t *testing.T) {
	repo := repository.NewMemoryFavoriteRepository()
	repo.SeedTarget(target.TypeProduct, 1, 10)
	add := NewAddFavoriteHandler(repo)
	remove := NewRemoveFavoriteHandler(repo)

	first, err := add.Handle(AddFavoriteCommand{TargetType: "product", TargetID: 1, UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Target.FavoriteCount)

	second, err := add.Handle(AddFavoriteCommand{TargetType: "product", TargetID: 1, UserID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Target.FavoriteCount)

	removed, err := remove.Handle(RemoveFavoriteCommand{TargetType: "product", TargetID: 1, UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed.Target.FavoriteCount)

	count, err := repo.CountByTarget(target.TypeProduct, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestConcurrentAddSameTuple(t *testing.T) {
	repo := repository.NewMemoryFavoriteRepository()
	repo.SeedTarget(target.TypeProduct, 1, 10)
	handler := NewAddFavoriteHandler(repo)

	const attempts = 16
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = handler.Handle(AddFavoriteCommand{TargetType: "product", TargetID: 1, UserID: 5})
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case err == domain.ErrAlreadyFavorited:
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicted)

	count, err := repo.CountByTarget(target.TypeProduct, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
