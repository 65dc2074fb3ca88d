//go:build wireinject
// +build wireinject

package favorite

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/pandamarket/backend/internal/favorite/delivery/http"
	"github.com/pandamarket/backend/internal/favorite/domain"
	"github.com/pandamarket/backend/internal/favorite/repository"
	"github.com/pandamarket/backend/internal/favorite/usecase/command"
	"github.com/pandamarket/backend/internal/favorite/usecase/query"
	"github.com/pandamarket/backend/internal/target"
	"github.com/pandamarket/backend/kafka"
	"github.com/pandamarket/backend/pkg/cache"
)

// ProvideFavoriteRepository provides the favorite repository
func ProvideFavoriteRepository(db *gorm.DB, resolver *target.Resolver) domain.FavoriteRepository {
	return repository.NewGormFavoriteRepository(db, resolver)
}

// Command Handlers Providers
func ProvideAddFavoriteHandler(repo domain.FavoriteRepository) *command.AddFavoriteHandler {
	return command.NewAddFavoriteHandler(repo)
}

func ProvideRemoveFavoriteHandler(repo domain.FavoriteRepository) *command.RemoveFavoriteHandler {
	return command.NewRemoveFavoriteHandler(repo)
}

// Query Handlers Providers
func ProvideIsFavoritedHandler(repo domain.FavoriteRepository) *query.IsFavoritedHandler {
	return query.NewIsFavoritedHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	target.NewResolver,
	ProvideFavoriteRepository,
)

var HandlerSet = wire.NewSet(
	ProvideAddFavoriteHandler,
	ProvideRemoveFavoriteHandler,
	ProvideIsFavoritedHandler,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher *kafka.Publisher, c *cache.Cache) (*http.FavoriteHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewFavoriteHandlerWithDI,
	)
	return nil, nil
}
