//go:build wireinject
// +build wireinject

package comment

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/pandamarket/backend/internal/comment/delivery/http"
	"github.com/pandamarket/backend/internal/comment/domain"
	"github.com/pandamarket/backend/internal/comment/repository"
	"github.com/pandamarket/backend/internal/comment/usecase/command"
	"github.com/pandamarket/backend/internal/comment/usecase/query"
	"github.com/pandamarket/backend/internal/target"
	"github.com/pandamarket/backend/kafka"
)

// ProvideCommentRepository provides the comment repository
func ProvideCommentRepository(db *gorm.DB, resolver *target.Resolver) domain.CommentRepository {
	return repository.NewGormCommentRepository(db, resolver)
}

// Command Handlers Providers
func ProvideCreateCommentHandler(repo domain.CommentRepository) *command.CreateCommentHandler {
	return command.NewCreateCommentHandler(repo)
}

func ProvideUpdateCommentHandler(repo domain.CommentRepository) *command.UpdateCommentHandler {
	return command.NewUpdateCommentHandler(repo)
}

func ProvideDeleteCommentHandler(repo domain.CommentRepository) *command.DeleteCommentHandler {
	return command.NewDeleteCommentHandler(repo)
}

// Query Handlers Providers
func ProvideListCommentsHandler(repo domain.CommentRepository) *query.ListCommentsHandler {
	return query.NewListCommentsHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	target.NewResolver,
	ProvideCommentRepository,
)

var HandlerSet = wire.NewSet(
	ProvideCreateCommentHandler,
	ProvideUpdateCommentHandler,
	ProvideDeleteCommentHandler,
	ProvideListCommentsHandler,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher *kafka.Publisher) (*http.CommentHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewCommentHandlerWithDI,
	)
	return nil, nil
}
