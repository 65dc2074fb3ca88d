package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamarket/backend/internal/comment/domain"
	"github.com/pandamarket/backend/internal/comment/repository"
	"github.com/pandamarket/backend/internal/target"
	userdomain "github.com/pandamarket/backend/internal/user/domain"
)

func TestCreateComment(t *testing.T) {
	repo := repository.NewMemoryCommentRepository()
	repo.SeedTarget(target.TypeProduct, 1)
	repo.SeedAuthor(&userdomain.User{ID: 5, Nickname: "panda"})
	handler := NewCreateCommentHandler(repo)

	view, err := handler.Handle(CreateCommentCommand{
		TargetType: "product",
		TargetID:   1,
		Content:    "nice product",
		AuthorID:   5,
	})
	require.NoError(t, err)
	assert.NotZero(t, view.ID)
	assert.Equal(t, "nice product", view.Content)
	assert.Equal(t, "panda", view.Writer.Nickname)
}

func TestCreateCommentTrimsWhitespace(t *testing.T) {
	repo := repository.NewMemoryCommentRepository()
	repo.SeedTarget(target.TypeArticle, 3)
	handler := NewCreateCommentHandler(repo)

	view, err := handler.Handle(CreateCommentCommand{
		TargetType: "article",
		TargetID:   3,
		Content:    "  spaced out  ",
		AuthorID:   5,
	})
	require.NoError(t, err)
	assert.Equal(t, "spaced out", view.Content)
}

func TestCreateCommentEmptyContent(t *testing.T) {
	repo := repository.NewMemoryCommentRepository()
	repo.SeedTarget(target.TypeProduct, 1)
	handler := NewCreateCommentHandler(repo)

	_, err := handler.Handle(CreateCommentCommand{
		TargetType: "product",
		TargetID:   1,
		Content:    "   ",
		AuthorID:   5,
	})
	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}

func TestCreateCommentMissingTarget(t *testing.T) {
	repo := repository.NewMemoryCommentRepository()
	handler := NewCreateCommentHandler(repo)

	_, err := handler.Handle(CreateCommentCommand{
		TargetType: "product",
		TargetID:   42,
		Content:    "into the void",
		AuthorID:   5,
	})
	assert.ErrorIs(t, err, target.ErrNotFound)
}

func TestUpdateCommentOnlyAuthor(t *testing.T) {
	repo := repository.NewMemoryCommentRepository()
	repo.SeedTarget(target.TypeProduct, 1)
	create := NewCreateCommentHandler(repo)
	update := NewUpdateCommentHandler(repo)

	view, err := create.Handle(CreateCommentCommand{
		TargetType: "product",
		TargetID:   1,
		Content:    "first draft",
		AuthorID:   5,
	})
	require.NoError(t, err)

	_, err = update.Handle(UpdateCommentCommand{CommentID: view.ID, Content: "hijacked", RequesterID: 6})
	assert.ErrorIs(t, err, domain.ErrNotAuthor)

	updated, err := update.Handle(UpdateCommentCommand{CommentID: view.ID, Content: "second draft", RequesterID: 5})
	require.NoError(t, err)
	assert.Equal(t, "second draft", updated.Content)
}

func TestDeleteCommentOnlyAuthor(t *testing.T) {
	repo := repository.NewMemoryCommentRepository()
	repo.SeedTarget(target.TypeProduct, 1)
	create := NewCreateCommentHandler(repo)
	del := NewDeleteCommentHandler(repo)

	view, err := create.Handle(CreateCommentCommand{
		TargetType: "product",
		TargetID:   1,
		Content:    "soon gone",
		AuthorID:   5,
	})
	require.NoError(t, err)

	err = del.Handle(DeleteCommentCommand{CommentID: view.ID, RequesterID: 6})
	assert.ErrorIs(t, err, domain.ErrNotAuthor)

	require.NoError(t, del.Handle(DeleteCommentCommand{CommentID: view.ID, RequesterID: 5}))

	_, err = repo.FindByID(view.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCommentMissing(t *testing.T) {
	repo := repository.NewMemoryCommentRepository()
	handler := NewDeleteCommentHandler(repo)

	err := handler.Handle(DeleteCommentCommand{CommentID: 99, RequesterID: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
