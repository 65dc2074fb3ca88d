package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamarket/backend/internal/comment/domain"
	"github.com/pandamarket/backend/internal/comment/repository"
	"github.com/pandamarket/backend/internal/target"
)

func seedComments(t *testing.T, repo *repository.MemoryCommentRepository, productID uint, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		pid := productID
		err := repo.Create(&domain.Comment{
			ProductID: &pid,
			AuthorID:  1,
			Content:   fmt.Sprintf("comment %d", i+1),
		})
		require.NoError(t, err)
	}
}

func pageIDs(page *CommentPage) []uint {
	ids := make([]uint, 0, len(page.Items))
	for _, item := range page.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestListCommentsCursorWalk(t *testing.T) {
	repo := repository.NewMemoryCommentRepository()
	repo.SeedTarget(target.TypeProduct, 1)
	seedComments(t, repo, 1, 12)

	handler := NewListCommentsHandler(repo)

	// Page 1: newest five
	page, err := handler.Handle(ListCommentsQuery{TargetType: "product", TargetID: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, []uint{12, 11, 10, 9, 8}, pageIDs(page))
	assert.Equal(t, int64(12), page.TotalCount)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, uint(8), *page.NextCursor)

	// Page 2: resume from the cursor
	page, err = handler.Handle(ListCommentsQuery{TargetType: "product", TargetID: 1, Limit: 5, Cursor: page.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []uint{7, 6, 5, 4, 3}, pageIDs(page))
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, uint(3), *page.NextCursor)

	// Page 3: short page ends the stream
	page, err = handler.Handle(ListCommentsQuery{TargetType: "product", TargetID: 1, Limit: 5, Cursor: page.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 1}, pageIDs(page))
	assert.Nil(t, page.NextCursor)
}

func TestListCommentsOldestOrder(t *testing.T) {
	repo := repository.NewMemoryCommentRepository()
	repo.SeedTarget(target.TypeProduct, 1)
	seedComments(t, repo, 1, 4)

	handler := NewListCommentsHandler(repo)

	page, err := handler.Handle(ListCommentsQuery{TargetType: "product", TargetID: 1, OrderBy: domain.OrderOldest, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, pageIDs(page))
	require.NotNil(t, page.NextCursor)

	page, err = handler.Handle(ListCommentsQuery{TargetType: "product", TargetID: 1, OrderBy: domain.OrderOldest, Limit: 3, Cursor: page.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []uint{4}, pageIDs(page))
	assert.Nil(t, page.NextCursor)
}

func TestListCommentsMissingCursor(t *testing.T) {
	repo := repository.NewMemoryCommentRepository()
	repo.SeedTarget(target.TypeProduct, 1)
	seedComments(t, repo, 1, 3)

	handler := NewListCommentsHandler(repo)

	// A cursor pointing at a deleted row yields a deterministic empty page
	missing := uint(99)
	page, err := handler.Handle(ListCommentsQuery{TargetType: "product", TargetID: 1, Limit: 5, Cursor: &missing})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Nil(t, page.NextCursor)
}

func TestListCommentsMissingTarget(t *testing.T) {
	repo := repository.NewMemoryCommentRepository()
	handler := NewListCommentsHandler(repo)

	_, err := handler.Handle(ListCommentsQuery{TargetType: "product", TargetID: 42, Limit: 5})
	assert.ErrorIs(t, err, target.ErrNotFound)
}

func TestListCommentsScopedToTarget(t *testing.T) {
	repo := repository.NewMemoryCommentRepository()
	repo.SeedTarget(target.TypeProduct, 1)
	repo.SeedTarget(target.TypeArticle, 1)
	seedComments(t, repo, 1, 2)

	aid := uint(1)
	require.NoError(t, repo.Create(&domain.Comment{ArticleID: &aid, AuthorID: 1, Content: "on the article"}))

	handler := NewListCommentsHandler(repo)

	page, err := handler.Handle(ListCommentsQuery{TargetType: "article", TargetID: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "on the article", page.Items[0].Content)
	assert.Equal(t, int64(1), page.TotalCount)
}

func TestListCommentsAnonymousWriterFallback(t *testing.T) {
	repo := repository.NewMemoryCommentRepository()
	repo.SeedTarget(target.TypeProduct, 1)

	// Author row missing: the view falls back to the anonymous nickname
	pid := uint(1)
	require.NoError(t, repo.Create(&domain.Comment{ProductID: &pid, AuthorID: 77, Content: "orphaned"}))

	handler := NewListCommentsHandler(repo)

	page, err := handler.Handle(ListCommentsQuery{TargetType: "product", TargetID: 1, Limit: 5})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, domain.AnonymousNickname, page.Items[0].Writer.Nickname)
}
