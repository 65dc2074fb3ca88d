package query

import (
	"fmt"

	"github.com/pandamarket/backend/internal/article/domain"
)

// GetArticleQuery represents the query to fetch a single article
type GetArticleQuery struct {
	ArticleID uint
}

// GetArticleHandler handles single article lookups
type GetArticleHandler struct {
	repo domain.ArticleRepository
}

// NewGetArticleHandler creates a new get article handler
func NewGetArticleHandler(repo domain.ArticleRepository) *GetArticleHandler {
	return &GetArticleHandler{repo: repo}
}

// Handle executes the get article query
func (h *GetArticleHandler) Handle(q GetArticleQuery) (*domain.Article, error) {
	if q.ArticleID == 0 {
		return nil, fmt.Errorf("article id is required")
	}
	return h.repo.FindByID(q.ArticleID)
}
