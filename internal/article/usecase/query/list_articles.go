package query

import (
	"fmt"

	"github.com/pandamarket/backend/internal/article/domain"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// ListArticlesQuery represents the query to list articles
type ListArticlesQuery struct {
	Keyword  string
	Order    string
	Page     int
	PageSize int
}

// ArticlePage is one page of an article listing
type ArticlePage struct {
	Items      []domain.Article `json:"list"`
	TotalCount int64            `json:"totalCount"`
	HasMore    bool             `json:"hasMore"`
}

// ListArticlesHandler handles article listing queries
type ListArticlesHandler struct {
	repo domain.ArticleRepository
}

// NewListArticlesHandler creates a new list articles handler
func NewListArticlesHandler(repo domain.ArticleRepository) *ListArticlesHandler {
	return &ListArticlesHandler{repo: repo}
}

// Handle executes the list articles query
func (h *ListArticlesHandler) Handle(q ListArticlesQuery) (*ArticlePage, error) {
	order := q.Order
	switch order {
	case "":
		order = domain.OrderRecent
	case domain.OrderRecent, domain.OrderOldest, domain.OrderFavorite:
	default:
		return nil, fmt.Errorf("unknown order %q", q.Order)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	total, err := h.repo.Count(q.Keyword)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * size
	items, err := h.repo.FindAll(domain.ListParams{
		Keyword: q.Keyword,
		Order:   order,
		Limit:   size,
		Offset:  offset,
	})
	if err != nil {
		return nil, err
	}

	return &ArticlePage{
		Items:      items,
		TotalCount: total,
		HasMore:    int64(offset+len(items)) < total,
	}, nil
}
