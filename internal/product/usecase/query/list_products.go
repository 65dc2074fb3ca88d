package query

import (
	"fmt"

	"github.com/pandamarket/backend/internal/product/domain"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	Keyword  string
	Order    string
	Page     int
	PageSize int
}

// ProductPage is one page of a product listing
type ProductPage struct {
	Items      []domain.Product `json:"list"`
	TotalCount int64            `json:"totalCount"`
	HasMore    bool             `json:"hasMore"`
}

// ListProductsHandler handles product listing queries
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(q ListProductsQuery) (*ProductPage, error) {
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

	return &ProductPage{
		Items:      items,
		TotalCount: total,
		HasMore:    int64(offset+len(items)) < total,
	}, nil
}
