package query

import (
	"fmt"

	"github.com/pandamarket/backend/internal/product/domain"
)

// GetProductQuery represents the query to fetch a single product
type GetProductQuery struct {
	ProductID uint
}

// GetProductHandler handles single product lookups
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(q GetProductQuery) (*domain.Product, error) {
	if q.ProductID == 0 {
		return nil, fmt.Errorf("product id is required")
	}
	return h.repo.FindByID(q.ProductID)
}
