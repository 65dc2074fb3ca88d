package command

import (
	"fmt"
	"strings"

	"github.com/pandamarket/backend/internal/product/domain"
)

// CreateProductCommand represents the command to list a new product
type CreateProductCommand struct {
	OwnerID     uint
	Name        string
	Description string
	Price       int64
	Images      []string
	Tags        []string
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("price must not be negative")
	}
	if cmd.OwnerID == 0 {
		return nil, fmt.Errorf("owner id is required")
	}

	product := &domain.Product{
		OwnerID:     cmd.OwnerID,
		Name:        name,
		Description: cmd.Description,
		Price:       cmd.Price,
		Images:      cmd.Images,
		Tags:        cmd.Tags,
	}
	if err := h.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}
