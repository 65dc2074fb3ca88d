package command

import (
	"fmt"
	"strings"

	"github.com/pandamarket/backend/internal/product/domain"
)

// UpdateProductCommand carries a partial update to an existing product.
// Nil fields are left untouched.
type UpdateProductCommand struct {
	ProductID   uint
	RequesterID uint
	Name        *string
	Description *string
	Price       *int64
	Images      []string
	Tags        []string
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := h.repo.FindByID(cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if product.OwnerID != cmd.RequesterID {
		return nil, domain.ErrNotOwner
	}

	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return nil, fmt.Errorf("product name must not be empty")
		}
		product.Name = name
	}
	if cmd.Description != nil {
		product.Description = *cmd.Description
	}
	if cmd.Price != nil {
		if *cmd.Price < 0 {
			return nil, fmt.Errorf("price must not be negative")
		}
		product.Price = *cmd.Price
	}
	if cmd.Images != nil {
		product.Images = cmd.Images
	}
	if cmd.Tags != nil {
		product.Tags = cmd.Tags
	}

	if err := h.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}
