package command

import (
	"github.com/pandamarket/backend/internal/product/domain"
)

// DeleteProductCommand represents the command to remove a product listing
type DeleteProductCommand struct {
	ProductID   uint
	RequesterID uint
}

// DeleteProductHandler handles product deletion
type DeleteProductHandler struct {
	repo domain.ProductRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	product, err := h.repo.FindByID(cmd.ProductID)
	if err != nil {
		return err
	}
	if product.OwnerID != cmd.RequesterID {
		return domain.ErrNotOwner
	}
	return h.repo.Delete(cmd.ProductID)
}
