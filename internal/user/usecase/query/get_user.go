package query

import (
	"fmt"

	"github.com/pandamarket/backend/internal/user/domain"
)

// GetUserQuery represents the query to fetch a single user
type GetUserQuery struct {
	UserID uint
}

// GetUserHandler handles user lookups
type GetUserHandler struct {
	repo domain.UserRepository
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(repo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle executes the get user query
func (h *GetUserHandler) Handle(q GetUserQuery) (*domain.User, error) {
	if q.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}
	return h.repo.FindByID(q.UserID)
}
