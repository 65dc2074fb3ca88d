package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pandamarket/backend/internal/user/domain"
	"github.com/pandamarket/backend/pkg/auth"
)

// LoginUserCommand represents the command to authenticate a user
type LoginUserCommand struct {
	Email    string
	Password string
}

// LoginResult carries the issued token together with the authenticated user
type LoginResult struct {
	Token string       `json:"accessToken"`
	User  *domain.User `json:"user"`
}

// LoginUserHandler handles user authentication
type LoginUserHandler struct {
	repo domain.UserRepository
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo}
}

// Handle executes the login user command
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(cmd.Email))
	if email == "" || cmd.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	user, err := h.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Nickname)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}
