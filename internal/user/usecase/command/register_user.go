package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pandamarket/backend/internal/user/domain"
	"github.com/pandamarket/backend/pkg/auth"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Email    string
	Nickname string
	Password string
}

// RegisterUserHandler handles user registration
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(cmd.Email))
	nickname := strings.TrimSpace(cmd.Nickname)

	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if nickname == "" {
		return nil, fmt.Errorf("nickname is required")
	}
	if len(cmd.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	if _, err := h.repo.FindByEmail(email); !errors.Is(err, domain.ErrNotFound) {
		if err != nil {
			return nil, err
		}
		return nil, domain.ErrEmailTaken
	}
	if _, err := h.repo.FindByNickname(nickname); !errors.Is(err, domain.ErrNotFound) {
		if err != nil {
			return nil, err
		}
		return nil, domain.ErrNicknameTaken
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:    email,
		Nickname: nickname,
		Password: hashed,
	}
	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
