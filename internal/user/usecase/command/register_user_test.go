package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamarket/backend/internal/user/domain"
	"github.com/pandamarket/backend/internal/user/repository"
	"github.com/pandamarket/backend/pkg/auth"
)

func TestRegisterUser(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	handler := NewRegisterUserHandler(repo)

	user, err := handler.Handle(RegisterUserCommand{
		Email:    "Panda@Example.com",
		Nickname: "panda",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "panda@example.com", user.Email)
	assert.NotEqual(t, "supersecret", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "supersecret"))
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	handler := NewRegisterUserHandler(repo)

	_, err := handler.Handle(RegisterUserCommand{Email: "a@b.com", Nickname: "first", Password: "supersecret"})
	require.NoError(t, err)

	_, err = handler.Handle(RegisterUserCommand{Email: "a@b.com", Nickname: "second", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterUserDuplicateNickname(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	handler := NewRegisterUserHandler(repo)

	_, err := handler.Handle(RegisterUserCommand{Email: "a@b.com", Nickname: "panda", Password: "supersecret"})
	require.NoError(t, err)

	_, err = handler.Handle(RegisterUserCommand{Email: "c@d.com", Nickname: "panda", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrNicknameTaken)
}

func TestRegisterUserValidation(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	handler := NewRegisterUserHandler(repo)

	_, err := handler.Handle(RegisterUserCommand{Email: "not-an-email", Nickname: "panda", Password: "supersecret"})
	assert.Error(t, err)

	_, err = handler.Handle(RegisterUserCommand{Email: "a@b.com", Nickname: "", Password: "supersecret"})
	assert.Error(t, err)

	_, err = handler.Handle(RegisterUserCommand{Email: "a@b.com", Nickname: "panda", Password: "short"})
	assert.Error(t, err)
}

func TestLoginUser(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	register := NewRegisterUserHandler(repo)
	login := NewLoginUserHandler(repo)

	_, err := register.Handle(RegisterUserCommand{Email: "a@b.com", Nickname: "panda", Password: "supersecret"})
	require.NoError(t, err)

	result, err := login.Handle(LoginUserCommand{Email: "a@b.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "panda", result.User.Nickname)

	claims, err := auth.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
}

func TestLoginUserWrongPassword(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	register := NewRegisterUserHandler(repo)
	login := NewLoginUserHandler(repo)

	_, err := register.Handle(RegisterUserCommand{Email: "a@b.com", Nickname: "panda", Password: "supersecret"})
	require.NoError(t, err)

	_, err = login.Handle(LoginUserCommand{Email: "a@b.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUserUnknownEmail(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	login := NewLoginUserHandler(repo)

	_, err := login.Handle(LoginUserCommand{Email: "ghost@b.com", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
