package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/fadilmartias/resume-matcher/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthUsecase_RegisterAndLogin(t *testing.T) {
	users := newMemUsers()
	uc := usecase.NewAuthUsecase(users, stubTokens{}, []string{"Boss@Example.com"})
	ctx := context.Background()

	u, err := uc.Register(ctx, "  Jane@Example.com ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.NotEqual(t, "correct horse", u.PasswordHash)

	token, err := uc.Login(ctx, "jane@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "token:jane@example.com:user", token)

	admin, err := uc.Register(ctx, "boss@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
}

func TestAuthUsecase_RegisterRejects(t *testing.T) {
	uc := usecase.NewAuthUsecase(newMemUsers(), stubTokens{}, nil)
	ctx := context.Background()

	_, err := uc.Register(ctx, "not-an-email", "longenough")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = uc.Register(ctx, "a@b.co", "short")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = uc.Register(ctx, "bob <bob@x.com>", "longenough")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = uc.Register(ctx, "a@b.co", strings.Repeat("p", 73))
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = uc.Register(ctx, "a@b.co", "longenough")
	require.NoError(t, err)
	_, err = uc.Register(ctx, "A@B.co", "longenough")
	assert.ErrorIs(t, err, usecase.ErrEmailTaken)
}

func TestAuthUsecase_LoginRejects(t *testing.T) {
	uc := usecase.NewAuthUsecase(newMemUsers(), stubTokens{}, nil)
	ctx := context.Background()
	_, err := uc.Register(ctx, "a@b.co", "longenough")
	require.NoError(t, err)

	_, err = uc.Login(ctx, "a@b.co", "wrong password")
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	_, err = uc.Login(ctx, "nobody@b.co", "longenough")
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
}
