package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/fadilmartias/resume-matcher/internal/repository"
	"github.com/fadilmartias/resume-matcher/internal/util"
)

const (
	minPasswordLength = 8
	// bcrypt only accepts up to 72 bytes
	maxPasswordBytes = 72
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type TokenIssuer interface {
	Generate(email, role string) (string, error)
}

type AuthUsecase struct {
	users  UserStore
	tokens TokenIssuer
	admins map[string]struct{}
}

// NewAuthUsecase builds the auth flow. Accounts registered with an email in
// adminEmails get the admin role.
func NewAuthUsecase(users UserStore, tokens TokenIssuer, adminEmails []string) *AuthUsecase {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[normalizeEmail(e)] = struct{}{}
	}
	return &AuthUsecase{users: users, tokens: tokens, admins: admins}
}

func (uc *AuthUsecase) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordBytes)
	}

	existing, err := uc.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := model.RoleUser
	if _, ok := uc.admins[email]; ok {
		role = model.RoleAdmin
	}
	user := &model.User{Email: email, PasswordHash: hash, Role: role}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := uc.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !util.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	return uc.tokens.Generate(user.Email, user.Role)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
