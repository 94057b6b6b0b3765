package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Email       string
	DisplayName string
	Password    string
	Timezone    string
}

// RegisterUserUseCase creates an account and opens its first session.
type RegisterUserUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(users adapter.UserRepository, passwords adapter.PasswordService, tokens adapter.TokenService) *RegisterUserUseCase {
	return &RegisterUserUseCase{users: users, passwords: passwords, tokens: tokens}
}

// Execute validates the input, stores the user and issues tokens.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*Session, error) {
	email, err := accountEmail(input.Email)
	if err != nil {
		return nil, err
	}

	if err := uc.passwords.CheckStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeWeakPassword, err.Error(), domainerror.ErrWeakPassword)
	}

	timezone, err := resolveTimezone(input.Timezone)
	if err != nil {
		return nil, err
	}

	taken, err := uc.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email %s: %w", email, err)
	}
	if taken {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeEmailExists, "email already exists", domainerror.ErrEmailAlreadyExists)
	}

	hash, err := uc.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(email, strings.TrimSpace(input.DisplayName), hash)
	user.Timezone = timezone
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return issueSession(ctx, uc.tokens, user, false)
}
