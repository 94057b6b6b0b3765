package auth

import (
	"context"

	"github.com/commitly/backend/internal/application/adapter"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginUserUseCase exchanges credentials for a session.
type LoginUserUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(users adapter.UserRepository, passwords adapter.PasswordService, tokens adapter.TokenService) *LoginUserUseCase {
	return &LoginUserUseCase{users: users, passwords: passwords, tokens: tokens}
}

// Execute checks the credentials. Unknown emails and wrong passwords fail identically.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*Session, error) {
	rejected := domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)

	email, err := accountEmail(input.Email)
	if err != nil {
		return nil, rejected
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, rejected
	}
	if uc.passwords.Compare(user.PasswordHash, input.Password) != nil {
		return nil, rejected
	}

	return issueSession(ctx, uc.tokens, user, input.RememberMe)
}
