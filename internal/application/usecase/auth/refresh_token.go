package auth

import (
	"context"
	"fmt"

	"github.com/commitly/backend/internal/application/adapter"
)

// RefreshTokenInput represents the input for token refresh.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenUseCase rotates a refresh token. Each refresh token is accepted once.
type RefreshTokenUseCase struct {
	users  adapter.UserRepository
	tokens adapter.TokenService
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase instance.
func NewRefreshTokenUseCase(users adapter.UserRepository, tokens adapter.TokenService) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{users: users, tokens: tokens}
}

// Execute revokes the presented token and issues a fresh pair.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*Session, error) {
	claims, err := uc.tokens.VerifyRefresh(ctx, input.RefreshToken)
	if err != nil {
		return nil, invalidToken("invalid or expired refresh token")
	}

	live, err := uc.tokens.Active(ctx, input.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if !live {
		return nil, invalidToken("refresh token has been revoked")
	}

	user, err := loadAccount(ctx, uc.users, claims.UserID)
	if err != nil {
		return nil, err
	}

	if err := uc.tokens.Revoke(ctx, input.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return issueSession(ctx, uc.tokens, user, false)
}
