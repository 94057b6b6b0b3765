package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

// LogoutUserInput names the session to close.
type LogoutUserInput struct {
	UserID       uuid.UUID
	RefreshToken string
}

// LogoutUserUseCase revokes one refresh token of the caller.
type LogoutUserUseCase struct {
	tokens adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokens adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{tokens: tokens}
}

// Execute rejects tokens issued to someone else.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) error {
	if input.RefreshToken == "" {
		return domainerror.NewAuthError(domainerror.ErrCodeMissingToken, "refresh token is required", domainerror.ErrInvalidToken)
	}

	claims, err := uc.tokens.VerifyRefresh(ctx, input.RefreshToken)
	if err != nil || claims.UserID != input.UserID {
		return invalidToken("refresh token does not belong to the current session")
	}

	if err := uc.tokens.Revoke(ctx, input.RefreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
