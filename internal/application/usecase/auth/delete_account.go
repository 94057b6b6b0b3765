package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

// deleteConfirmation is the literal a client may send to confirm account removal.
const deleteConfirmation = "DELETE"

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID       uuid.UUID
	Password     string
	Confirmation string
}

// DeleteAccountUseCase removes an account with its goals, streaks and partnerships.
type DeleteAccountUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(users adapter.UserRepository, passwords adapter.PasswordService, tokens adapter.TokenService) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{users: users, passwords: passwords, tokens: tokens}
}

// Execute verifies the password, revokes every session and deletes the account.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	if input.Confirmation != "" && input.Confirmation != deleteConfirmation {
		return domainerror.NewAuthError(domainerror.ErrCodeInvalidConfirmation, "confirmation must be exactly 'DELETE'", nil)
	}

	user, err := loadAccount(ctx, uc.users, input.UserID)
	if err != nil {
		return err
	}

	if uc.passwords.Compare(user.PasswordHash, input.Password) != nil {
		return domainerror.NewAuthError(domainerror.ErrCodeInvalidCredentials, "invalid password", domainerror.ErrInvalidCredentials)
	}

	// Revoke first so a failed delete never leaves usable sessions behind.
	if err := uc.tokens.RevokeAll(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to revoke sessions of %s: %w", user.ID, err)
	}
	if err := uc.users.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", user.ID, err)
	}
	return nil
}
