package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

// UpdateProfileInput represents a partial profile update. Nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID             uuid.UUID
	DisplayName        *string
	Timezone           *string
	EmailNotifications *bool
}

// UpdateProfileUseCase updates the authenticated user's preferences.
// The timezone decides which calendar day a check-in counts for.
type UpdateProfileUseCase struct {
	users adapter.UserRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(users adapter.UserRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{users: users}
}

// Execute applies the non-nil fields of input and saves the user.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*entity.User, error) {
	user, err := loadAccount(ctx, uc.users, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Timezone != nil {
		// An explicit empty string is not a reset to UTC.
		if *input.Timezone == "" {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidTimezone, "timezone must not be empty", domainerror.ErrInvalidTimezone)
		}
		timezone, err := resolveTimezone(*input.Timezone)
		if err != nil {
			return nil, err
		}
		user.Timezone = timezone
	}
	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.EmailNotifications != nil {
		user.EmailNotifications = *input.EmailNotifications
	}
	user.Touch()

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	return user, nil
}
