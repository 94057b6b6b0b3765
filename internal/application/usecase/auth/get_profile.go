package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/entity"
)

// GetProfileInput represents the input for reading the current user.
type GetProfileInput struct {
	UserID uuid.UUID
}

// GetProfileUseCase returns the authenticated user's profile.
type GetProfileUseCase struct {
	users adapter.UserRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(users adapter.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{users: users}
}

// Execute loads the caller's profile.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*entity.User, error) {
	return loadAccount(ctx, uc.users, input.UserID)
}
