// Package adapter declares the ports the use cases depend on. Implementations live
// under internal/integration.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionTokens is a freshly issued access and refresh token.
type SessionTokens struct {
	Access  string
	Refresh string
}

// Claims identifies the account a verified token belongs to.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and verifies session tokens. Refresh tokens are also recorded
// server-side so they can be rotated and revoked.
type TokenService interface {
	Issue(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*SessionTokens, error)
	VerifyAccess(ctx context.Context, token string) (*Claims, error)

	// VerifyRefresh checks signature, expiry and type only. Use Active for revocation.
	VerifyRefresh(ctx context.Context, token string) (*Claims, error)
	Active(ctx context.Context, refreshToken string) (bool, error)

	Revoke(ctx context.Context, refreshToken string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}
