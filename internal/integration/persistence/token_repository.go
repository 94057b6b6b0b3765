package persistence

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/commitly/backend/internal/integration/persistence/model"
)

// TokenRepository keeps the server-side record of refresh tokens. Only digests are
// stored, so a leaked table cannot be replayed.
type TokenRepository interface {
	Store(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error
	// Active reports whether token was stored, is unrevoked and has not expired.
	Active(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository stores refresh tokens by digest.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Store saves the digest of token.
func (r *tokenRepository) Store(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Create(&model.RefreshTokenModel{
		ID:        uuid.New(),
		TokenHash: digest(token),
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}).Error
}

// Active reports whether token is stored, unrevoked and unexpired.
func (r *tokenRepository) Active(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", digest(token), time.Now().UTC()).
		Count(&count).Error
	return count > 0, err
}

// Revoke marks token revoked. Unknown tokens are ignored.
func (r *tokenRepository) Revoke(ctx context.Context, token string) error {
	return r.revoke(ctx, "token_hash = ?", digest(token))
}

// RevokeAllForUser revokes every live token of the user.
func (r *tokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return r.revoke(ctx, "user_id = ?", userID)
}

func (r *tokenRepository) revoke(ctx context.Context, query string, arg any) error {
	return r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where(query, arg).
		Where("revoked_at IS NULL").
		Update("revoked_at", time.Now().UTC()).Error
}

// PurgeExpired deletes tokens that expired before cutoff.
func (r *tokenRepository) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", cutoff.UTC()).
		Delete(&model.RefreshTokenModel{})
	return result.RowsAffected, result.Error
}
