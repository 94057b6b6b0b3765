// Package adapters implements the application ports backed by third-party libraries.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/integration/persistence"
)

const (
	issuer = "commitly"

	kindAccess  = "access"
	kindRefresh = "refresh"

	// rememberMeFactor stretches both lifetimes for "remember me" sessions.
	rememberMeFactor = 4
)

// ErrWrongTokenType is returned when an access token is presented as a refresh token or the reverse.
var ErrWrongTokenType = errors.New("wrong token type")

// sessionClaims is the JWT payload. The subject is the user id.
type sessionClaims struct {
	Email string `json:"email"`
	Kind  string `json:"kind"`
	jwt.RegisteredClaims
}

// TokenConfig holds the signing secret and token lifetimes.
type TokenConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type jwtTokenService struct {
	cfg    TokenConfig
	store  persistence.TokenRepository
	parser *jwt.Parser
}

// NewTokenService signs HS256 tokens and records refresh tokens in store.
func NewTokenService(cfg TokenConfig, store persistence.TokenRepository) adapter.TokenService {
	return &jwtTokenService{
		cfg:    cfg,
		store:  store,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer)),
	}
}

// Issue signs an access and a refresh token and stores the refresh token.
// rememberMe stretches both lifetimes by rememberMeFactor.
func (s *jwtTokenService) Issue(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*adapter.SessionTokens, error) {
	accessTTL, refreshTTL := s.cfg.AccessExpiry, s.cfg.RefreshExpiry
	if rememberMe {
		accessTTL *= rememberMeFactor
		refreshTTL *= rememberMeFactor
	}

	now := time.Now().UTC()
	access, err := s.sign(userID, email, kindAccess, now, accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.sign(userID, email, kindRefresh, now, refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.store.Store(ctx, refresh, userID, now.Add(refreshTTL)); err != nil {
		return nil, fmt.Errorf("record refresh token: %w", err)
	}

	return &adapter.SessionTokens{Access: access, Refresh: refresh}, nil
}

// VerifyAccess validates an access token and returns its claims.
func (s *jwtTokenService) VerifyAccess(_ context.Context, token string) (*adapter.Claims, error) {
	return s.verify(token, kindAccess)
}

// VerifyRefresh validates a refresh token signature and kind. Revocation is checked by Active.
func (s *jwtTokenService) VerifyRefresh(_ context.Context, token string) (*adapter.Claims, error) {
	return s.verify(token, kindRefresh)
}

// Active reports whether the refresh token is stored, unrevoked and unexpired.
func (s *jwtTokenService) Active(ctx context.Context, refreshToken string) (bool, error) {
	return s.store.Active(ctx, refreshToken)
}

// Revoke invalidates a single refresh token.
func (s *jwtTokenService) Revoke(ctx context.Context, refreshToken string) error {
	return s.store.Revoke(ctx, refreshToken)
}

// RevokeAll invalidates every refresh token of the user.
func (s *jwtTokenService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return s.store.RevokeAllForUser(ctx, userID)
}

// sign gives every token a unique jti so two tokens minted in the same second differ.
func (s *jwtTokenService) sign(userID uuid.UUID, email, kind string, now time.Time, ttl time.Duration) (string, error) {
	claims := sessionClaims{
		Email: email,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}

func (s *jwtTokenService) verify(token, kind string) (*adapter.Claims, error) {
	var claims sessionClaims
	_, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if claims.Kind != kind {
		return nil, fmt.Errorf("%w: want %s", ErrWrongTokenType, kind)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("token subject: %w", err)
	}

	return &adapter.Claims{UserID: userID, Email: claims.Email, ExpiresAt: claims.ExpiresAt.Time}, nil
}
