// Package auth contains account and session use cases.
package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Session is what a successful register, login or refresh hands back to the client.
type Session struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

func issueSession(ctx context.Context, tokens adapter.TokenService, user *entity.User, rememberMe bool) (*Session, error) {
	issued, err := tokens.Issue(ctx, user.ID, user.Email, rememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens for %s: %w", user.ID, err)
	}
	return &Session{User: user, AccessToken: issued.Access, RefreshToken: issued.Refresh}, nil
}

// loadAccount maps a missing user to AUTH-020002 so stale tokens surface as 401.
func loadAccount(ctx context.Context, users adapter.UserRepository, id uuid.UUID) (*entity.User, error) {
	user, err := users.FindByID(ctx, id)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", domainerror.ErrUserNotFound)
	}
	return user, nil
}

// accountEmail lowercases and trims raw, rejecting anything that is not an address.
func accountEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(email) {
		return "", domainerror.NewAuthError(domainerror.ErrCodeInvalidEmail, "invalid email format", domainerror.ErrInvalidEmail)
	}
	return email, nil
}

// resolveTimezone checks name against the IANA database. Empty falls back to UTC.
func resolveTimezone(name string) (string, error) {
	if name == "" {
		return entity.DefaultTimezone, nil
	}
	if _, err := time.LoadLocation(name); err != nil {
		return "", domainerror.NewAuthError(
			domainerror.ErrCodeInvalidTimezone,
			fmt.Sprintf("unknown timezone %q", name),
			domainerror.ErrInvalidTimezone,
		)
	}
	return name, nil
}

func invalidToken(message string) error {
	return domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, message, domainerror.ErrInvalidToken)
}
