// Package entity holds the domain model: accounts, goals, streaks, partnerships
// and the notifications they produce.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/valueobject"
)

const DefaultTimezone = "UTC"

// User is an account. Its timezone decides which calendar day a check-in counts for.
type User struct {
	ID                 uuid.UUID
	Email              string
	DisplayName        string
	PasswordHash       string
	Timezone           string
	EmailNotifications bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewUser opens an account in UTC with email notifications on.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:                 uuid.New(),
		Email:              email,
		DisplayName:        strings.TrimSpace(displayName),
		PasswordHash:       passwordHash,
		Timezone:           DefaultTimezone,
		EmailNotifications: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Name is how other people see the user: the display name, else the email address.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

// Today is the user's local calendar date at instant now.
func (u *User) Today(now time.Time) valueobject.Date {
	return valueobject.DateOf(now, valueobject.LoadLocation(u.Timezone))
}

// Touch bumps UpdatedAt.
func (u *User) Touch() {
	u.UpdatedAt = time.Now().UTC()
}
