// Package model maps the domain entities onto GORM rows.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
)

// UserModel is one account. Email is stored lowercased and is unique. The field
// list mirrors entity.User so the two convert directly.
type UserModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email              string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	DisplayName        string    `gorm:"type:varchar(100);not null;default:''"`
	PasswordHash       string    `gorm:"type:varchar(255);not null"`
	Timezone           string    `gorm:"type:varchar(64);not null;default:'UTC'"`
	EmailNotifications bool      `gorm:"not null;default:true"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts the row to a domain User.
func (m *UserModel) ToEntity() *entity.User {
	u := entity.User(*m)
	return &u
}

// UserFromEntity fills in the default timezone for users built without one.
func UserFromEntity(u *entity.User) *UserModel {
	m := UserModel(*u)
	if m.Timezone == "" {
		m.Timezone = entity.DefaultTimezone
	}
	return &m
}
