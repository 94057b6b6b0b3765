package adapters

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/commitly/backend/internal/application/adapter"
)

const (
	// DefaultBcryptCost is used in production. Tests pass bcrypt.MinCost.
	DefaultBcryptCost = 12

	minPasswordLength = 8
	// bcrypt ignores everything after 72 bytes.
	maxPasswordLength = 72
)

type bcryptPasswords struct {
	cost int
}

// NewPasswordService hashes with bcrypt. A cost of zero selects DefaultBcryptCost.
func NewPasswordService(cost int) adapter.PasswordService {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return bcryptPasswords{cost: cost}
}

// Hash returns the bcrypt hash of password at the configured cost.
func (p bcryptPasswords) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	return string(hash), err
}

// Compare returns nil only when password matches hash.
func (p bcryptPasswords) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// CheckStrength enforces the length bounds bcrypt can hash faithfully.
func (p bcryptPasswords) CheckStrength(password string) error {
	switch n := len(password); {
	case n < minPasswordLength:
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	case n > maxPasswordLength:
		return fmt.Errorf("password must be at most %d bytes long", maxPasswordLength)
	}
	return nil
}
