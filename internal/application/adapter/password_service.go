package adapter

// PasswordService hashes account passwords.
type PasswordService interface {
	Hash(password string) (string, error)
	// Compare returns nil when password produced hash.
	Compare(hash, password string) error
	CheckStrength(password string) error
}
