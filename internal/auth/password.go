package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrWeakPassword    = errors.New("password must be at least 8 characters")
)

// PasswordGate verifies the single server password that protects credential
// writes. There are no user accounts; one configured password guards the
// stored AI key.
type PasswordGate struct {
	hash []byte
}

// NewPasswordGate hashes the configured password with bcrypt. An empty
// password returns a nil gate, meaning credential writes are unprotected
// (dev mode).
func NewPasswordGate(password string) (*PasswordGate, error) {
	if password == "" {
		return nil, nil
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &PasswordGate{hash: hash}, nil
}

// Verify checks a login attempt against the configured password.
func (g *PasswordGate) Verify(password string) error {
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
