// Package auth implements the shared-password gate in front of the
// dashboard.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPassword is returned for a wrong password.
var ErrInvalidPassword = errors.New("senha inválida")

// Gate checks a password against one shared secret. The secret is either
// a bcrypt hash or a plain string; a gate with neither is open.
type Gate struct {
	plain []byte
	hash  []byte
}

// NewGate builds a gate. hash wins over plain when both are set.
func NewGate(plain, hash string) (Gate, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return Gate{}, fmt.Errorf("auth: password hash: %w", err)
		}
		return Gate{hash: []byte(hash)}, nil
	}
	return Gate{plain: []byte(plain)}, nil
}

// Open reports whether the gate accepts any password.
func (g Gate) Open() bool { return len(g.plain) == 0 && len(g.hash) == 0 }

// Check returns nil when password matches the shared secret.
func (g Gate) Check(password string) error {
	switch {
	case g.Open():
		return nil
	case len(g.hash) > 0:
		if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
			return ErrInvalidPassword
		}
		return nil
	default:
		if subtle.ConstantTimeCompare(g.plain, []byte(password)) != 1 {
			return ErrInvalidPassword
		}
		return nil
	}
}

// Hash produces a bcrypt hash suitable for the auth.password_hash setting.
func Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(h), nil
}
