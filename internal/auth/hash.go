// Package auth holds the credential hasher. Hashing is deliberately slow
// (bcrypt); callers must not hold store transactions open across a call.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrCorruptHash means a stored password hash is not a parsable bcrypt
// string. That is a data-integrity fault, not a wrong password, and callers
// log it separately even though the client sees a plain failed login.
var ErrCorruptHash = errors.New("stored password hash is corrupt")

type Hasher struct {
	Cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{Cost: cost}
}

// Hash returns a self-describing bcrypt string (algorithm, cost, random
// salt, digest). The salt is fresh per call, so hashing the same password
// twice yields different strings.
func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether password matches stored. A mismatch is (false, nil);
// an error is returned only when stored is not a valid bcrypt hash.
func (h *Hasher) Verify(password, stored string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrCorruptHash, err)
	}
}
