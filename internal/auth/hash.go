// Package auth hashes passwords and issues and verifies access tokens.
package auth

import "golang.org/x/crypto/bcrypt"

// HashManager hashes and compares passwords with bcrypt.
type HashManager struct {
	cost int
}

// NewHashManager returns a HashManager using cost, or bcrypt.DefaultCost when cost is zero.
func NewHashManager(cost int) *HashManager {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &HashManager{cost: cost}
}

// Hash returns a salted digest of plaintext.
func (h *HashManager) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Compare reports whether plaintext matches digest.
func (h *HashManager) Compare(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
