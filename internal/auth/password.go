// ABOUTME: Credential verifier backed by bcrypt
// ABOUTME: Hashes plaintext secrets at registration and compares them at login

package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// dummyHash is compared against when the account does not exist, so login
// takes roughly the same time whether or not the email is registered.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// CredentialVerifier is the hashing collaborator used at registration and
// login. The rest of the core treats it as opaque.
type CredentialVerifier interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
	CompareDummy(password string)
}

// BcryptVerifier implements CredentialVerifier with bcrypt at default cost.
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier creates a verifier at bcrypt's default cost.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{cost: bcrypt.DefaultCost}
}

// Hash derives a bcrypt hash from a plaintext password.
func (v *BcryptVerifier) Hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// Compare reports whether the plaintext password matches the stored hash.
func (v *BcryptVerifier) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CompareDummy burns a bcrypt comparison against a fixed hash. Called on
// the unknown-email login path to keep timing consistent.
func (v *BcryptVerifier) CompareDummy(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
