// Package auth handles credential hashing and explicit session values.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or credential")
	ErrWeakCredential     = errors.New("credential must be at least 8 characters")
	ErrEmailExists        = errors.New("email already registered")
)

// MinCredentialLength is the minimum accepted credential length.
const MinCredentialLength = 8

// ValidateCredential checks if the credential meets minimum requirements.
func ValidateCredential(credential string) error {
	if len(credential) < MinCredentialLength {
		return ErrWeakCredential
	}
	return nil
}

// HashCredential validates and hashes a credential for storage. The hash is
// the opaque credential field carried by actor records; the plaintext is
// never persisted.
func HashCredential(credential string) (string, error) {
	if err := ValidateCredential(credential); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash credential: %w", err)
	}
	return string(hash), nil
}

// CheckCredential compares a stored hash against a presented credential.
func CheckCredential(hash, credential string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
