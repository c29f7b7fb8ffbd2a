package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// PasswordConfig holds configuration for password hashing and verification.
type PasswordConfig struct {
	BcryptCost int
}

// NewPasswordConfig creates a password configuration from the environment.
// It reads BCRYPT_COST (default: 12).
func NewPasswordConfig() (*PasswordConfig, error) {
	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12"
	}

	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}
	if cost < 10 || cost > 14 {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", cost)
	}

	return &PasswordConfig{BcryptCost: cost}, nil
}

// HashPassword hashes a password using bcrypt.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a stored hash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw)) == nil
}
