package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
)

// SessionClaims represents the data in a session ticket (UserID, Role, Expiry).
type SessionClaims struct {
	UserID string    `json:"userId"`
	Role   string    `json:"role"`
	Expiry time.Time `json:"expiry"`
}

// GenerateSessionTicket encrypts a session ticket for the given user ID and role.
// The key must be 32 bytes long.
func GenerateSessionTicket(key []byte, userID, role string, ttl time.Duration) (string, error) {
	claims := SessionClaims{
		UserID: userID,
		Role:   role,
		Expiry: time.Now().Add(ttl),
	}
	ticket, err := paseto.NewV2().Encrypt(key, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate session ticket: %w", err)
	}
	return ticket, nil
}

// ValidateSessionTicket decrypts the given ticket and checks for expiry and
// required roles.
func ValidateSessionTicket(key []byte, ticket string, requiredRoles ...string) (*SessionClaims, error) {
	claims, err := parseTicket(key, ticket)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session ticket: %w", err)
	}

	// Check if the ticket has expired
	if time.Now().After(claims.Expiry) {
		return nil, errors.New("session ticket expired")
	}

	// If no roles are required, any valid ticket is acceptable
	if len(requiredRoles) == 0 {
		return claims, nil
	}

	// Check if the user role matches any of the required roles
	for _, role := range requiredRoles {
		if claims.Role == role {
			return claims, nil
		}
	}

	return nil, errors.New("insufficient permissions")
}

// parseTicket decrypts the ticket and extracts claims from it.
func parseTicket(key []byte, ticket string) (*SessionClaims, error) {
	var claims SessionClaims
	if err := paseto.NewV2().Decrypt(ticket, key, &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt session ticket: %w", err)
	}
	return &claims, nil
}
