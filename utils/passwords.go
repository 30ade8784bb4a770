package utils

import (
	"fmt"
	"math/rand"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the well known first password of a freshly created
// account. Logging in with it forces a password change.
const DefaultPassword = "password"

// tempPasswordPattern matches the 6 digit passwords issued by resets.
var tempPasswordPattern = regexp.MustCompile(`^\d{6}$`)

// HashPassword hashes a plain text password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a plain text password against a stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateTempPassword generates a random 6-digit temporary password for
// account resets.
func GenerateTempPassword() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// IsTemporaryPassword reports whether the password is the default or a
// reset-issued one. Logging in with either forces a change.
func IsTemporaryPassword(password string) bool {
	return password == DefaultPassword || tempPasswordPattern.MatchString(password)
}
