package id

import "github.com/google/uuid"

// GenerateToken returns an opaque token identifying a generated exam until
// it is submitted.
func GenerateToken() string {
	return uuid.NewString()
}

// ValidToken reports whether s has the shape of a token from GenerateToken.
func ValidToken(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
