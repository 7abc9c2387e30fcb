package utils

import "github.com/google/uuid"

// NewToken returns a random identifier for in-memory identity
func NewToken() string {
	return uuid.NewString()
}
