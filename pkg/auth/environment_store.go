package auth

import (
	"os"
	"time"
)

// EnvironmentStore reads a token from the FIAS_TOKEN environment
// variable. It is read-only and serves as the last resort in the
// manager chain.
type EnvironmentStore struct{}

// NewEnvironmentStore creates an environment-backed store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(portal string, token *Token) error {
	return ErrStoreUnavailable
}

// Retrieve gets the token from FIAS_TOKEN
func (e *EnvironmentStore) Retrieve(portal string) (*Token, error) {
	value := os.Getenv("FIAS_TOKEN")
	if value == "" {
		return nil, ErrTokenNotFound
	}
	return &Token{Value: value, Obtained: time.Now()}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(portal string) error {
	return ErrStoreUnavailable
}

// Exists checks whether FIAS_TOKEN is set
func (e *EnvironmentStore) Exists(portal string) bool {
	return os.Getenv("FIAS_TOKEN") != ""
}
