// Package auth caches registry tokens between runs. The registry hands
// out tokens from a bootstrap page that 500s often enough to make every
// avoided fetch worthwhile. Caching is explicit: the client itself
// never consults a store, callers decide when to read or write one.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Token is a cached registry credential. The value is opaque and
// carries no expiry the client could inspect; Obtained lets callers
// apply their own age policy.
type Token struct {
	Value    string    `json:"value"`
	Obtained time.Time `json:"obtained"`
}

// Store errors
var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrInvalidToken     = errors.New("invalid token")
	ErrStoreUnavailable = errors.New("token store unavailable")
)

// TokenStore persists tokens keyed by the portal they were issued for
type TokenStore interface {
	// Store saves a token for a portal key
	Store(portal string, token *Token) error

	// Retrieve gets the token for a portal key
	Retrieve(portal string) (*Token, error)

	// Delete removes the token for a portal key
	Delete(portal string) error

	// Exists checks whether a token is cached for a portal key
	Exists(portal string) bool
}

// Manager chains stores: retrieval walks them in order, writes go to
// every writable store so fallbacks stay in sync.
type Manager struct {
	stores []TokenStore
}

// NewManager builds the default store chain: system keyring when
// available, encrypted file as fallback, environment as a read-only
// last resort.
func NewManager() (*Manager, error) {
	var stores []TokenStore

	if keyringStore, err := NewKeyringStore(); err == nil {
		stores = append(stores, keyringStore)
	}

	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	encryptedStore, err := NewEncryptedFileStore(filepath.Join(configDir, "tokens.enc"))
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted store: %w", err)
	}
	stores = append(stores, encryptedStore)

	stores = append(stores, NewEnvironmentStore())

	return &Manager{stores: stores}, nil
}

// NewManagerWithStores builds a manager over an explicit chain
func NewManagerWithStores(stores ...TokenStore) *Manager {
	return &Manager{stores: stores}
}

// Store saves the token in every store that accepts writes. It fails
// only when no store accepted the token.
func (m *Manager) Store(portal string, token *Token) error {
	if token == nil || token.Value == "" {
		return ErrInvalidToken
	}

	var lastErr error
	stored := false
	for _, s := range m.stores {
		if err := s.Store(portal, token); err != nil {
			if !errors.Is(err, ErrStoreUnavailable) {
				lastErr = err
			}
			continue
		}
		stored = true
	}
	if !stored {
		if lastErr != nil {
			return lastErr
		}
		return ErrStoreUnavailable
	}
	return nil
}

// Retrieve returns the token from the first store that has one
func (m *Manager) Retrieve(portal string) (*Token, error) {
	for _, s := range m.stores {
		token, err := s.Retrieve(portal)
		if err == nil {
			return token, nil
		}
	}
	return nil, ErrTokenNotFound
}

// Delete removes the token from every store
func (m *Manager) Delete(portal string) error {
	deleted := false
	for _, s := range m.stores {
		if err := s.Delete(portal); err == nil {
			deleted = true
		}
	}
	if !deleted {
		return ErrTokenNotFound
	}
	return nil
}

// Exists checks whether any store has a token for the portal
func (m *Manager) Exists(portal string) bool {
	for _, s := range m.stores {
		if s.Exists(portal) {
			return true
		}
	}
	return false
}

func getConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "fiasapi")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}
