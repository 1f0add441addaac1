package auth

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "fiasapi"
	keyringPrefix  = "token_"
)

// KeyringStore persists tokens in the system keychain
type KeyringStore struct{}

// NewKeyringStore creates a keyring-backed store, probing the keyring
// first so an unusable backend fails fast instead of on first write.
func NewKeyringStore() (*KeyringStore, error) {
	testKey := "test_availability"
	if err := keyring.Set(keyringService, testKey, "test"); err != nil {
		return nil, fmt.Errorf("keyring not available: %w", err)
	}
	_ = keyring.Delete(keyringService, testKey)

	return &KeyringStore{}, nil
}

// Store saves a token to the system keychain
func (k *KeyringStore) Store(portal string, token *Token) error {
	if portal == "" || token == nil || token.Value == "" {
		return ErrInvalidToken
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := keyring.Set(keyringService, keyringPrefix+portal, string(data)); err != nil {
		return fmt.Errorf("failed to store in keyring: %w", err)
	}
	return nil
}

// Retrieve gets a token from the system keychain
func (k *KeyringStore) Retrieve(portal string) (*Token, error) {
	if portal == "" {
		return nil, ErrInvalidToken
	}

	data, err := keyring.Get(keyringService, keyringPrefix+portal)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to read keyring: %w", err)
	}

	var token Token
	if err := json.Unmarshal([]byte(data), &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}
	return &token, nil
}

// Delete removes a token from the system keychain
func (k *KeyringStore) Delete(portal string) error {
	if portal == "" {
		return ErrInvalidToken
	}
	if err := keyring.Delete(keyringService, keyringPrefix+portal); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}

// Exists checks whether a token is cached for the portal
func (k *KeyringStore) Exists(portal string) bool {
	token, err := k.Retrieve(portal)
	return err == nil && token != nil
}
