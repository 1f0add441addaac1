package auth

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testPortal = "https://fias.nalog.ru"

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	token := &Token{Value: "test_token_12345", Obtained: time.Now()}

	if err := store.Store(testPortal, token); err != nil {
		t.Errorf("Failed to store token: %v", err)
	}

	retrieved, err := store.Retrieve(testPortal)
	if err != nil {
		t.Fatalf("Failed to retrieve token: %v", err)
	}
	if retrieved.Value != token.Value {
		t.Errorf("Token mismatch: got %s, want %s", retrieved.Value, token.Value)
	}

	if !store.Exists(testPortal) {
		t.Error("Expected token to exist")
	}
	if store.Exists("https://other.portal") {
		t.Error("Did not expect token for a different portal")
	}

	if err := store.Delete(testPortal); err != nil {
		t.Errorf("Failed to delete token: %v", err)
	}
	if _, err := store.Retrieve(testPortal); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("Expected ErrTokenNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreRejectsInvalid(t *testing.T) {
	store := NewMemoryStore()

	if err := store.Store(testPortal, nil); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for nil token, got %v", err)
	}
	if err := store.Store(testPortal, &Token{}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for empty value, got %v", err)
	}
	if err := store.Store("", &Token{Value: "x"}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for empty portal, got %v", err)
	}
}

func TestManagerChain(t *testing.T) {
	primary := NewMemoryStore()
	fallback := NewMemoryStore()
	manager := NewManagerWithStores(primary, fallback)

	token := &Token{Value: "chained_token", Obtained: time.Now()}
	if err := manager.Store(testPortal, token); err != nil {
		t.Fatalf("Failed to store token: %v", err)
	}

	// Writes go to every writable store
	if !primary.Exists(testPortal) {
		t.Error("Expected token in primary store")
	}
	if !fallback.Exists(testPortal) {
		t.Error("Expected token in fallback store")
	}

	// Retrieval prefers the first store that answers
	primary.tokens[testPortal] = Token{Value: "from_primary"}
	retrieved, err := manager.Retrieve(testPortal)
	if err != nil {
		t.Fatalf("Failed to retrieve token: %v", err)
	}
	if retrieved.Value != "from_primary" {
		t.Errorf("Expected token from primary store, got %s", retrieved.Value)
	}
}

func TestManagerFallbackOnFailure(t *testing.T) {
	broken := NewMemoryStore()
	broken.RetrieveError = ErrStoreUnavailable
	broken.StoreError = ErrStoreUnavailable
	fallback := NewMemoryStore()
	manager := NewManagerWithStores(broken, fallback)

	token := &Token{Value: "fallback_token", Obtained: time.Now()}
	if err := manager.Store(testPortal, token); err != nil {
		t.Fatalf("Store should succeed via the fallback, got %v", err)
	}

	retrieved, err := manager.Retrieve(testPortal)
	if err != nil {
		t.Fatalf("Retrieve should succeed via the fallback, got %v", err)
	}
	if retrieved.Value != "fallback_token" {
		t.Errorf("Expected fallback token, got %s", retrieved.Value)
	}
}

func TestManagerAllStoresFail(t *testing.T) {
	broken := NewMemoryStore()
	broken.StoreError = ErrStoreUnavailable
	manager := NewManagerWithStores(broken)

	err := manager.Store(testPortal, &Token{Value: "x", Obtained: time.Now()})
	if err == nil {
		t.Error("Expected error when no store accepts the token")
	}

	if _, err := manager.Retrieve(testPortal); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("Expected ErrTokenNotFound, got %v", err)
	}
}

func TestManagerRejectsInvalidToken(t *testing.T) {
	manager := NewManagerWithStores(NewMemoryStore())
	if err := manager.Store(testPortal, nil); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestEncryptedFileStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens.enc")

	os.Setenv("FIAS_STORE_PASSPHRASE", "test-passphrase")
	defer os.Unsetenv("FIAS_STORE_PASSPHRASE")

	store, err := NewEncryptedFileStore(path)
	if err != nil {
		t.Fatalf("Failed to create encrypted store: %v", err)
	}

	obtained := time.Now().Truncate(time.Second)
	token := &Token{Value: "encrypted_token_value", Obtained: obtained}
	if err := store.Store(testPortal, token); err != nil {
		t.Fatalf("Failed to store token: %v", err)
	}

	// The file must not contain the token in the clear
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read store file: %v", err)
	}
	if string(raw) == "" {
		t.Fatal("Expected store file to have content")
	}
	if bytes.Contains(raw, []byte("encrypted_token_value")) {
		t.Error("Token value must not appear in plaintext on disk")
	}

	// A fresh store over the same file and passphrase reads it back
	reopened, err := NewEncryptedFileStore(path)
	if err != nil {
		t.Fatalf("Failed to reopen encrypted store: %v", err)
	}
	retrieved, err := reopened.Retrieve(testPortal)
	if err != nil {
		t.Fatalf("Failed to retrieve token: %v", err)
	}
	if retrieved.Value != token.Value {
		t.Errorf("Token mismatch: got %s, want %s", retrieved.Value, token.Value)
	}
	if !retrieved.Obtained.Equal(obtained) {
		t.Errorf("Obtained timestamp mismatch: got %v, want %v", retrieved.Obtained, obtained)
	}

	if err := reopened.Delete(testPortal); err != nil {
		t.Errorf("Failed to delete token: %v", err)
	}
	if reopened.Exists(testPortal) {
		t.Error("Expected token to be gone after delete")
	}
}

func TestEnvironmentStore(t *testing.T) {
	store := NewEnvironmentStore()

	os.Setenv("FIAS_TOKEN", "env_token_value")
	defer os.Unsetenv("FIAS_TOKEN")

	retrieved, err := store.Retrieve(testPortal)
	if err != nil {
		t.Fatalf("Failed to retrieve token from environment: %v", err)
	}
	if retrieved.Value != "env_token_value" {
		t.Errorf("Expected env token, got %s", retrieved.Value)
	}

	if !store.Exists(testPortal) {
		t.Error("Expected token to exist while FIAS_TOKEN is set")
	}

	// The environment store is read-only
	if err := store.Store(testPortal, &Token{Value: "x"}); err == nil {
		t.Error("Expected error storing into the environment store")
	}

	os.Unsetenv("FIAS_TOKEN")
	if _, err := store.Retrieve(testPortal); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("Expected ErrTokenNotFound without FIAS_TOKEN, got %v", err)
	}
}
