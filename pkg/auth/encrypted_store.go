package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 32
	keySize    = 32
	iterations = 100000
)

// EncryptedFileStore persists tokens in a passphrase-encrypted file.
// It serves as the fallback when no system keyring is available.
type EncryptedFileStore struct {
	filepath   string
	passphrase string
	mu         sync.RWMutex
}

// NewEncryptedFileStore creates a store backed by the given file. The
// passphrase comes from FIAS_STORE_PASSPHRASE, or is generated once and
// kept next to the store file with owner-only permissions.
func NewEncryptedFileStore(filePath string) (*EncryptedFileStore, error) {
	dir := filepath.Dir(filePath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	store := &EncryptedFileStore{filepath: filePath}

	passphrase, err := store.getPassphrase()
	if err != nil {
		return nil, fmt.Errorf("failed to get passphrase: %w", err)
	}
	store.passphrase = passphrase

	return store, nil
}

// Store saves a token to the encrypted file
func (e *EncryptedFileStore) Store(portal string, token *Token) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if portal == "" || token == nil || token.Value == "" {
		return ErrInvalidToken
	}

	tokens, err := e.loadTokens()
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load existing tokens: %w", err)
	}
	if tokens == nil {
		tokens = make(map[string]Token)
	}

	tokens[portal] = *token
	return e.saveTokens(tokens)
}

// Retrieve gets a token from the encrypted file
func (e *EncryptedFileStore) Retrieve(portal string) (*Token, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if portal == "" {
		return nil, ErrInvalidToken
	}

	tokens, err := e.loadTokens()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to load tokens: %w", err)
	}

	token, ok := tokens[portal]
	if !ok {
		return nil, ErrTokenNotFound
	}
	return &token, nil
}

// Delete removes a token from the encrypted file
func (e *EncryptedFileStore) Delete(portal string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if portal == "" {
		return ErrInvalidToken
	}

	tokens, err := e.loadTokens()
	if err != nil {
		if os.IsNotExist(err) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("failed to load tokens: %w", err)
	}

	if _, ok := tokens[portal]; !ok {
		return ErrTokenNotFound
	}
	delete(tokens, portal)

	if len(tokens) == 0 {
		return os.Remove(e.filepath)
	}
	return e.saveTokens(tokens)
}

// Exists checks whether a token is cached for the portal
func (e *EncryptedFileStore) Exists(portal string) bool {
	token, err := e.Retrieve(portal)
	return err == nil && token != nil
}

func (e *EncryptedFileStore) loadTokens() (map[string]Token, error) {
	content, err := os.ReadFile(e.filepath)
	if err != nil {
		return nil, err
	}

	var fileData struct {
		Salt      string `json:"salt"`
		Encrypted string `json:"encrypted"`
	}
	if err := json.Unmarshal(content, &fileData); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(fileData.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	encrypted, err := base64.StdEncoding.DecodeString(fileData.Encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	key := pbkdf2.Key([]byte(e.passphrase), salt, iterations, keySize, sha256.New)
	decrypted, err := decrypt(encrypted, key)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt store: %w", err)
	}

	var tokens map[string]Token
	if err := json.Unmarshal(decrypted, &tokens); err != nil {
		return nil, fmt.Errorf("failed to parse tokens: %w", err)
	}
	return tokens, nil
}

func (e *EncryptedFileStore) saveTokens(tokens map[string]Token) error {
	plain, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(e.passphrase), salt, iterations, keySize, sha256.New)
	encrypted, err := encrypt(plain, key)
	if err != nil {
		return fmt.Errorf("failed to encrypt tokens: %w", err)
	}

	fileData := struct {
		Salt      string `json:"salt"`
		Encrypted string `json:"encrypted"`
	}{
		Salt:      base64.StdEncoding.EncodeToString(salt),
		Encrypted: base64.StdEncoding.EncodeToString(encrypted),
	}

	content, err := json.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("failed to marshal store file: %w", err)
	}
	return os.WriteFile(e.filepath, content, 0o600)
}

func (e *EncryptedFileStore) getPassphrase() (string, error) {
	if p := os.Getenv("FIAS_STORE_PASSPHRASE"); p != "" {
		return p, nil
	}

	// Fall back to a machine-local generated passphrase
	passFile := e.filepath + ".key"
	if data, err := os.ReadFile(passFile); err == nil && len(data) > 0 {
		return string(data), nil
	}

	raw := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", err
	}
	passphrase := base64.StdEncoding.EncodeToString(raw)
	if err := os.WriteFile(passFile, []byte(passphrase), 0o600); err != nil {
		return "", err
	}
	return passphrase, nil
}

func encrypt(plain, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(data, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(data) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
