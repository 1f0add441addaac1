package auth

import "sync"

// MemoryStore keeps tokens in process memory. Used in tests and as an
// explicit choice for callers who do not want persistence.
type MemoryStore struct {
	tokens map[string]Token
	mu     sync.RWMutex

	// Error injection for tests
	StoreError    error
	RetrieveError error
	DeleteError   error
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]Token)}
}

// Store saves a token in memory
func (m *MemoryStore) Store(portal string, token *Token) error {
	if m.StoreError != nil {
		return m.StoreError
	}
	if portal == "" || token == nil || token.Value == "" {
		return ErrInvalidToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[portal] = *token
	return nil
}

// Retrieve gets a token from memory
func (m *MemoryStore) Retrieve(portal string) (*Token, error) {
	if m.RetrieveError != nil {
		return nil, m.RetrieveError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	token, ok := m.tokens[portal]
	if !ok {
		return nil, ErrTokenNotFound
	}
	out := token
	return &out, nil
}

// Delete removes a token from memory
func (m *MemoryStore) Delete(portal string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[portal]; !ok {
		return ErrTokenNotFound
	}
	delete(m.tokens, portal)
	return nil
}

// Exists checks whether a token is stored for the portal
func (m *MemoryStore) Exists(portal string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tokens[portal]
	return ok
}
