package fias

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	errs "fiasapi/pkg/errors"
)

// ErrSessionClosed is returned by calls on a closed session
var ErrSessionClosed = errors.New("session is closed")

// Session is the context-aware registry client. One session holds one
// lazily opened connection pool; any number of goroutines may issue
// calls through it concurrently, and each call can be cancelled through
// its context without affecting the others.
//
// A session owns its transport: callers must Close it when done so
// pooled connections are released deterministically.
//
//	session := fias.NewSession(token)
//	defer session.Close()
type Session struct {
	exec executor

	mu       sync.Mutex
	hc       *http.Client
	external bool
	timeout  time.Duration
	closed   bool
}

// NewSession creates a context-aware client holding the given token
func NewSession(token string, opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	s := &Session{
		exec: executor{
			token:       token,
			addressType: o.addressType,
			serviceURL:  o.serviceURL,
			userAgent:   o.userAgent,
			log:         o.log,
		},
	}
	if o.httpClient != nil {
		s.hc = o.httpClient
		s.external = true
	} else {
		s.timeout = o.timeout
	}
	return s
}

// client returns the transport, opening the pool on first use
func (s *Session) client() (*http.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errs.NewTransport(ErrSessionClosed)
	}
	if s.hc == nil {
		s.hc = &http.Client{Timeout: s.timeout}
	}
	return s.hc, nil
}

// Close releases the session's connection pool. It is safe to call
// more than once; calls issued after Close fail with a transport
// error wrapping ErrSessionClosed. A transport supplied via
// WithHTTPClient is left untouched.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.hc != nil && !s.external {
		s.hc.CloseIdleConnections()
	}
}

// Token returns the token the session was constructed with
func (s *Session) Token() string {
	return s.exec.token
}

// GetRegions lists all top-level regions
func (s *Session) GetRegions(ctx context.Context) (map[string]interface{}, error) {
	hc, err := s.client()
	if err != nil {
		return nil, err
	}
	return s.exec.getRegions(ctx, hc)
}

// GetAddressItems lists address items matching the request filters
func (s *Session) GetAddressItems(ctx context.Context, req AddressItemsRequest) (map[string]interface{}, error) {
	hc, err := s.client()
	if err != nil {
		return nil, err
	}
	return s.exec.getAddressItems(ctx, hc, req)
}

// GetDetails returns extended details for an address object
func (s *Session) GetDetails(ctx context.Context, objectID int64) (map[string]interface{}, error) {
	hc, err := s.client()
	if err != nil {
		return nil, err
	}
	return s.exec.getDetails(ctx, hc, objectID)
}

// IsDescendant checks hierarchy containment between two objects
func (s *Session) IsDescendant(ctx context.Context, ancestor, descendant int64) (map[string]interface{}, error) {
	hc, err := s.client()
	if err != nil {
		return nil, err
	}
	return s.exec.isDescendant(ctx, hc, ancestor, descendant)
}

// HasDescendants checks whether an object has children
func (s *Session) HasDescendants(ctx context.Context, parent int64, upToLevel int) (map[string]interface{}, error) {
	hc, err := s.client()
	if err != nil {
		return nil, err
	}
	return s.exec.hasDescendants(ctx, hc, parent, upToLevel)
}

// DetailsByID looks up an address object by its numeric identifier
func (s *Session) DetailsByID(ctx context.Context, objectID int64, addressType ...AddressType) (map[string]interface{}, error) {
	hc, err := s.client()
	if err != nil {
		return nil, err
	}
	return s.exec.detailsByID(ctx, hc, objectID, addressType)
}

// DetailsByGUID looks up an address object by its GUID
func (s *Session) DetailsByGUID(ctx context.Context, guid string, addressType ...AddressType) (map[string]interface{}, error) {
	hc, err := s.client()
	if err != nil {
		return nil, err
	}
	return s.exec.detailsByGUID(ctx, hc, guid, addressType)
}

// DetailsByCadastralNumber looks up an address object by its cadastral
// number
func (s *Session) DetailsByCadastralNumber(ctx context.Context, cadnum string, addressType ...AddressType) (map[string]interface{}, error) {
	hc, err := s.client()
	if err != nil {
		return nil, err
	}
	return s.exec.detailsByCadnum(ctx, hc, cadnum, addressType)
}

// GetObjectTypes lists the registry's address object types
func (s *Session) GetObjectTypes(ctx context.Context) (map[string]interface{}, error) {
	hc, err := s.client()
	if err != nil {
		return nil, err
	}
	return s.exec.objectTypes(ctx, hc)
}

// SearchAddressItems searches address items by free text
func (s *Session) SearchAddressItems(ctx context.Context, searchString string, addressType ...AddressType) (map[string]interface{}, error) {
	hc, err := s.client()
	if err != nil {
		return nil, err
	}
	return s.exec.searchAddressItems(ctx, hc, searchString, addressType)
}

// GetAddressHint returns raw address suggestions for a query
func (s *Session) GetAddressHint(ctx context.Context, req HintRequest) (map[string]interface{}, error) {
	hc, err := s.client()
	if err != nil {
		return nil, err
	}
	return s.exec.addressHint(ctx, hc, req)
}

// SearchAddressItem returns the single best-matching address item
func (s *Session) SearchAddressItem(ctx context.Context, searchString string, addressType ...AddressType) (map[string]interface{}, error) {
	hc, err := s.client()
	if err != nil {
		return nil, err
	}
	return s.exec.searchAddressItem(ctx, hc, searchString, addressType)
}

// GetLocationByIP resolves an IP address to a location
func (s *Session) GetLocationByIP(ctx context.Context, ip string, addressType ...AddressType) (map[string]interface{}, error) {
	hc, err := s.client()
	if err != nil {
		return nil, err
	}
	return s.exec.locationByIP(ctx, hc, ip, addressType)
}

// Search runs a free-text query and flattens the hint payload into
// SearchResult records
func (s *Session) Search(ctx context.Context, searchString string) ([]SearchResult, error) {
	hc, err := s.client()
	if err != nil {
		return nil, err
	}
	return s.exec.search(ctx, hc, searchString)
}
