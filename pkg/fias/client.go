package fias

import (
	"context"
	"net/http"
)

// Client is the blocking registry client. Each call occupies the
// calling goroutine for the full request duration; the embedded
// transport pool is safe for concurrent use from multiple goroutines.
type Client struct {
	exec       executor
	httpClient *http.Client
}

// New creates a blocking client holding the given token. The token is
// read-only for the client's lifetime; acquiring a fresh one means
// constructing a fresh client.
func New(token string, opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		exec: executor{
			token:       token,
			addressType: o.addressType,
			serviceURL:  o.serviceURL,
			userAgent:   o.userAgent,
			log:         o.log,
		},
		httpClient: hc,
	}
}

// Token returns the token the client was constructed with
func (c *Client) Token() string {
	return c.exec.token
}

// GetRegions lists all top-level regions
func (c *Client) GetRegions() (map[string]interface{}, error) {
	return c.exec.getRegions(context.Background(), c.httpClient)
}

// GetAddressItems lists address items matching the request filters
func (c *Client) GetAddressItems(req AddressItemsRequest) (map[string]interface{}, error) {
	return c.exec.getAddressItems(context.Background(), c.httpClient, req)
}

// GetDetails returns extended details (postal code, OKATO, OKTMO) for
// an address object
func (c *Client) GetDetails(objectID int64) (map[string]interface{}, error) {
	return c.exec.getDetails(context.Background(), c.httpClient, objectID)
}

// IsDescendant checks whether descendant lies under ancestor in the
// address hierarchy
func (c *Client) IsDescendant(ancestor, descendant int64) (map[string]interface{}, error) {
	return c.exec.isDescendant(context.Background(), c.httpClient, ancestor, descendant)
}

// HasDescendants checks whether an object has children, optionally
// down to a level
func (c *Client) HasDescendants(parent int64, upToLevel int) (map[string]interface{}, error) {
	return c.exec.hasDescendants(context.Background(), c.httpClient, parent, upToLevel)
}

// DetailsByID looks up an address object by its numeric identifier
func (c *Client) DetailsByID(objectID int64, addressType ...AddressType) (map[string]interface{}, error) {
	return c.exec.detailsByID(context.Background(), c.httpClient, objectID, addressType)
}

// DetailsByGUID looks up an address object by its GUID. The registry
// treats GUIDs as a separate resource space from numeric identifiers,
// so this is a distinct operation rather than an overload of
// DetailsByID.
func (c *Client) DetailsByGUID(guid string, addressType ...AddressType) (map[string]interface{}, error) {
	return c.exec.detailsByGUID(context.Background(), c.httpClient, guid, addressType)
}

// DetailsByCadastralNumber looks up an address object by its cadastral
// number
func (c *Client) DetailsByCadastralNumber(cadnum string, addressType ...AddressType) (map[string]interface{}, error) {
	return c.exec.detailsByCadnum(context.Background(), c.httpClient, cadnum, addressType)
}

// GetObjectTypes lists the registry's address object types
func (c *Client) GetObjectTypes() (map[string]interface{}, error) {
	return c.exec.objectTypes(context.Background(), c.httpClient)
}

// SearchAddressItems searches address items by free text
func (c *Client) SearchAddressItems(searchString string, addressType ...AddressType) (map[string]interface{}, error) {
	return c.exec.searchAddressItems(context.Background(), c.httpClient, searchString, addressType)
}

// GetAddressHint returns raw address suggestions for a query
func (c *Client) GetAddressHint(req HintRequest) (map[string]interface{}, error) {
	return c.exec.addressHint(context.Background(), c.httpClient, req)
}

// SearchAddressItem returns the single best-matching address item
func (c *Client) SearchAddressItem(searchString string, addressType ...AddressType) (map[string]interface{}, error) {
	return c.exec.searchAddressItem(context.Background(), c.httpClient, searchString, addressType)
}

// GetLocationByIP resolves an IP address to a location
func (c *Client) GetLocationByIP(ip string, addressType ...AddressType) (map[string]interface{}, error) {
	return c.exec.locationByIP(context.Background(), c.httpClient, ip, addressType)
}

// Search runs a free-text query and flattens the registry's hint
// payload into SearchResult records. This is the only method that
// reshapes registry data.
func (c *Client) Search(searchString string) ([]SearchResult, error) {
	return c.exec.search(context.Background(), c.httpClient, searchString)
}
