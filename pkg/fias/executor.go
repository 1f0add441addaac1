package fias

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"fiasapi/pkg/logger"
)

// executor holds the per-instance request state shared by the blocking
// Client and the context-aware Session. Request construction and
// response decoding live here so the two façades cannot drift apart;
// only the transport handle differs between them.
type executor struct {
	token       string
	addressType AddressType
	serviceURL  string
	userAgent   string
	log         logger.Logger
}

func (e *executor) headers() map[string]string {
	h := StandardHeaders(e.token)
	if e.userAgent != "" {
		h["User-Agent"] = e.userAgent
	}
	return h
}

// resolveType applies the per-call override, falling back to the
// instance default. The instance state is never mutated.
func (e *executor) resolveType(override []AddressType) AddressType {
	if len(override) > 0 && override[0] != 0 {
		return override[0]
	}
	return e.addressType
}

func (e *executor) getSpec(endpoint string, query url.Values) RequestSpec {
	return RequestSpec{
		Method:  http.MethodGet,
		URL:     e.serviceURL + endpoint,
		Query:   query,
		Headers: e.headers(),
	}
}

func (e *executor) postSpec(endpoint string, body interface{}) RequestSpec {
	return RequestSpec{
		Method:  http.MethodPost,
		URL:     e.serviceURL + endpoint,
		Body:    body,
		Headers: e.headers(),
	}
}

// object sends a spec and decodes the response as a JSON object
func (e *executor) object(ctx context.Context, hc *http.Client, spec RequestSpec) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := send(ctx, hc, spec, &out, e.log); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *executor) getRegions(ctx context.Context, hc *http.Client) (map[string]interface{}, error) {
	return e.object(ctx, hc, e.getSpec(EndpointGetRegions, nil))
}

func (e *executor) getAddressItems(ctx context.Context, hc *http.Client, req AddressItemsRequest) (map[string]interface{}, error) {
	if req.AddressType == 0 {
		req.AddressType = e.addressType
	}
	return e.object(ctx, hc, e.postSpec(EndpointGetAddressItems, req))
}

func (e *executor) getDetails(ctx context.Context, hc *http.Client, objectID int64) (map[string]interface{}, error) {
	query := url.Values{}
	query.Set("object_id", strconv.FormatInt(objectID, 10))
	return e.object(ctx, hc, e.getSpec(EndpointGetDetails, query))
}

func (e *executor) isDescendant(ctx context.Context, hc *http.Client, ancestor, descendant int64) (map[string]interface{}, error) {
	query := url.Values{}
	query.Set("ancestor", strconv.FormatInt(ancestor, 10))
	query.Set("descendant", strconv.FormatInt(descendant, 10))
	return e.object(ctx, hc, e.getSpec(EndpointIsDescendant, query))
}

func (e *executor) hasDescendants(ctx context.Context, hc *http.Client, parent int64, upToLevel int) (map[string]interface{}, error) {
	query := url.Values{}
	query.Set("parent", strconv.FormatInt(parent, 10))
	if upToLevel > 0 {
		query.Set("up_to_level", strconv.Itoa(upToLevel))
	}
	return e.object(ctx, hc, e.getSpec(EndpointHasDescendants, query))
}

func (e *executor) detailsByID(ctx context.Context, hc *http.Client, objectID int64, addressType []AddressType) (map[string]interface{}, error) {
	query := url.Values{}
	query.Set("object_id", strconv.FormatInt(objectID, 10))
	query.Set("address_type", strconv.Itoa(int(e.resolveType(addressType))))
	return e.object(ctx, hc, e.getSpec(EndpointAddressItemByID, query))
}

func (e *executor) detailsByGUID(ctx context.Context, hc *http.Client, guid string, addressType []AddressType) (map[string]interface{}, error) {
	query := url.Values{}
	query.Set("object_guid", guid)
	query.Set("address_type", strconv.Itoa(int(e.resolveType(addressType))))
	return e.object(ctx, hc, e.getSpec(EndpointAddressItemByGUID, query))
}

func (e *executor) detailsByCadnum(ctx context.Context, hc *http.Client, cadnum string, addressType []AddressType) (map[string]interface{}, error) {
	query := url.Values{}
	query.Set("cadastral_number", cadnum)
	query.Set("address_type", strconv.Itoa(int(e.resolveType(addressType))))
	return e.object(ctx, hc, e.getSpec(EndpointAddressItemByCadnum, query))
}

func (e *executor) objectTypes(ctx context.Context, hc *http.Client) (map[string]interface{}, error) {
	return e.object(ctx, hc, e.getSpec(EndpointGetObjectTypes, nil))
}

func (e *executor) searchAddressItems(ctx context.Context, hc *http.Client, searchString string, addressType []AddressType) (map[string]interface{}, error) {
	query := url.Values{}
	query.Set("search_string", searchString)
	query.Set("address_type", strconv.Itoa(int(e.resolveType(addressType))))
	return e.object(ctx, hc, e.getSpec(EndpointSearchAddressItems, query))
}

func (e *executor) addressHint(ctx context.Context, hc *http.Client, req HintRequest) (map[string]interface{}, error) {
	if req.AddressType == 0 {
		req.AddressType = e.addressType
	}
	if req.wantsPost() {
		return e.object(ctx, hc, e.postSpec(EndpointGetAddressHint, req))
	}
	query := url.Values{}
	query.Set("search_string", req.SearchString)
	query.Set("address_type", strconv.Itoa(int(req.AddressType)))
	return e.object(ctx, hc, e.getSpec(EndpointGetAddressHint, query))
}

func (e *executor) searchAddressItem(ctx context.Context, hc *http.Client, searchString string, addressType []AddressType) (map[string]interface{}, error) {
	query := url.Values{}
	query.Set("search_string", searchString)
	query.Set("address_type", strconv.Itoa(int(e.resolveType(addressType))))
	return e.object(ctx, hc, e.getSpec(EndpointSearchAddressItem, query))
}

func (e *executor) locationByIP(ctx context.Context, hc *http.Client, ip string, addressType []AddressType) (map[string]interface{}, error) {
	query := url.Values{}
	query.Set("ip", ip)
	query.Set("address_type", strconv.Itoa(int(e.resolveType(addressType))))
	return e.object(ctx, hc, e.getSpec(EndpointGetLocationByIP, query))
}

func (e *executor) search(ctx context.Context, hc *http.Client, searchString string) ([]SearchResult, error) {
	payload, err := e.addressHint(ctx, hc, HintRequest{SearchString: searchString, AddressType: e.addressType})
	if err != nil {
		return nil, err
	}
	return normalizeHints(payload), nil
}
