package fias

import "strconv"

// AddressType selects which hierarchical address representation the
// registry returns.
type AddressType int

const (
	// Administrative is the administrative-territorial hierarchy
	Administrative AddressType = 1
	// Municipality is the municipal hierarchy
	Municipality AddressType = 2
)

// DefaultAddressType is the process-wide default; every operation may
// override it per call.
const DefaultAddressType = Municipality

func (t AddressType) String() string {
	switch t {
	case Administrative:
		return "administrative"
	case Municipality:
		return "municipality"
	default:
		return strconv.Itoa(int(t))
	}
}

// SearchResult is one normalized record from the registry's hint
// payload. Search is the single place where raw registry data is
// reshaped; every other operation passes responses through verbatim.
type SearchResult struct {
	ID      int64       `json:"id"`
	Address string      `json:"address"`
	Type    AddressType `json:"type"`
	Level   int         `json:"level"`
}

// AddressItemsRequest filters the GetAddressItems listing
type AddressItemsRequest struct {
	Path               string      `json:"path,omitempty"`
	AddressLevel       int         `json:"address_level,omitempty"`
	NamePart           string      `json:"name_part,omitempty"`
	IncludeDescendants bool        `json:"include_descendants"`
	SearchNonActive    bool        `json:"search_non_active"`
	AddressType        AddressType `json:"address_type,omitempty"`
}

// HintRequest describes a GetAddressHint query. With only SearchString
// set the hint endpoint is queried via GET; any other field switches to
// the POST form, mirroring the registry's dual interface.
type HintRequest struct {
	SearchString    string      `json:"searchString,omitempty"`
	AddressType     AddressType `json:"addressType,omitempty"`
	UpToLevel       int         `json:"upToLevel,omitempty"`
	SearchNonActive bool        `json:"searchNonActive"`
}

func (r HintRequest) wantsPost() bool {
	return r.UpToLevel != 0 || r.SearchNonActive || r.SearchString == ""
}

// normalizeHints flattens the raw hint payload into SearchResult
// records. Entries missing an object id are dropped rather than
// surfaced as zero records.
func normalizeHints(payload map[string]interface{}) []SearchResult {
	raw, ok := payload["hints"].([]interface{})
	if !ok {
		return []SearchResult{}
	}

	results := make([]SearchResult, 0, len(raw))
	for _, item := range raw {
		hint, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		id := asInt64(hint["object_id"])
		if id == 0 {
			continue
		}

		address, _ := hint["full_name"].(string)
		results = append(results, SearchResult{
			ID:      id,
			Address: address,
			Type:    AddressType(asInt64(hint["address_type"])),
			Level:   int(asInt64(hint["address_level"])),
		})
	}
	return results
}

// asInt64 reads a JSON number that may arrive as float64 or string
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
