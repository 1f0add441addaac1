package fias

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressTypeString(t *testing.T) {
	assert.Equal(t, "administrative", Administrative.String())
	assert.Equal(t, "municipality", Municipality.String())
	assert.Equal(t, "7", AddressType(7).String())
}

func TestHintRequestWantsPost(t *testing.T) {
	tests := []struct {
		name string
		req  HintRequest
		post bool
	}{
		{"plain search string", HintRequest{SearchString: "Москва"}, false},
		{"with address type", HintRequest{SearchString: "Москва", AddressType: Administrative}, false},
		{"with level filter", HintRequest{SearchString: "Москва", UpToLevel: 5}, true},
		{"with non-active flag", HintRequest{SearchString: "Москва", SearchNonActive: true}, true},
		{"empty search string", HintRequest{}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.post, test.req.wantsPost())
		})
	}
}

func TestNormalizeHints(t *testing.T) {
	payload := map[string]interface{}{
		"hints": []interface{}{
			map[string]interface{}{
				"object_id":     float64(1405113),
				"full_name":     "г Москва",
				"address_type":  float64(2),
				"address_level": float64(1),
			},
			map[string]interface{}{
				"full_name": "no id, dropped",
			},
			"not even an object",
			map[string]interface{}{
				"object_id":     "8654112", // ids sometimes arrive as strings
				"full_name":     "г Москва, ул Тверская",
				"address_type":  float64(1),
				"address_level": float64(8),
			},
		},
	}

	results := normalizeHints(payload)
	assert.Len(t, results, 2)

	assert.Equal(t, int64(1405113), results[0].ID)
	assert.Equal(t, "г Москва", results[0].Address)
	assert.Equal(t, Municipality, results[0].Type)
	assert.Equal(t, 1, results[0].Level)

	assert.Equal(t, int64(8654112), results[1].ID)
	assert.Equal(t, Administrative, results[1].Type)
}

func TestNormalizeHintsEmpty(t *testing.T) {
	assert.Empty(t, normalizeHints(map[string]interface{}{}))
	assert.Empty(t, normalizeHints(map[string]interface{}{"hints": "not a list"}))
	assert.Empty(t, normalizeHints(map[string]interface{}{"hints": []interface{}{}}))
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(42), asInt64(float64(42)))
	assert.Equal(t, int64(42), asInt64("42"))
	assert.Equal(t, int64(42), asInt64(int64(42)))
	assert.Equal(t, int64(42), asInt64(42))
	assert.Equal(t, int64(0), asInt64("not a number"))
	assert.Equal(t, int64(0), asInt64(nil))
	assert.Equal(t, int64(0), asInt64(true))
}
