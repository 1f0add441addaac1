package fias

import (
	"context"
	"net/http"
	"net/url"

	errs "fiasapi/pkg/errors"
)

// GetToken fetches an authentication token from the portal's bootstrap
// page, blocking until the exchange completes. An empty portalURL uses
// the production portal.
//
// No retries happen here: the portal's first-request 500 is a known
// behaviour, and callers decide whether to absorb it with pkg/retry.
func GetToken(portalURL string) (string, error) {
	return GetTokenContext(context.Background(), portalURL)
}

// GetTokenContext is GetToken honouring a context for cancellation
func GetTokenContext(ctx context.Context, portalURL string) (string, error) {
	if portalURL == "" {
		portalURL = DefaultPortalURL
	}

	query := url.Values{}
	query.Set("url", portalURL+"/")

	spec := RequestSpec{
		Method: http.MethodGet,
		URL:    portalURL + TokenEndpoint,
		Query:  query,
		Headers: map[string]string{
			"accept": "application/json",
		},
	}

	var settings struct {
		Token string `json:"Token"`
	}
	hc := &http.Client{Timeout: defaultTimeout}
	if err := send(ctx, hc, spec, &settings, nil); err != nil {
		return "", err
	}

	if settings.Token == "" {
		return "", errs.NewToken("bootstrap response is missing the token marker")
	}
	return settings.Token, nil
}
