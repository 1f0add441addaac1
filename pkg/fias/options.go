package fias

import (
	"net/http"
	"time"

	"fiasapi/pkg/logger"
)

const defaultTimeout = 30 * time.Second

type options struct {
	addressType AddressType
	httpClient  *http.Client
	serviceURL  string
	timeout     time.Duration
	userAgent   string
	log         logger.Logger
}

func defaultOptions() *options {
	return &options{
		addressType: DefaultAddressType,
		serviceURL:  DefaultServiceURL,
		timeout:     defaultTimeout,
		userAgent:   "fiasapi-go",
		log:         logger.GetLogger(),
	}
}

// Option configures a Client or a Session
type Option func(*options)

// WithAddressType sets the instance default address representation
func WithAddressType(t AddressType) Option {
	return func(o *options) {
		o.addressType = t
	}
}

// WithHTTPClient supplies a custom transport. The caller keeps
// ownership; Session.Close will not touch it.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithServiceURL overrides the SPAS service base URL
func WithServiceURL(url string) Option {
	return func(o *options) {
		o.serviceURL = url
	}
}

// WithTimeout sets the per-request timeout of the built-in transport
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithLogger sets the logger for request tracing
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}
