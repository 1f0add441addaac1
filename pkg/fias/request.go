package fias

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	errs "fiasapi/pkg/errors"
	"fiasapi/pkg/logger"
)

// StandardHeaders returns the header set every registry request
// carries: the token, the JSON content type and the JSON accept header.
// It is a pure function so callers can build requests against endpoints
// this client does not wrap.
func StandardHeaders(token string) map[string]string {
	return map[string]string{
		"master-token": token,
		"Content-Type": "application/json",
		"accept":       "application/json",
	}
}

// RequestSpec fully describes one outbound call. Specs are built fresh
// per call and never mutated afterwards.
type RequestSpec struct {
	Method  string
	URL     string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// newRequest materializes a spec into an *http.Request. All of this is
// synchronous CPU work; the only I/O happens in send.
func newRequest(ctx context.Context, spec RequestSpec) (*http.Request, error) {
	var bodyReader io.Reader
	if spec.Body != nil {
		data, err := json.Marshal(spec.Body)
		if err != nil {
			return nil, errs.NewDecode(err, 0)
		}
		bodyReader = bytes.NewReader(data)
	}

	target := spec.URL
	if len(spec.Query) > 0 {
		target = target + "?" + spec.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, target, bodyReader)
	if err != nil {
		return nil, errs.NewTransport(err)
	}

	for key, value := range spec.Headers {
		req.Header.Set(key, value)
	}
	return req, nil
}

// send executes a spec against the given transport and decodes the JSON
// response into out (skipped when out is nil). Failures map onto the
// taxonomy: transport, cancellation, status with code+body, decode.
func send(ctx context.Context, hc *http.Client, spec RequestSpec, out interface{}, log logger.Logger) error {
	req, err := newRequest(ctx, spec)
	if err != nil {
		return err
	}

	if log != nil {
		log.DebugWithFields("sending registry request", map[string]interface{}{
			"method": spec.Method,
			"url":    spec.URL,
		})
	}

	start := time.Now()
	resp, doErr := hc.Do(req)
	duration := time.Since(start)

	if doErr != nil {
		ferr := errs.FromContextError(doErr)
		if log != nil {
			log.ErrorWithFields("registry request failed", map[string]interface{}{
				"method":   spec.Method,
				"url":      spec.URL,
				"error":    doErr.Error(),
				"duration": duration,
			})
		}
		return ferr
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return errs.FromContextError(readErr)
	}

	if log != nil {
		log.DebugWithFields("registry request completed", map[string]interface{}{
			"method":   spec.Method,
			"url":      spec.URL,
			"status":   resp.StatusCode,
			"duration": duration,
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.NewStatus(resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		if log != nil {
			preview := string(body)
			if len(preview) > 200 {
				preview = preview[:200] + "..."
			}
			log.ErrorWithFields("failed to parse registry response", map[string]interface{}{
				"url":          spec.URL,
				"status":       resp.StatusCode,
				"error":        err.Error(),
				"body_preview": preview,
			})
		}
		return errs.NewDecode(err, resp.StatusCode)
	}
	return nil
}
