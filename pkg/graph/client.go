package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Outcome classifies the result of one upstream exchange.
type Outcome string

const (
	// OutcomeSuccess is any completed 2xx exchange.
	OutcomeSuccess Outcome = "success"

	// OutcomeClientError is any completed 4xx exchange.
	OutcomeClientError Outcome = "client_error"

	// OutcomeServerError is any completed 5xx exchange.
	OutcomeServerError Outcome = "server_error"

	// OutcomeTransportError means no HTTP status was obtained: connection
	// failure, timeout, or an unreadable/undecodable response body.
	OutcomeTransportError Outcome = "transport_error"

	// OutcomeUnknown is any completed exchange outside the ranges above.
	OutcomeUnknown Outcome = "unknown"
)

// transportSentinelStatus is reported when no real status was received.
const transportSentinelStatus = http.StatusInternalServerError

// Result is the normalized envelope produced for every upstream call. The
// outcome is a pure function of the status code for completed exchanges;
// transport errors carry the sentinel status instead.
type Result struct {
	Outcome Outcome
	Message string
	Payload any
	Status  int

	// RetryAfter is the upstream-requested delay before a retry, when the
	// response carried a Retry-After header. Zero otherwise.
	RetryAfter time.Duration
}

// OK reports whether the exchange completed with a 2xx status.
func (r *Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// Client issues single HTTP requests against the Graph API and normalizes
// every transport outcome into a Result. It never returns an error and never
// panics; the worst case is a transport_error result with the sentinel
// status. It keeps no state between calls beyond the shared connection pool.
type Client struct {
	cfg        Config
	token      string
	httpClient *http.Client
	log        hclog.Logger
}

// NewClient creates a client bound to one request's bearer context.
func NewClient(sc Context, log hclog.Logger) *Client {
	cfg := sc.Config.WithDefaults()
	return &Client{
		cfg:        cfg,
		token:      sc.AccessToken,
		httpClient: cfg.NewHTTPClient(),
		log:        log.Named("graph"),
	}
}

// Get issues a GET request against path with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query map[string]string) *Result {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) *Result {
	return c.Do(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) *Result {
	return c.Do(ctx, http.MethodPut, path, nil, body)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) *Result {
	return c.Do(ctx, http.MethodPatch, path, nil, body)
}

// Delete issues a DELETE request against path.
func (c *Client) Delete(ctx context.Context, path string) *Result {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do executes one HTTP request and maps the raw outcome into a Result.
// Network-level failures get exactly one retry before surfacing as a
// transport_error. Completed exchanges are classified by status code alone.
func (c *Client) Do(ctx context.Context, method, path string, query map[string]string, body any) *Result {
	endpoint, err := c.buildURL(path, query)
	if err != nil {
		return c.transportError(fmt.Errorf("building request URL: %w", err))
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return c.transportError(fmt.Errorf("marshaling request body: %w", err))
		}
	}

	var lastErr error
	for attempt := 0; attempt <= 1; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return c.transportError(ctx.Err())
			case <-time.After(250 * time.Millisecond):
			}
		}

		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
		if err != nil {
			return c.transportError(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set(c.cfg.AuthorizationHeader, c.cfg.BearerPrefix+" "+c.token)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("client-request-id", uuid.NewString())
		if payload != nil {
			req.Header.Set(c.cfg.ContentTypeHeader, c.cfg.ContentType)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			c.log.Warn("request failed", "method", method, "path", path,
				"attempt", attempt+1, "error", c.sanitize(err.Error()))
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			c.log.Warn("reading response failed", "method", method, "path", path,
				"attempt", attempt+1, "error", c.sanitize(err.Error()))
			continue
		}

		c.log.Debug("upstream exchange", "method", method, "path", path,
			"status", resp.StatusCode)
		res := c.normalize(resp.StatusCode, respBody)
		res.RetryAfter = retryAfter(resp.Header)
		return res
	}

	return c.transportError(fmt.Errorf("request failed after retry: %w", lastErr))
}

// normalize maps a completed exchange to a Result. An empty body is valid
// (204 deletions); a body that is not JSON is a transport error.
func (c *Client) normalize(status int, body []byte) *Result {
	var decoded any
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &decoded); err != nil {
			return c.transportError(fmt.Errorf("decoding response body: %w", err))
		}
	}

	switch {
	case status >= 200 && status < 300:
		return &Result{
			Outcome: OutcomeSuccess,
			Message: messageField(decoded),
			Payload: decoded,
			Status:  status,
		}
	case status >= 400 && status < 500:
		return &Result{
			Outcome: OutcomeClientError,
			Message: errorMessage(status, decoded, body),
			Status:  status,
		}
	case status >= 500:
		return &Result{
			Outcome: OutcomeServerError,
			Message: errorMessage(status, decoded, body),
			Status:  status,
		}
	default:
		return &Result{
			Outcome: OutcomeUnknown,
			Message: fmt.Sprintf("unhandled status code: %d", status),
			Payload: decoded,
			Status:  status,
		}
	}
}

func (c *Client) transportError(err error) *Result {
	return &Result{
		Outcome: OutcomeTransportError,
		Message: c.sanitize(err.Error()),
		Status:  transportSentinelStatus,
	}
}

// sanitize keeps the bearer token out of anything user-visible.
func (c *Client) sanitize(msg string) string {
	if c.token == "" {
		return msg
	}
	return strings.ReplaceAll(msg, c.token, "[redacted]")
}

// buildURL constructs an absolute URL from the endpoint base, a resource
// path, and optional query parameters.
func (c *Client) buildURL(path string, params map[string]string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(c.cfg.Endpoint, "/") + path)
	if err != nil {
		return "", err
	}
	if len(params) > 0 {
		q := u.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// messageField pulls the body's own "message" field, if present.
func messageField(decoded any) string {
	if m, ok := decoded.(map[string]any); ok {
		if msg, ok := m["message"].(string); ok {
			return msg
		}
	}
	return ""
}

// errorMessage extracts a human-readable message from the Graph error
// envelope ({"error": {"code": ..., "message": ...}}), falling back to the
// raw body text.
func errorMessage(status int, decoded any, body []byte) string {
	if m, ok := decoded.(map[string]any); ok {
		switch e := m["error"].(type) {
		case map[string]any:
			if msg, ok := e["message"].(string); ok && msg != "" {
				return msg
			}
		case string:
			if e != "" {
				return e
			}
		}
		if msg, ok := m["message"].(string); ok && msg != "" {
			return msg
		}
	}
	if len(bytes.TrimSpace(body)) > 0 {
		return string(body)
	}
	return http.StatusText(status)
}

// retryAfter parses a Retry-After header given in seconds. HTTP-date form is
// not sent by the Graph throttling layer and is ignored.
func retryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
