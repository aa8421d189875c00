package graph

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Config contains the connection settings for the upstream Microsoft Graph
// API. A zero value is not usable; start from DefaultConfig and override.
type Config struct {
	// Endpoint is the base URL of the Graph API.
	// Example: "https://graph.microsoft.com/v1.0"
	Endpoint string

	// AuthorizationHeader is the header name the bearer token is sent in.
	// Default: "Authorization"
	AuthorizationHeader string

	// BearerPrefix is prepended to the access token in the authorization
	// header. Default: "Bearer"
	BearerPrefix string

	// ContentTypeHeader is the header name used for the request media type.
	// Default: "Content-Type"
	ContentTypeHeader string

	// ContentType is the media type sent with request bodies.
	// Default: "application/json"
	ContentType string

	// Timeout bounds each outbound call. Default: 10 seconds.
	Timeout time.Duration

	// MaxSendAttempts bounds the resend loop used for throttled mail
	// deliveries. Default: 5.
	MaxSendAttempts int

	// RetryInitialInterval is the starting backoff between resend attempts.
	// Default: 500 milliseconds.
	RetryInitialInterval time.Duration

	// RetryMaxInterval caps the backoff between resend attempts.
	// Default: 10 seconds.
	RetryMaxInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		AuthorizationHeader:  "Authorization",
		BearerPrefix:         "Bearer",
		ContentTypeHeader:    "Content-Type",
		ContentType:          "application/json",
		Timeout:              10 * time.Second,
		MaxSendAttempts:      5,
		RetryInitialInterval: 500 * time.Millisecond,
		RetryMaxInterval:     10 * time.Second,
	}
}

// WithDefaults fills any unset field from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.AuthorizationHeader == "" {
		c.AuthorizationHeader = d.AuthorizationHeader
	}
	if c.BearerPrefix == "" {
		c.BearerPrefix = d.BearerPrefix
	}
	if c.ContentTypeHeader == "" {
		c.ContentTypeHeader = d.ContentTypeHeader
	}
	if c.ContentType == "" {
		c.ContentType = d.ContentType
	}
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	if c.MaxSendAttempts == 0 {
		c.MaxSendAttempts = d.MaxSendAttempts
	}
	if c.RetryInitialInterval == 0 {
		c.RetryInitialInterval = d.RetryInitialInterval
	}
	if c.RetryMaxInterval == 0 {
		c.RetryMaxInterval = d.RetryMaxInterval
	}
	return c
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	var result *multierror.Error

	if c.Endpoint == "" {
		result = multierror.Append(result, fmt.Errorf("endpoint is required"))
	} else {
		u, err := url.Parse(c.Endpoint)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid endpoint: %w", err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			result = multierror.Append(result, fmt.Errorf(
				"endpoint must use http or https scheme, got: %s", u.Scheme))
		}
	}

	if c.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf(
			"timeout must be non-negative, got: %v", c.Timeout))
	}
	if c.MaxSendAttempts < 1 {
		result = multierror.Append(result, fmt.Errorf(
			"max send attempts must be at least 1, got: %d", c.MaxSendAttempts))
	}

	return result.ErrorOrNil()
}

// NewHTTPClient creates a configured HTTP client for this config.
func (c Config) NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: c.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Context carries the per-request identity and connection settings shared by
// the transport client and the domain services. It is built once per inbound
// request and never mutated afterwards.
type Context struct {
	// AccessToken is the caller's bearer token for the upstream API.
	AccessToken string

	// Config is the upstream connection configuration.
	Config Config
}
