// Package config loads the gateway configuration from an HCL file.
// Configuration is read once at startup and immutable afterwards.
package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/Amarverma111/graph/pkg/graph"
)

// Config is the resolved runtime configuration.
type Config struct {
	// ListenAddr is the address the gateway serves on. Default: ":8000".
	ListenAddr string

	// Env names the deployment environment ("dev", "prod", ...). In "dev"
	// the ACCESS_TOKEN environment variable may stand in for a caller token.
	Env string

	// Graph is the upstream connection configuration.
	Graph graph.Config

	// Auth configures the authorization-code flow exposed on
	// /api/login and /api/callback.
	Auth AuthConfig
}

// AuthConfig carries the OAuth client settings for the identity provider.
type AuthConfig struct {
	ClientID         string
	ClientSecret     string
	RedirectURL      string
	AuthorizationURL string
	TokenURL         string
	Scopes           []string
}

// fileConfig is the HCL file shape. Durations are strings in the file and
// parsed during resolution.
type fileConfig struct {
	ListenAddr string           `hcl:"listen_addr,optional"`
	Env        string           `hcl:"env,optional"`
	Graph      *fileGraphConfig `hcl:"graph,block"`
	Auth       *fileAuthConfig  `hcl:"auth,block"`
}

type fileGraphConfig struct {
	Endpoint            string `hcl:"endpoint"`
	AuthorizationHeader string `hcl:"authorization_header,optional"`
	BearerPrefix        string `hcl:"bearer_prefix,optional"`
	ContentTypeHeader   string `hcl:"content_type_header,optional"`
	ContentType         string `hcl:"content_type,optional"`
	Timeout             string `hcl:"timeout,optional"`
	MaxSendAttempts     int    `hcl:"max_send_attempts,optional"`
}

type fileAuthConfig struct {
	ClientID         string   `hcl:"client_id"`
	ClientSecret     string   `hcl:"client_secret"`
	RedirectURL      string   `hcl:"redirect_url"`
	AuthorizationURL string   `hcl:"authorization_url"`
	TokenURL         string   `hcl:"token_url"`
	Scopes           []string `hcl:"scopes,optional"`
}

// FromFile parses and resolves the configuration at path.
func FromFile(path string) (*Config, error) {
	var fc fileConfig
	if err := hclsimple.DecodeFile(path, nil, &fc); err != nil {
		return nil, fmt.Errorf("decoding config file: %w", err)
	}

	cfg, err := fc.resolve()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (fc *fileConfig) resolve() (*Config, error) {
	cfg := &Config{
		ListenAddr: fc.ListenAddr,
		Env:        fc.Env,
		Graph:      graph.DefaultConfig(),
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8000"
	}
	if cfg.Env == "" {
		cfg.Env = "dev"
	}

	if fc.Graph != nil {
		g := &cfg.Graph
		g.Endpoint = fc.Graph.Endpoint
		if fc.Graph.AuthorizationHeader != "" {
			g.AuthorizationHeader = fc.Graph.AuthorizationHeader
		}
		if fc.Graph.BearerPrefix != "" {
			g.BearerPrefix = fc.Graph.BearerPrefix
		}
		if fc.Graph.ContentTypeHeader != "" {
			g.ContentTypeHeader = fc.Graph.ContentTypeHeader
		}
		if fc.Graph.ContentType != "" {
			g.ContentType = fc.Graph.ContentType
		}
		if fc.Graph.Timeout != "" {
			d, err := time.ParseDuration(fc.Graph.Timeout)
			if err != nil {
				return nil, fmt.Errorf("invalid graph timeout: %w", err)
			}
			g.Timeout = d
		}
		if fc.Graph.MaxSendAttempts != 0 {
			g.MaxSendAttempts = fc.Graph.MaxSendAttempts
		}
	}

	if fc.Auth != nil {
		cfg.Auth = AuthConfig{
			ClientID:         fc.Auth.ClientID,
			ClientSecret:     fc.Auth.ClientSecret,
			RedirectURL:      fc.Auth.RedirectURL,
			AuthorizationURL: fc.Auth.AuthorizationURL,
			TokenURL:         fc.Auth.TokenURL,
			Scopes:           fc.Auth.Scopes,
		}
	}

	return cfg, nil
}

// Validate checks the resolved configuration, reporting every problem found.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.ListenAddr == "" {
		result = multierror.Append(result, fmt.Errorf("listen_addr is required"))
	}
	if err := c.Graph.Validate(); err != nil {
		result = multierror.Append(result, fmt.Errorf("graph: %w", err))
	}

	return result.ErrorOrNil()
}
