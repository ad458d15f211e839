// Package replyifyclient provides the main entry point for creating Replyify API clients
package replyifyclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/replyify-client/internal/client"
	"github.com/fivetwenty-io/replyify-client/internal/config"
	"github.com/fivetwenty-io/replyify-client/pkg/replyify"
)

// New creates a new Replyify API client from a copy of config.
func New(config *replyify.Config) (replyify.Client, error) {
	if config == nil {
		return nil, replyify.ErrConfigRequired
	}

	normalized := *config
	normalized.APIBase = normalizeBase(config.APIBase)
	normalized.UploadAPIBase = normalizeBase(config.UploadAPIBase)
	config = &normalized

	if config.SkipTLSVerify && config.Logger != nil {
		config.Logger.Warn("TLS certificate verification is disabled", map[string]interface{}{
			"api_base": config.APIBase,
		})
	}

	return client.New(config, nil), nil
}

// NewDefault creates a client that reads replyify.DefaultConfig at the
// start of every request.
func NewDefault() replyify.Client {
	return client.New(nil, nil)
}

// NewWithToken creates a client for the default API base using token.
func NewWithToken(token string) (replyify.Client, error) {
	config := replyify.NewConfig()
	config.AccessToken = token

	return New(config)
}

// NewFromEnv creates a client from configFile and the REPLYIFY_*
// environment variables. An empty configFile reads ~/.replyify/config.yml
// when it exists.
func NewFromEnv(configFile string) (replyify.Client, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	return New(cfg)
}

// normalizeBase trims the trailing slash and defaults the scheme to https.
func normalizeBase(base string) string {
	if base == "" {
		return base
	}

	base = strings.TrimSuffix(base, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}

	return base
}
