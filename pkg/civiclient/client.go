// Package civiclient provides the main entry point for creating CiviCRM
// API clients.
package civiclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/civi-client/internal/console"
	"github.com/fivetwenty-io/civi-client/internal/rest"
	"github.com/fivetwenty-io/civi-client/pkg/civi"
)

// New creates a CiviCRM API client for the configured version and
// transport. It validates and normalizes the configuration, builds the
// transport, and performs no I/O: the remote side is contacted only when an
// action is invoked.
func New(config *civi.Config) (*civi.API, error) {
	if config == nil {
		return nil, civi.ErrConfigRequired
	}

	cfg := *config

	if cfg.Version == "" {
		cfg.Version = civi.V4
	}

	if !cfg.Version.Valid() {
		return nil, fmt.Errorf("%w: %q", civi.ErrUnsupportedVersion, cfg.Version)
	}

	if cfg.Transport == "" {
		cfg.Transport = civi.TransportREST
	}

	var transport civi.Transport

	switch cfg.Transport {
	case civi.TransportREST:
		if err := normalizeREST(&cfg); err != nil {
			return nil, err
		}

		transport = rest.New(&cfg)
	case civi.TransportConsole:
		transport = console.New(&cfg)
	default:
		return nil, fmt.Errorf("%w: %q", civi.ErrUnsupportedTransport, cfg.Transport)
	}

	return civi.NewAPI(cfg.Version, transport, cfg.Logger)
}

// normalizeREST validates REST credentials and normalizes the endpoint:
// trailing slash trimmed, https assumed when no scheme is given.
func normalizeREST(cfg *civi.Config) error {
	if cfg.Endpoint == "" {
		return civi.ErrEndpointRequired
	}

	if cfg.APIKey == "" {
		return civi.ErrAPIKeyRequired
	}

	if cfg.Version == civi.V3 && cfg.SiteKey == "" {
		return civi.ErrSiteKeyRequired
	}

	endpoint := strings.TrimSuffix(cfg.Endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	cfg.Endpoint = endpoint

	return nil
}
