// Package rest implements the HTTP transport, sending prepared requests to
// CiviCRM's REST/AJAX endpoints.
package rest

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/civi-client/internal/constants"
	"github.com/fivetwenty-io/civi-client/pkg/civi"
)

// Transport implements civi.Transport over HTTP.
type Transport struct {
	endpoint  string
	apiKey    string
	siteKey   string
	authUser  string
	authPass  string
	userAgent string
	client    *retryablehttp.Client
	logger    zerolog.Logger
}

// New creates an HTTP transport from the given configuration. The endpoint
// must already be normalized (scheme present, no trailing slash).
func New(cfg *civi.Config) *Transport {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = cfg.RetryMax

	client.RetryWaitMin = constants.DefaultRetryWaitMin
	if cfg.RetryWaitMin > 0 {
		client.RetryWaitMin = cfg.RetryWaitMin
	}

	client.RetryWaitMax = constants.DefaultRetryWaitMax
	if cfg.RetryWaitMax > 0 {
		client.RetryWaitMax = cfg.RetryWaitMax
	}

	client.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	if cfg.HTTPTimeout > 0 {
		client.HTTPClient.Timeout = cfg.HTTPTimeout
	}

	if cfg.SkipTLSVerify {
		client.HTTPClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // opt-in for development installations
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = constants.DefaultUserAgent
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Transport{
		endpoint:  cfg.Endpoint,
		apiKey:    cfg.APIKey,
		siteKey:   cfg.SiteKey,
		authUser:  cfg.HTAccessUser,
		authPass:  cfg.HTAccessPass,
		userAgent: userAgent,
		client:    client,
		logger:    logger,
	}
}

// Execute sends one prepared request and returns the decoded response body.
func (t *Transport) Execute(ctx context.Context, req *civi.Request) (any, error) {
	endpoint, form, err := t.buildRequest(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", t.userAgent)

	if req.Version == civi.V4 {
		httpReq.Header.Set("X-Civi-Auth", "Bearer "+t.apiKey)
	}

	if t.authUser != "" {
		httpReq.SetBasicAuth(t.authUser, t.authPass)
	}

	t.logger.Debug().
		Str("url", endpoint).
		Str("entity", req.Entity).
		Str("action", req.Action).
		Msg("performing POST request")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &civi.ConnectionError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &civi.ConnectionError{Endpoint: endpoint, Err: err}
	}

	t.logger.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("POST request done")

	var decoded any

	decodeErr := json.Unmarshal(body, &decoded)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if decodeErr == nil {
			return nil, remoteError(req, decoded, string(body))
		}

		return nil, &civi.ConnectionError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if decodeErr != nil {
		return nil, &civi.DecodeError{Raw: string(body), Err: decodeErr}
	}

	return decoded, nil
}

// buildRequest assembles the version-appropriate endpoint and form body.
// v3 takes positional entity/action plus the flattened params as a json
// field; v4 addresses entity/action in the path and carries one structured
// params object.
func (t *Transport) buildRequest(req *civi.Request) (string, url.Values, error) {
	encoded, err := json.Marshal(req.Params)
	if err != nil {
		return "", nil, fmt.Errorf("encoding params: %w", err)
	}

	form := url.Values{}

	switch req.Version {
	case civi.V3:
		form.Set("api_key", t.apiKey)
		form.Set("key", t.siteKey)
		form.Set("entity", req.Entity)
		form.Set("action", req.Action)
		form.Set("json", string(encoded))

		return t.endpoint + constants.RestPathV3, form, nil
	case civi.V4:
		form.Set("params", string(encoded))

		endpoint := t.endpoint + constants.RestPathV4 +
			"/" + url.PathEscape(req.Entity) + "/" + url.PathEscape(req.Action)

		return endpoint, form, nil
	default:
		return "", nil, fmt.Errorf("%w: %q", civi.ErrUnsupportedVersion, req.Version)
	}
}

// remoteError surfaces a non-2xx response whose body still parsed as JSON:
// the remote API reporting a failure, message and code verbatim.
func remoteError(req *civi.Request, decoded any, raw string) error {
	apiErr := &civi.RemoteAPIError{Entity: req.Entity, Action: req.Action}

	if fields, ok := decoded.(map[string]any); ok {
		if message, ok := fields["error_message"].(string); ok {
			apiErr.Message = message
		}

		if apiErr.Message == "" {
			if message, ok := fields["message"].(string); ok {
				apiErr.Message = message
			}
		}

		if code, ok := fields["error_code"]; ok {
			apiErr.Code = fmt.Sprintf("%v", code)
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = raw
	}

	return apiErr
}
