package civi

import (
	"time"

	"github.com/rs/zerolog"
)

// TransportKind selects how prepared requests reach the remote API.
type TransportKind string

const (
	// TransportREST sends requests to CiviCRM's REST/AJAX endpoints.
	TransportREST TransportKind = "rest"

	// TransportConsole runs the local `cv` tool as a subprocess.
	TransportConsole TransportKind = "console"
)

// Config represents client configuration for building an API via
// pkg/civiclient. Exactly one transport is active per client; the REST and
// console sections are read only for their respective kinds.
type Config struct {
	// Version selects the API generation (V3 or V4). Defaults to V4.
	Version Version

	// Transport selects the transport kind. Defaults to TransportREST.
	Transport TransportKind

	// REST transport settings.

	// Endpoint is CiviCRM's base URL, e.g. "https://example.org". A missing
	// scheme defaults to https, a trailing slash is trimmed.
	Endpoint string
	// APIKey is the contact's API key, sent as the api_key parameter (v3)
	// or as the X-Civi-Auth bearer token (v4).
	APIKey string
	// SiteKey is the installation's site key. Required for v3 over REST.
	SiteKey string
	// HTAccessUser and HTAccessPass add htaccess basic auth in front of the
	// CiviCRM endpoints when the installation is shielded that way.
	HTAccessUser string
	HTAccessPass string
	// SkipTLSVerify disables certificate verification. Development only.
	SkipTLSVerify bool
	// HTTPTimeout bounds one request round-trip. Zero means the default.
	HTTPTimeout time.Duration
	// RetryMax is the maximum number of transport-level retries for
	// transient HTTP failures. Zero means no retries; the core itself never
	// retries a call.
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound backoff between retries, applied
	// only when RetryMax > 0.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Console transport settings.

	// Executable is the cv binary to run. Defaults to "cv".
	Executable string
	// WorkDir is the CiviCRM root the subprocess runs in.
	WorkDir string
	// ContextCommand is an optional argv prefix the cv invocation is run
	// through, e.g. "docker compose exec -T app" to reach a container.
	ContextCommand string
	// Env lists extra KEY=VALUE entries appended to the inherited
	// environment for the subprocess.
	Env []string
	// ExecTimeout bounds one subprocess run. Zero means no timeout beyond
	// the caller's context.
	ExecTimeout time.Duration

	// Logger receives structured debug/info logging. Nil disables logging.
	Logger *zerolog.Logger
}
