package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultRetryWaitMin is the minimum wait between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between transport retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// CiviCRM REST endpoint paths.
const (
	// RestPathV3 is the APIv3 AJAX endpoint, relative to the base URL.
	RestPathV3 = "/civicrm/ajax/rest"

	// RestPathV4 is the APIv4 AJAX endpoint prefix; entity and action are
	// appended as path segments.
	RestPathV4 = "/civicrm/ajax/api4"
)

// Console transport defaults.
const (
	// DefaultExecutable is the cv binary looked up on PATH when no
	// explicit path is configured.
	DefaultExecutable = "cv"
)

// DefaultUserAgent identifies the client on the wire.
const DefaultUserAgent = "civi-client-go"
