package civi

import (
	"errors"
	"fmt"
	"strconv"
)

// Static errors for construction-time validation.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrEndpointRequired     = errors.New("endpoint is required")
	ErrAPIKeyRequired       = errors.New("API key is required")
	ErrSiteKeyRequired      = errors.New("site key is required for APIv3 over REST")
	ErrTransportRequired    = errors.New("transport is required")
	ErrEntityRequired       = errors.New("entity name is required")
	ErrActionRequired       = errors.New("action name is required")
	ErrUnsupportedVersion   = errors.New("unsupported API version")
	ErrUnsupportedTransport = errors.New("unsupported transport kind")
)

// ConnectionError indicates the transport could not reach the remote
// endpoint or process at all: network failure, executable not found, or a
// non-2xx HTTP status without a parseable body.
type ConnectionError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *ConnectionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("connecting to %s: unexpected status %d", e.Endpoint, e.StatusCode)
	}

	return fmt.Sprintf("connecting to %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// SubprocessError indicates the console transport's process exited with a
// non-zero code. Stderr carries the captured standard error verbatim.
type SubprocessError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *SubprocessError) Error() string {
	return fmt.Sprintf("%s exited with code %d: %s", e.Command, e.ExitCode, e.Stderr)
}

// DecodeError indicates the transport received bytes that do not parse as
// the expected structured format.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RemoteAPIError indicates the remote API itself reported a failure. The
// message and code are carried verbatim from the server.
type RemoteAPIError struct {
	Entity  string
	Action  string
	Message string
	Code    string
}

func (e *RemoteAPIError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s (code: %s)", msg, e.Code)
	}

	if e.Entity != "" {
		return fmt.Sprintf("%s.%s: %s", e.Entity, e.Action, msg)
	}

	return msg
}

// UnexpectedResultCountError indicates exactly-one-result semantics were
// requested but the result holds zero or more than one record.
type UnexpectedResultCountError struct {
	Expected int
	Actual   int
}

func (e *UnexpectedResultCountError) Error() string {
	return fmt.Sprintf("expected %d result, got %d", e.Expected, e.Actual)
}

// IsConnectionError checks if the error is a transport connection failure.
func IsConnectionError(err error) bool {
	connErr := &ConnectionError{}

	return errors.As(err, &connErr)
}

// IsSubprocessError checks if the error is a non-zero console process exit.
func IsSubprocessError(err error) bool {
	procErr := &SubprocessError{}

	return errors.As(err, &procErr)
}

// IsDecodeError checks if the error is an unparseable transport response.
func IsDecodeError(err error) bool {
	decErr := &DecodeError{}

	return errors.As(err, &decErr)
}

// IsRemoteAPIError checks if the error is a failure reported by the remote
// API itself.
func IsRemoteAPIError(err error) bool {
	apiErr := &RemoteAPIError{}

	return errors.As(err, &apiErr)
}

// IsUnexpectedResultCount checks if the error is a single-value accessor
// count mismatch.
func IsUnexpectedResultCount(err error) bool {
	countErr := &UnexpectedResultCountError{}

	return errors.As(err, &countErr)
}

// formatErrorCode renders a decoded error code, which CiviCRM reports as a
// string for some calls and a number for others.
func formatErrorCode(code any) string {
	switch v := code.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
