package civi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	connErr := &ConnectionError{Endpoint: "https://example.org", Err: errors.New("no route to host")}
	assert.Contains(t, connErr.Error(), "example.org")
	assert.Contains(t, connErr.Error(), "no route to host")

	statusErr := &ConnectionError{Endpoint: "https://example.org", StatusCode: 502}
	assert.Contains(t, statusErr.Error(), "502")

	procErr := &SubprocessError{Command: "cv api4 Contact.get", ExitCode: 1, Stderr: "entity not found"}
	assert.Contains(t, procErr.Error(), "entity not found")
	assert.Contains(t, procErr.Error(), "code 1")

	decErr := &DecodeError{Raw: "<html>", Err: errors.New("invalid character '<'")}
	assert.Contains(t, decErr.Error(), "invalid character")

	apiErr := &RemoteAPIError{Entity: "Contact", Action: "get", Message: "Invalid credential", Code: "401"}
	assert.Contains(t, apiErr.Error(), "Contact.get")
	assert.Contains(t, apiErr.Error(), "Invalid credential")
	assert.Contains(t, apiErr.Error(), "401")

	countErr := &UnexpectedResultCountError{Expected: 1, Actual: 3}
	assert.Equal(t, "expected 1 result, got 3", countErr.Error())
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want func(error) bool
	}{
		{"connection", &ConnectionError{}, IsConnectionError},
		{"subprocess", &SubprocessError{}, IsSubprocessError},
		{"decode", &DecodeError{}, IsDecodeError},
		{"remote", &RemoteAPIError{}, IsRemoteAPIError},
		{"count", &UnexpectedResultCountError{}, IsUnexpectedResultCount},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.True(t, test.want(test.err))
			assert.True(t, test.want(fmt.Errorf("wrapped: %w", test.err)))
			assert.False(t, test.want(errors.New("other")))
		})
	}
}

func TestClassifiersDistinguish(t *testing.T) {
	err := error(&RemoteAPIError{Message: "nope"})

	assert.True(t, IsRemoteAPIError(err))
	assert.False(t, IsConnectionError(err))
	assert.False(t, IsSubprocessError(err))
	assert.False(t, IsDecodeError(err))
	assert.False(t, IsUnexpectedResultCount(err))
}

func TestFormatErrorCode(t *testing.T) {
	assert.Equal(t, "", formatErrorCode(nil))
	assert.Equal(t, "not-found", formatErrorCode("not-found"))
	assert.Equal(t, "404", formatErrorCode(float64(404)))
}
