package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/civi-client/internal/rest"
	"github.com/fivetwenty-io/civi-client/pkg/civi"
)

func TestTransport_ExecuteV3(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/civicrm/ajax/rest", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-key", r.PostForm.Get("api_key"))
		assert.Equal(t, "test-site-key", r.PostForm.Get("key"))
		assert.Equal(t, "Contact", r.PostForm.Get("entity"))
		assert.Equal(t, "get", r.PostForm.Get("action"))

		var params map[string]any

		require.NoError(t, json.Unmarshal([]byte(r.PostForm.Get("json")), &params))
		assert.Equal(t, float64(2), params["id"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"is_error":0,"count":1,"values":[{"id":"2","display_name":"Admin"}]}`))
	}))
	defer server.Close()

	transport := rest.New(&civi.Config{
		Endpoint: server.URL,
		APIKey:   "test-key",
		SiteKey:  "test-site-key",
	})

	raw, err := transport.Execute(context.Background(), &civi.Request{
		Version: civi.V3,
		Entity:  "Contact",
		Action:  "get",
		Params:  civi.Params{"id": 2},
	})
	require.NoError(t, err)

	data, ok := raw.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), data["count"])
}

func TestTransport_ExecuteV4(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/civicrm/ajax/api4/Contact/get", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("X-Civi-Auth"))

		require.NoError(t, r.ParseForm())

		var params map[string]any

		require.NoError(t, json.Unmarshal([]byte(r.PostForm.Get("params")), &params))
		assert.Equal(t, []any{[]any{"id", "=", float64(2)}}, params["where"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"values":[{"id":2,"display_name":"Admin"}],"count":1}`))
	}))
	defer server.Close()

	transport := rest.New(&civi.Config{
		Endpoint: server.URL,
		APIKey:   "test-key",
	})

	raw, err := transport.Execute(context.Background(), &civi.Request{
		Version: civi.V4,
		Entity:  "Contact",
		Action:  "get",
		Params:  civi.Params{"where": []any{[]any{"id", "=", 2}}},
	})
	require.NoError(t, err)

	data, ok := raw.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), data["count"])
}

func TestTransport_HTAccessAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "shield-user", user)
		assert.Equal(t, "shield-pass", pass)

		_, _ = w.Write([]byte(`{"values":[],"count":0}`))
	}))
	defer server.Close()

	transport := rest.New(&civi.Config{
		Endpoint:     server.URL,
		APIKey:       "test-key",
		HTAccessUser: "shield-user",
		HTAccessPass: "shield-pass",
	})

	_, err := transport.Execute(context.Background(), &civi.Request{
		Version: civi.V4,
		Entity:  "Contact",
		Action:  "get",
		Params:  civi.Params{},
	})
	require.NoError(t, err)
}

func TestTransport_RemoteErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error_message":"Api Contact foobar version 4 does not exist","error_code":404}`))
	}))
	defer server.Close()

	transport := rest.New(&civi.Config{Endpoint: server.URL, APIKey: "test-key"})

	_, err := transport.Execute(context.Background(), &civi.Request{
		Version: civi.V4,
		Entity:  "Contact",
		Action:  "foobar",
		Params:  civi.Params{},
	})
	require.Error(t, err)

	apiErr := &civi.RemoteAPIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Contact", apiErr.Entity)
	assert.Contains(t, apiErr.Message, "does not exist")
}

func TestTransport_UnparseableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>Bad Gateway</html>"))
	}))
	defer server.Close()

	transport := rest.New(&civi.Config{Endpoint: server.URL, APIKey: "test-key"})

	_, err := transport.Execute(context.Background(), &civi.Request{
		Version: civi.V4,
		Entity:  "Contact",
		Action:  "get",
		Params:  civi.Params{},
	})
	require.Error(t, err)

	connErr := &civi.ConnectionError{}
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, http.StatusBadGateway, connErr.StatusCode)
}

func TestTransport_UndecodableSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>login page</html>"))
	}))
	defer server.Close()

	transport := rest.New(&civi.Config{Endpoint: server.URL, APIKey: "test-key"})

	_, err := transport.Execute(context.Background(), &civi.Request{
		Version: civi.V4,
		Entity:  "Contact",
		Action:  "get",
		Params:  civi.Params{},
	})
	require.Error(t, err)
	assert.True(t, civi.IsDecodeError(err))
}

func TestTransport_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	transport := rest.New(&civi.Config{Endpoint: server.URL, APIKey: "test-key"})

	_, err := transport.Execute(context.Background(), &civi.Request{
		Version: civi.V4,
		Entity:  "Contact",
		Action:  "get",
		Params:  civi.Params{},
	})
	require.Error(t, err)
	assert.True(t, civi.IsConnectionError(err))
}

func TestTransport_UnsupportedVersion(t *testing.T) {
	transport := rest.New(&civi.Config{Endpoint: "https://example.org", APIKey: "test-key"})

	_, err := transport.Execute(context.Background(), &civi.Request{
		Version: civi.Version("v5"),
		Entity:  "Contact",
		Action:  "get",
	})
	require.ErrorIs(t, err, civi.ErrUnsupportedVersion)
}
