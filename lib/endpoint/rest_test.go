package endpoint

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ether/wsclient-go/lib/models/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testHTTPOptions = HTTPOptions{
	Timeout:      5 * time.Second,
	RetryMax:     0,
	RetryWaitMin: time.Millisecond,
	RetryWaitMax: time.Millisecond,
}

func newRESTEndpoint(t *testing.T, desc service.ServiceDescription) *RESTEndpoint {
	t.Helper()
	ep, err := NewRESTFactory(testHTTPOptions, zap.NewNop().Sugar())(&desc)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ep.Close() })
	return ep.(*RESTEndpoint)
}

func TestRESTGetSendsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/items", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "secret", r.Header.Get("X-Token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": ["a", "b"]}`))
	}))
	defer server.Close()

	ep := newRESTEndpoint(t, service.ServiceDescription{
		Name:     "items",
		URL:      server.URL + "/api",
		Settings: map[string]any{"headers": map[string]any{"X-Token": "secret"}},
		Operations: map[string]service.Operation{
			"list": {Label: "List", Method: "get", Path: "/items"},
		},
	})

	result, err := ep.Call(context.Background(), "list", map[string]any{"limit": 5})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"items": []any{"a", "b"}}, result)
}

func TestRESTPostSendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "widget", payload["name"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 7}`))
	}))
	defer server.Close()

	ep := newRESTEndpoint(t, service.ServiceDescription{
		URL: server.URL,
		Operations: map[string]service.Operation{
			"create": {Label: "Create", Method: "POST", Path: "items"},
		},
	})

	result, err := ep.Call(context.Background(), "create", map[string]any{"name": "widget"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": float64(7)}, result)
}

func TestRESTPlainTextResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "pong")
	}))
	defer server.Close()

	ep := newRESTEndpoint(t, service.ServiceDescription{
		URL:        server.URL,
		Operations: map[string]service.Operation{"ping": {Label: "Ping"}},
	})

	result, err := ep.Call(context.Background(), "ping", nil)
	require.NoError(t, err)
	assert.Equal(t, "pong", result)
}

func TestRESTRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "broken")
	}))
	defer server.Close()

	ep := newRESTEndpoint(t, service.ServiceDescription{
		URL:        server.URL,
		Operations: map[string]service.Operation{"ping": {Label: "Ping"}},
	})

	_, err := ep.Call(context.Background(), "ping", nil)
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusInternalServerError, remoteErr.StatusCode)
	assert.Equal(t, "broken", remoteErr.Body)
}

func TestRESTUnknownOperation(t *testing.T) {
	ep := newRESTEndpoint(t, service.ServiceDescription{
		URL:        "http://localhost",
		Operations: map[string]service.Operation{"b": {}, "a": {}},
	})

	_, err := ep.Call(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrUnknownOperation)
	assert.Equal(t, []string{"a", "b"}, ep.Operations())
}

func TestRESTFactoryRejectsBadURL(t *testing.T) {
	_, err := NewRESTFactory(testHTTPOptions, zap.NewNop().Sugar())(&service.ServiceDescription{URL: "ftp://example.com"})
	assert.Error(t, err)
}

func TestWebHookPostsOperation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var payload webHookPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "node_saved", payload.Operation)
		assert.Equal(t, "42", payload.Arguments["nid"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	desc := service.ServiceDescription{Name: "hook", URL: server.URL + "/hook"}
	ep, err := NewWebHookFactory(testHTTPOptions, zap.NewNop().Sugar())(&desc)
	require.NoError(t, err)
	defer ep.Close()

	result, err := ep.Call(context.Background(), "node_saved", map[string]any{"nid": "42"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, result)
}

func TestWebHookRestrictsDeclaredOperations(t *testing.T) {
	desc := service.ServiceDescription{
		URL:        "http://localhost/hook",
		Operations: map[string]service.Operation{"node_saved": {Label: "Node saved"}},
	}
	ep, err := NewWebHookFactory(testHTTPOptions, zap.NewNop().Sugar())(&desc)
	require.NoError(t, err)

	_, err = ep.Call(context.Background(), "user_login", nil)
	assert.ErrorIs(t, err, ErrUnknownOperation)
}
