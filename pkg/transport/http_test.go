package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captured is what a test server saw of one request.
type captured struct {
	method string
	header http.Header
	query  string
	vars   string
	body   Request
}

func recordingServer(t *testing.T, response string) (*httptest.Server, <-chan captured) {
	t.Helper()
	requests := make(chan captured, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := captured{
			method: r.Method,
			header: r.Header.Clone(),
			query:  r.URL.Query().Get("query"),
			vars:   r.URL.Query().Get("variables"),
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &c.body)
		requests <- c
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, requests
}

func TestHTTP_Post(t *testing.T) {
	srv, requests := recordingServer(t, `{"data": {"user": {"id": "1"}}}`)

	fetch := NewHTTP(srv.URL, WithHeader("Authorization", "Bearer token"))
	data, err := fetch(context.Background(), "query {user {id}}", map[string]any{"id": "1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"user": map[string]any{"id": "1"}}, data)

	got := <-requests
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "query {user {id}}", got.body.Query)
	assert.Equal(t, map[string]any{"id": "1"}, got.body.Variables)
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
	assert.Equal(t, "Bearer token", got.header.Get("Authorization"))
}

func TestHTTP_Get(t *testing.T) {
	srv, requests := recordingServer(t, `{"data": {"ok": true}}`)

	fetch := NewHTTP(srv.URL+"/graphql", WithMethod("get"))
	data, err := fetch(context.Background(), "query {ok}", map[string]any{"first": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, data)

	got := <-requests
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "query {ok}", got.query)
	assert.JSONEq(t, `{"first": 1}`, got.vars)
}

func TestHTTP_StatusError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{name: "json body", body: `{"message": "nope"}`, want: map[string]any{"message": "nope"}},
		{name: "text body", body: "bad gateway", want: "bad gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewHTTP(srv.URL)(context.Background(), "query {ok}", nil)

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, http.StatusBadGateway, statusErr.Code)
			assert.Equal(t, tt.want, statusErr.Body)
			assert.Contains(t, err.Error(), "unexpected status 502")
		})
	}
}

func TestHTTP_GraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data": null, "errors": [{"message": "boom", "path": ["user"]}]}`)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL)(context.Background(), "query {user {id}}", nil)

	var gqlErr *GraphQLError
	require.True(t, errors.As(err, &gqlErr))
	require.Len(t, gqlErr.Response.Errors, 1)
	assert.Equal(t, "boom", gqlErr.Response.Errors[0].Message)
	assert.Contains(t, err.Error(), "boom")
}

func TestHTTP_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL)(context.Background(), "query {ok}", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed graphql response")
}

func TestHTTP_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data": {}}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTP(srv.URL)(ctx, "query {ok}", nil)
	assert.True(t, errors.Is(err, context.Canceled))
}
