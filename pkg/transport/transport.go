// Package transport carries built GraphQL documents to a server: a fetch
// style HTTP transport for queries and mutations and a WebSocket transport
// for subscriptions.
package transport

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

// FetchFunc sends one document and returns the data field of the response.
type FetchFunc func(ctx context.Context, query string, variables map[string]any) (any, error)

// SubscribeFunc opens one subscription stream for a document.
type SubscribeFunc func(ctx context.Context, query string) (Stream, error)

// Event is one inbound subscription message. Exactly one of Data or Err is
// meaningful.
type Event struct {
	Data any
	Err  error
}

// Stream is a live subscription. Events is closed once the underlying
// connection is gone.
type Stream interface {
	Events() <-chan Event
	Close() error
}

// Request is the JSON body of a POST request.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Response is the GraphQL response envelope.
type Response struct {
	Data   any           `json:"data"`
	Errors gqlerror.List `json:"errors,omitempty"`
}

// GraphQLError is returned when a response carries an errors array.
type GraphQLError struct {
	Response Response
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("graphql response error: %s", e.Response.Errors.Error())
}

// StatusError is returned for non-2xx responses. Body holds the parsed JSON
// body, or the raw text when it is not JSON.
type StatusError struct {
	Code int
	Body any
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %v", e.Code, e.Body)
}

type config struct {
	client *http.Client
	method string
	header http.Header
	wsURL  string
	dialer *websocket.Dialer
	logger *zap.Logger
}

// Option configures a transport.
type Option func(*config)

// WithHTTPClient sets the client used for fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *config) { cfg.client = c }
}

// WithMethod selects GET or POST (the default) for fetches. GET sends the
// document in the query string.
func WithMethod(method string) Option {
	return func(cfg *config) { cfg.method = method }
}

// WithHeader adds a request header to fetches and WebSocket handshakes.
func WithHeader(key, value string) Option {
	return func(cfg *config) { cfg.header.Add(key, value) }
}

// WithWebSocketURL overrides the URL subscriptions dial. By default it is
// derived from the host by switching http(s) to ws(s).
func WithWebSocketURL(u string) Option {
	return func(cfg *config) { cfg.wsURL = u }
}

// WithDialer sets the WebSocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(cfg *config) { cfg.dialer = d }
}

// WithLogger sets the transport logger.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) { cfg.logger = l }
}

func newConfig(opts []Option) *config {
	cfg := &config{
		client: http.DefaultClient,
		method: http.MethodPost,
		header: http.Header{},
		dialer: websocket.DefaultDialer,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
