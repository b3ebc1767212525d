package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// NewHTTP returns a FetchFunc posting documents to host. Non-2xx responses
// fail with *StatusError, responses with errors fail with *GraphQLError.
func NewHTTP(host string, opts ...Option) FetchFunc {
	cfg := newConfig(opts)
	return func(ctx context.Context, query string, variables map[string]any) (any, error) {
		req, err := cfg.newRequest(ctx, host, query, variables)
		if err != nil {
			return nil, err
		}

		cfg.logger.Debug("sending graphql request",
			zap.String("method", req.Method),
			zap.String("url", req.URL.Redacted()),
			zap.String("query", query))

		resp, err := cfg.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			cfg.logger.Debug("graphql request failed", zap.Int("status", resp.StatusCode))
			var parsed any
			if err := json.Unmarshal(body, &parsed); err != nil {
				return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
			}
			return nil, &StatusError{Code: resp.StatusCode, Body: parsed}
		}

		var envelope Response
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("malformed graphql response: %w", err)
		}
		if len(envelope.Errors) > 0 {
			return nil, &GraphQLError{Response: envelope}
		}
		return envelope.Data, nil
	}
}

func (cfg *config) newRequest(ctx context.Context, host, query string, variables map[string]any) (*http.Request, error) {
	var req *http.Request
	if strings.EqualFold(cfg.method, http.MethodGet) {
		u, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("invalid host %q: %w", host, err)
		}
		params := u.Query()
		params.Set("query", query)
		if len(variables) > 0 {
			encoded, err := json.Marshal(variables)
			if err != nil {
				return nil, fmt.Errorf("failed to encode variables: %w", err)
			}
			params.Set("variables", string(encoded))
		}
		u.RawQuery = params.Encode()
		if req, err = http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil); err != nil {
			return nil, err
		}
	} else {
		body, err := json.Marshal(Request{Query: query, Variables: variables})
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		if req, err = http.NewRequestWithContext(ctx, http.MethodPost, host, bytes.NewReader(body)); err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range cfg.header {
		req.Header[key] = values
	}
	return req, nil
}
