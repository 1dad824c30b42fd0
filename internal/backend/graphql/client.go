// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

/*
Package graphql implements the query transport against the backend's primary
API.

Every successful response is cached under the caller's tags plus the umbrella
content tag, with a fixed freshness window. The transport has two execution
policies:

  - Execute: strict — transport and application failures are returned as
    typed errors ([*backend.TransportError], [*backend.BackendError]).
  - ExecuteGraceful: a caller-supplied fallback replaces any failure, and an
    unconfigured backend short-circuits without touching the network. This is
    how the whole read side degrades to "no content" instead of crashing.
*/
package graphql

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressgate/pressgate/internal/backend"
	"github.com/pressgate/pressgate/internal/platform/cache"
	"github.com/pressgate/pressgate/internal/platform/constants"
	"github.com/pressgate/pressgate/internal/platform/ctxutil"
	"github.com/pressgate/pressgate/internal/platform/httpx"
)

// envelope is the backend's standard GraphQL response wrapper.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Client executes typed queries against {base}/graphql with read-through caching.
type Client struct {
	endpoint string
	http     *httpx.Client
	store    cache.Store
	ttl      time.Duration
}

// NewClient constructs a query transport.
//
// baseURL may be empty; the resulting client reports Configured() == false
// and strict execution fails with [ErrUnconfigured].
func NewClient(baseURL string, httpClient *httpx.Client, store cache.Store, ttl time.Duration) *Client {
	endpoint := ""
	if baseURL != "" {
		endpoint = baseURL + "/graphql"
	}

	return &Client{
		endpoint: endpoint,
		http:     httpClient,
		store:    store,
		ttl:      ttl,
	}
}

// Configured reports whether a backend endpoint is available.
func (c *Client) Configured() bool {
	return c.endpoint != ""
}

// Execute runs a query and returns the envelope's data payload.
//
// Cache behavior: a fresh cached payload for the identical query+variables is
// returned without a network call; a successful fetch is stored under the
// given tags (plus the umbrella tag) for the configured freshness window.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any, tags []string) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, backend.ErrUnconfigured
	}

	key, err := requestKey(query, variables)
	if err != nil {
		return nil, err
	}

	if cached, ok := c.store.Get(ctx, key); ok {
		return json.RawMessage(cached), nil
	}

	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("graphql: encode request: %w", err)
	}

	resp, err := c.http.Post(ctx, c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("graphql: execute query: %w", err)
	}

	if !httpx.Is2xx(resp) {
		resp.Body.Close()
		return nil, &backend.TransportError{Status: resp.StatusCode, Endpoint: c.endpoint}
	}

	var env envelope
	if err := httpx.DecodeJSON(resp, &env); err != nil {
		return nil, err
	}

	if len(env.Errors) > 0 {
		messages := make([]string, 0, len(env.Errors))
		for _, backendErr := range env.Errors {
			messages = append(messages, backendErr.Message)
		}
		return nil, &backend.BackendError{Messages: messages}
	}

	cacheTags := append([]string{constants.TagAllContent}, tags...)
	if err := c.store.Set(ctx, key, env.Data, c.ttl, cacheTags...); err != nil {
		// A broken cache must not break reads; log and serve the fresh data.
		ctxutil.GetLogger(ctx).WarnContext(ctx, "graphql_cache_store_failed",
			slog.String("error", err.Error()),
		)
	}

	return env.Data, nil
}

// ExecuteGraceful runs a query, returning fallback instead of any failure.
//
// It short-circuits to fallback immediately when the backend is unconfigured,
// making no network or cache calls.
func (c *Client) ExecuteGraceful(ctx context.Context, query string, fallback json.RawMessage, variables map[string]any, tags []string) json.RawMessage {
	if !c.Configured() {
		return fallback
	}

	data, err := c.Execute(ctx, query, variables, tags)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "graphql_query_degraded",
			slog.String("error", err.Error()),
		)
		return fallback
	}

	return data
}

// requestKey derives the content-addressable cache key for a query+variables
// pair. Go's json.Marshal sorts map keys, so the encoding is canonical.
func requestKey(query string, variables map[string]any) (string, error) {
	encodedVars, err := json.Marshal(variables)
	if err != nil {
		return "", fmt.Errorf("graphql: encode variables: %w", err)
	}

	digest := sha256.New()
	digest.Write([]byte(query))
	digest.Write([]byte{0})
	digest.Write(encodedVars)

	return "gql:" + hex.EncodeToString(digest.Sum(nil)), nil
}
