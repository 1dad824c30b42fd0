// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

/*
Package document implements the supplementary transport against the backend's
per-resource REST API.

The document API exposes extension fields — custom attributes and
dynamically-discovered taxonomy relationships — that the primary query API
does not. Responses are cached under the caller's tags like query responses.

Services consuming this transport are expected to swallow its errors: the
document API only ever enriches an entity, so a failed fetch degrades to
"no extras", never to a failed page.
*/
package document

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pressgate/pressgate/internal/backend"
	"github.com/pressgate/pressgate/internal/platform/cache"
	"github.com/pressgate/pressgate/internal/platform/constants"
	"github.com/pressgate/pressgate/internal/platform/ctxutil"
	"github.com/pressgate/pressgate/internal/platform/httpx"
)

// Term is a resolved taxonomy term as the document API returns it.
type Term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Client executes GET requests against {base}/api/v2 and the backend's
// extension endpoints, with the same read-through tag caching as the
// query transport.
type Client struct {
	baseURL string
	http    *httpx.Client
	store   cache.Store
	ttl     time.Duration
}

// NewClient constructs a document transport. baseURL may be empty, in which
// case every call fails with [backend.ErrUnconfigured].
func NewClient(baseURL string, httpClient *httpx.Client, store cache.Store, ttl time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		store:   store,
		ttl:     ttl,
	}
}

// Configured reports whether a backend endpoint is available.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// FetchResource retrieves a single resource by id.
//
// The raw key->value form is preserved because the extras merger scans keys
// the gateway cannot know at build time.
func (c *Client) FetchResource(ctx context.Context, resourceType string, id int, tags []string) (map[string]json.RawMessage, error) {
	path := "/api/v2/" + resourceType + "/" + strconv.Itoa(id)

	var resource map[string]json.RawMessage
	if err := c.getJSON(ctx, path, &resource, tags); err != nil {
		return nil, err
	}
	return resource, nil
}

// FetchTerms resolves taxonomy term ids to terms via the include filter.
func (c *Client) FetchTerms(ctx context.Context, taxonomyKey string, ids []int, tags []string) ([]Term, error) {
	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, strconv.Itoa(id))
	}
	path := "/api/v2/" + taxonomyKey + "?include=" + url.QueryEscape(strings.Join(idStrings, ","))

	var terms []Term
	if err := c.getJSON(ctx, path, &terms, tags); err != nil {
		return nil, err
	}
	return terms, nil
}

// GetJSON retrieves an arbitrary backend path into target. It exists for
// extension endpoints (options pages) that live outside /api/v2.
func (c *Client) GetJSON(ctx context.Context, path string, target any, tags []string) error {
	return c.getJSON(ctx, path, target, tags)
}

func (c *Client) getJSON(ctx context.Context, path string, target any, tags []string) error {
	if !c.Configured() {
		return backend.ErrUnconfigured
	}

	endpoint := c.baseURL + path
	key := "doc:" + path

	if cached, ok := c.store.Get(ctx, key); ok {
		return json.Unmarshal(cached, target)
	}

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return err
	}

	if !httpx.Is2xx(resp) {
		resp.Body.Close()
		return &backend.TransportError{Status: resp.StatusCode, Endpoint: endpoint}
	}

	body, err := httpx.ReadBody(resp)
	if err != nil {
		return err
	}

	cacheTags := append([]string{constants.TagAllContent}, tags...)
	if err := c.store.Set(ctx, key, body, c.ttl, cacheTags...); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "document_cache_store_failed",
			slog.String("error", err.Error()),
		)
	}

	return json.Unmarshal(body, target)
}
