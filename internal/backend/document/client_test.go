// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package document_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressgate/pressgate/internal/backend"
	"github.com/pressgate/pressgate/internal/backend/document"
	"github.com/pressgate/pressgate/internal/platform/cache"
	"github.com/pressgate/pressgate/internal/platform/httpx"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*document.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient := httpx.NewClient(&httpx.ClientConfig{
		Timeout:      time.Second,
		MaxRetries:   0,
		RetryBackoff: time.Millisecond,
	})

	return document.NewClient(server.URL, httpClient, cache.NewMemory(), time.Minute), server
}

func TestFetchResource(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/posts/42", r.URL.Path)
		w.Write([]byte(`{"id":42,"slug":"hello","subtitle":"custom value"}`))
	})

	resource, err := client.FetchResource(context.Background(), "posts", 42, []string{"post-42"})
	require.NoError(t, err)

	assert.Contains(t, resource, "subtitle")
	assert.JSONEq(t, `"custom value"`, string(resource["subtitle"]))
}

func TestFetchTerms(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/flags", r.URL.Path)
		assert.Equal(t, "1,2,3", r.URL.Query().Get("include"))
		w.Write([]byte(`[{"id":1,"name":"Featured","slug":"featured"},{"id":2,"name":"Pinned","slug":"pinned"}]`))
	})

	terms, err := client.FetchTerms(context.Background(), "flags", []int{1, 2, 3}, nil)
	require.NoError(t, err)

	require.Len(t, terms, 2)
	assert.Equal(t, document.Term{ID: 1, Name: "Featured", Slug: "featured"}, terms[0])
}

func TestGetJSON_CachesResponses(t *testing.T) {
	var calls atomic.Int32

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"ok":true}`))
	})

	ctx := context.Background()
	var first, second map[string]any

	require.NoError(t, client.GetJSON(ctx, "/api/ext/v1/options-pages", &first, nil))
	require.NoError(t, client.GetJSON(ctx, "/api/ext/v1/options-pages", &second, nil))

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first, second)
}

func TestFetchResource_TransportError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchResource(context.Background(), "posts", 9999, nil)

	var transportErr *backend.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusNotFound, transportErr.Status)
}

func TestFetchResource_Unconfigured(t *testing.T) {
	client := document.NewClient("", httpx.NewClient(nil), cache.NewMemory(), time.Minute)

	_, err := client.FetchResource(context.Background(), "posts", 1, nil)
	assert.ErrorIs(t, err, backend.ErrUnconfigured)
}
