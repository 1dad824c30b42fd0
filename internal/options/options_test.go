// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package options_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressgate/pressgate/internal/backend/document"
	"github.com/pressgate/pressgate/internal/options"
	"github.com/pressgate/pressgate/internal/platform/cache"
	"github.com/pressgate/pressgate/internal/platform/httpx"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*options.Service, *cache.Memory) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := cache.NewMemory()
	httpClient := httpx.NewClient(&httpx.ClientConfig{
		Timeout:      time.Second,
		RetryBackoff: time.Millisecond,
	})
	return options.NewService(document.NewClient(server.URL, httpClient, store, time.Minute)), store
}

func TestList_Success(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ext/v1/options-pages", r.URL.Path)
		w.Write([]byte(`[{"slug":"site-settings","page_title":"Site Settings","menu_title":"Settings","post_id":12},{"slug":"footer","page_title":"Footer"}]`))
	})

	pages := service.List(context.Background())

	require.Len(t, pages, 2)
	assert.Equal(t, options.Summary{Slug: "site-settings", PageTitle: "Site Settings", MenuTitle: "Settings", PostID: 12}, pages[0])
}

func TestList_DegradedReturnsEmpty(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	pages := service.List(context.Background())

	assert.NotNil(t, pages)
	assert.Empty(t, pages)
}

func TestBySlug_FiltersSuppressedFields(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ext/v1/options-pages/site-settings", r.URL.Path)
		w.Write([]byte(`{
			"slug": "site-settings", "page_title": "Site Settings",
			"acf": {
				"tagline": "Hello there",
				"show_banner": false,
				"footer_note": "",
				"socials": [],
				"menu": ["home", "about"]
			}
		}`))
	})

	page := service.BySlug(context.Background(), "site-settings")

	require.NotNil(t, page)
	assert.Equal(t, "site-settings", page.Slug)
	assert.Equal(t, map[string]any{
		"tagline": "Hello there",
		"menu":    []any{"home", "about"},
	}, page.Fields)
}

func TestBySlug_AllFieldsSuppressed(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"slug":"footer","page_title":"Footer","acf":{"note":"","flag":false}}`))
	})

	page := service.BySlug(context.Background(), "footer")

	require.NotNil(t, page)
	assert.Nil(t, page.Fields)
}

func TestBySlug_NotFound(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	assert.Nil(t, service.BySlug(context.Background(), "missing"))
}

func TestBySlug_Unconfigured(t *testing.T) {
	store := cache.NewMemory()
	service := options.NewService(document.NewClient("", httpx.NewClient(nil), store, time.Minute))

	assert.Nil(t, service.BySlug(context.Background(), "site-settings"))
	assert.Empty(t, service.List(context.Background()))
	assert.Zero(t, store.Len())
}

func TestBySlug_CachesUnderPageTag(t *testing.T) {
	var calls int
	service, store := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"slug":"footer","page_title":"Footer","acf":{"note":"hi"}}`))
	})

	ctx := context.Background()
	require.NotNil(t, service.BySlug(ctx, "footer"))
	require.NotNil(t, service.BySlug(ctx, "footer"))
	assert.Equal(t, 1, calls)

	require.NoError(t, store.InvalidateTags(ctx, "options-page-footer"))
	require.NotNil(t, service.BySlug(ctx, "footer"))
	assert.Equal(t, 2, calls)
}
