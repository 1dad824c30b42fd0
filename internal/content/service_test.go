// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package content_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressgate/pressgate/internal/backend/document"
	"github.com/pressgate/pressgate/internal/backend/graphql"
	"github.com/pressgate/pressgate/internal/content"
	"github.com/pressgate/pressgate/internal/platform/apperr"
	"github.com/pressgate/pressgate/internal/platform/cache"
	"github.com/pressgate/pressgate/internal/platform/httpx"
	"github.com/pressgate/pressgate/internal/schema"
)

// graphqlRequest is a captured query API call.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// fakeBackend serves both backend surfaces from one test server: the
// query API dispatches on operation name, the document API on path.
type fakeBackend struct {
	t *testing.T

	// graphql maps an operation name substring to the "data" payload.
	graphql map[string]string
	// documents maps a URL path to a raw JSON body.
	documents map[string]string
	// failTermPaths makes matching document paths answer 500.
	failTermPaths []string

	mu       sync.Mutex
	captured []graphqlRequest
}

func (f *fakeBackend) requests() []graphqlRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]graphqlRequest(nil), f.captured...)
}

func (f *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/graphql" {
			var req graphqlRequest
			require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
			f.mu.Lock()
			f.captured = append(f.captured, req)
			f.mu.Unlock()
			for op, data := range f.graphql {
				if strings.Contains(req.Query, op) {
					w.Header().Set("Content-Type", "application/json")
					w.Write([]byte(`{"data":` + data + `}`))
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			return
		}
		for _, p := range f.failTermPaths {
			if r.URL.Path == p {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		}
		if body, ok := f.documents[r.URL.Path]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestService(t *testing.T, backend *fakeBackend, countCap int) (*content.Service, *cache.Memory) {
	t.Helper()
	backend.t = t

	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	store := cache.NewMemory()
	httpClient := httpx.NewClient(&httpx.ClientConfig{
		Timeout:      time.Second,
		MaxRetries:   0,
		RetryBackoff: time.Millisecond,
	})
	gql := graphql.NewClient(server.URL, httpClient, store, time.Minute)
	doc := document.NewClient(server.URL, httpClient, store, time.Minute)

	return content.NewService(gql, doc, schema.NewRegistry(gql), countCap), store
}

func newUnconfiguredService(countCap int) (*content.Service, *cache.Memory) {
	store := cache.NewMemory()
	httpClient := httpx.NewClient(nil)
	gql := graphql.NewClient("", httpClient, store, time.Minute)
	doc := document.NewClient("", httpClient, store, time.Minute)
	return content.NewService(gql, doc, schema.NewRegistry(gql), countCap), store
}

const postNode = `{
	"databaseId": 42, "slug": "hello-world", "date": "2026-01-02T03:04:05",
	"status": "publish", "title": "Hello", "content": "<p>Hi</p>",
	"commentStatus": "open",
	"author": {"node": {"databaseId": 3}},
	"categories": {"nodes": [{"databaseId": 1}]}
}`

func TestPostsPage_Success(t *testing.T) {
	backend := &fakeBackend{graphql: map[string]string{
		"PostsPage":  `{"posts":{"pageInfo":{"hasNextPage":false,"endCursor":""},"nodes":[` + postNode + `,{"databaseId":43,"slug":"second"}]}}`,
		"PostsCount": `{"posts":{"nodes":[{"databaseId":42},{"databaseId":43},{"databaseId":44}]}}`,
	}}
	service, _ := newTestService(t, backend, 10000)

	result := service.PostsPage(context.Background(), 1, 9)

	require.Len(t, result.Items, 2)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.TotalPages)

	first := result.Items[0]
	assert.Equal(t, 42, first.ID)
	assert.Equal(t, "hello-world", first.Slug)
	assert.Equal(t, content.StatusPublish, first.Status)
	assert.Equal(t, "open", first.CommentStatus)
	assert.Equal(t, 3, first.Author)
	assert.Equal(t, []int{1}, first.Categories)

	// Missing fields on the second node take normalizer defaults.
	assert.Equal(t, "closed", result.Items[1].CommentStatus)
}

func TestPostsPage_SendsCursorForLaterPages(t *testing.T) {
	backend := &fakeBackend{graphql: map[string]string{
		"PostsPage":  `{"posts":{"nodes":[]}}`,
		"PostsCount": `{"posts":{"nodes":[]}}`,
	}}
	service, _ := newTestService(t, backend, 5000)

	service.PostsPage(context.Background(), 3, 9)

	requests := backend.requests()
	var pageReq, countReq *graphqlRequest
	for i := range requests {
		req := &requests[i]
		switch {
		case strings.Contains(req.Query, "PostsPage"):
			pageReq = req
		case strings.Contains(req.Query, "PostsCount"):
			countReq = req
		}
	}
	require.NotNil(t, pageReq)
	require.NotNil(t, countReq)

	assert.Equal(t, content.PageToCursor(3, 9), pageReq.Variables["after"])
	assert.Equal(t, float64(9), pageReq.Variables["first"])
	assert.Equal(t, float64(5000), countReq.Variables["cap"])
}

func TestPostsPage_FirstPageOmitsCursor(t *testing.T) {
	backend := &fakeBackend{graphql: map[string]string{
		"PostsPage":  `{"posts":{"nodes":[]}}`,
		"PostsCount": `{"posts":{"nodes":[]}}`,
	}}
	service, _ := newTestService(t, backend, 10000)

	service.PostsPage(context.Background(), 1, 9)

	for _, req := range backend.requests() {
		if strings.Contains(req.Query, "PostsPage") {
			_, present := req.Variables["after"]
			assert.False(t, present)
		}
	}
}

func TestPostsPage_DegradedBackendReturnsEmpty(t *testing.T) {
	// No registered operations: every query answers 404.
	service, _ := newTestService(t, &fakeBackend{}, 10000)

	result := service.PostsPage(context.Background(), 1, 9)

	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Zero(t, result.Total)
	assert.Zero(t, result.TotalPages)
}

func TestPostsPage_UnconfiguredMakesNoCalls(t *testing.T) {
	service, store := newUnconfiguredService(10000)

	result := service.PostsPage(context.Background(), 1, 9)

	assert.Empty(t, result.Items)
	assert.Zero(t, result.Total)
	assert.Zero(t, store.Len())
}

func TestPostByID_Strict(t *testing.T) {
	t.Run("unconfigured surfaces typed error", func(t *testing.T) {
		service, _ := newUnconfiguredService(10000)

		_, err := service.PostByID(context.Background(), 42)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
	})

	t.Run("null result is not found", func(t *testing.T) {
		backend := &fakeBackend{graphql: map[string]string{
			"PostByID": `{"post":null}`,
		}}
		service, _ := newTestService(t, backend, 10000)

		_, err := service.PostByID(context.Background(), 99)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
	})
}

func TestPostBySlug_MergesExtras(t *testing.T) {
	backend := &fakeBackend{
		graphql: map[string]string{
			"PostBySlug": `{"post":` + postNode + `}`,
		},
		documents: map[string]string{
			"/api/v2/posts/42": `{
				"id": 42, "slug": "hello-world", "status": "publish",
				"subtitle": "A closer look",
				"show_banner": false,
				"summary": "",
				"related_ids": [],
				"industry": [7, 9]
			}`,
			"/api/v2/industry": `[
				{"id": 7, "name": "Fintech", "slug": "fintech"},
				{"id": 9, "name": "Health", "slug": "health"}
			]`,
		},
	}
	service, _ := newTestService(t, backend, 10000)

	entity := service.PostBySlug(context.Background(), "hello-world")
	require.NotNil(t, entity)

	// Suppressed values and reserved keys never reach custom fields.
	assert.Equal(t, map[string]any{"subtitle": "A closer look"}, entity.CustomFields)

	require.Len(t, entity.Taxonomies, 1)
	taxonomy := entity.Taxonomies[0]
	assert.Equal(t, "industry", taxonomy.Taxonomy)
	assert.Equal(t, "industry", taxonomy.Label)
	require.Len(t, taxonomy.Terms, 2)
	assert.Equal(t, content.Term{ID: 7, Name: "Fintech", Slug: "fintech"}, taxonomy.Terms[0])
}

func TestPostBySlug_AllExtrasSuppressed(t *testing.T) {
	backend := &fakeBackend{
		graphql: map[string]string{
			"PostBySlug": `{"post":` + postNode + `}`,
		},
		documents: map[string]string{
			"/api/v2/posts/42": `{"id": 42, "note": "", "flag": false, "items": []}`,
		},
	}
	service, _ := newTestService(t, backend, 10000)

	entity := service.PostBySlug(context.Background(), "hello-world")
	require.NotNil(t, entity)

	assert.Nil(t, entity.CustomFields)
	assert.Nil(t, entity.Taxonomies)
}

func TestPostBySlug_TermFailureDropsOnlyThatTaxonomy(t *testing.T) {
	backend := &fakeBackend{
		graphql: map[string]string{
			"PostBySlug": `{"post":` + postNode + `}`,
		},
		documents: map[string]string{
			"/api/v2/posts/42": `{"id": 42, "subtitle": "kept", "industry": [7]}`,
		},
		failTermPaths: []string{"/api/v2/industry"},
	}
	service, _ := newTestService(t, backend, 10000)

	entity := service.PostBySlug(context.Background(), "hello-world")
	require.NotNil(t, entity)

	assert.Equal(t, map[string]any{"subtitle": "kept"}, entity.CustomFields)
	assert.Nil(t, entity.Taxonomies)
}

func TestPostBySlug_DocumentFailureKeepsEntity(t *testing.T) {
	backend := &fakeBackend{
		graphql: map[string]string{
			"PostBySlug": `{"post":` + postNode + `}`,
		},
	}
	service, _ := newTestService(t, backend, 10000)

	entity := service.PostBySlug(context.Background(), "hello-world")

	require.NotNil(t, entity)
	assert.Equal(t, 42, entity.ID)
	assert.Nil(t, entity.CustomFields)
}

func TestPostBySlug_NotFound(t *testing.T) {
	backend := &fakeBackend{graphql: map[string]string{
		"PostBySlug": `{"post":null}`,
	}}
	service, _ := newTestService(t, backend, 10000)

	assert.Nil(t, service.PostBySlug(context.Background(), "missing"))
}

func TestAllPostSlugs_WalksCursor(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		calls++
		if _, ok := req.Variables["after"]; !ok {
			w.Write([]byte(`{"data":{"posts":{"pageInfo":{"hasNextPage":true,"endCursor":"batch-1"},"nodes":[{"slug":"a"},{"slug":"b"}]}}}`))
			return
		}
		assert.Equal(t, "batch-1", req.Variables["after"])
		w.Write([]byte(`{"data":{"posts":{"pageInfo":{"hasNextPage":false,"endCursor":""},"nodes":[{"slug":"c"}]}}}`))
	}))
	t.Cleanup(server.Close)

	store := cache.NewMemory()
	httpClient := httpx.NewClient(&httpx.ClientConfig{Timeout: time.Second, RetryBackoff: time.Millisecond})
	gql := graphql.NewClient(server.URL, httpClient, store, time.Minute)
	doc := document.NewClient(server.URL, httpClient, store, time.Minute)
	service := content.NewService(gql, doc, schema.NewRegistry(gql), 10000)

	slugs := service.AllPostSlugs(context.Background())

	assert.Equal(t, []string{"a", "b", "c"}, slugs)
	assert.Equal(t, 2, calls)
}

func TestNodesPage_RejectsInvalidTypeName(t *testing.T) {
	backend := &fakeBackend{}
	service, _ := newTestService(t, backend, 10000)

	_, err := service.NodesPage(context.Background(), "Not A Type!", 1, 9)

	require.Error(t, err)
	assert.Empty(t, backend.requests())
}

func TestCategories_DegradedReturnsEmpty(t *testing.T) {
	service, _ := newTestService(t, &fakeBackend{}, 10000)

	terms := service.Categories(context.Background())

	assert.NotNil(t, terms)
	assert.Empty(t, terms)
}

func TestMediaByID(t *testing.T) {
	backend := &fakeBackend{graphql: map[string]string{
		"MediaByID": `{"mediaItem":{"databaseId":17,"slug":"photo","sourceUrl":"https://cdn.example.com/p.jpg","altText":"A photo","mimeType":"image/jpeg","mediaDetails":{"width":800,"height":600}}}`,
	}}
	service, _ := newTestService(t, backend, 10000)

	media := service.MediaByID(context.Background(), 17)

	require.NotNil(t, media)
	assert.Equal(t, 17, media.ID)
	assert.Equal(t, "https://cdn.example.com/p.jpg", media.URL)
	assert.Equal(t, 800, media.Width)
}
