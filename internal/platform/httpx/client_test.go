// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package httpx_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressgate/pressgate/internal/platform/httpx"
)

func testClient(maxRetries int) *httpx.Client {
	return httpx.NewClient(&httpx.ClientConfig{
		Timeout:      time.Second,
		MaxRetries:   maxRetries,
		RetryBackoff: time.Millisecond,
		UserAgent:    "pressgate-test",
	})
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := testClient(2).Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resp, err := testClient(2).Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ReplaysPostBodyOnRetry(t *testing.T) {
	var calls atomic.Int32
	bodies := make(chan string, 4)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies <- string(body)
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := testClient(2).Post(context.Background(), server.URL, "application/json", strings.NewReader(`{"q":1}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"q":1}`, <-bodies)
	assert.Equal(t, `{"q":1}`, <-bodies)
}

func TestIsRetryableStatusCode(t *testing.T) {
	assert.True(t, httpx.IsRetryableStatusCode(http.StatusTooManyRequests))
	assert.True(t, httpx.IsRetryableStatusCode(http.StatusBadGateway))
	assert.False(t, httpx.IsRetryableStatusCode(http.StatusOK))
	assert.False(t, httpx.IsRetryableStatusCode(http.StatusBadRequest))
	assert.False(t, httpx.IsRetryableStatusCode(http.StatusUnauthorized))
}
