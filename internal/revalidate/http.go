// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

/*
Package revalidate implements the cache invalidation webhook.

The CMS calls it on every content change. Each call passes through a
fixed pipeline: rate limiting first (before any credential work), then
authentication over the raw body, then payload validation, then tag
mapping and eviction. The response body always carries a revalidated
flag so the CMS plugin can log the outcome without parsing errors.
*/
package revalidate

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/pressgate/pressgate/internal/platform/cache"
	"github.com/pressgate/pressgate/internal/platform/constants"
	"github.com/pressgate/pressgate/internal/platform/ctxutil"
	"github.com/pressgate/pressgate/internal/platform/validate"
)

const maxBodyBytes = 1 << 20

// payload is the change event the CMS posts.
type payload struct {
	ContentType string    `json:"contentType"`
	ContentID   contentID `json:"contentId"`
}

// contentID accepts both JSON strings and numbers: standard entities
// report numeric ids, options pages report slugs.
type contentID string

func (c *contentID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*c = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = contentID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("contentId must be a string or a number")
	}
	*c = contentID(n.String())
	return nil
}

type result struct {
	Revalidated bool   `json:"revalidated"`
	Message     string `json:"message"`
	Timestamp   int64  `json:"timestamp,omitempty"`
}

// Handler processes webhook calls and evicts the mapped cache tags.
type Handler struct {
	store   cache.Store
	limiter *Limiter
	secret  string

	now func() time.Time
}

func NewHandler(store cache.Store, secret string, limit int) *Handler {
	return &Handler{
		store:   store,
		limiter: NewLimiter(limit, constants.WebhookRateWindow),
		secret:  secret,
		now:     time.Now,
	}
}

func (h *Handler) ServeHTTP(writer http.ResponseWriter, httpRequest *http.Request) {
	logger := ctxutil.GetLogger(httpRequest.Context())

	// 1. Rate limit before touching credentials: an attacker probing
	// signatures burns the window like everyone else.
	if !h.limiter.Allow() {
		writer.Header().Set(constants.HeaderRetryAfter, "60")
		writeResult(writer, http.StatusTooManyRequests, result{Message: "rate limit exceeded"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(httpRequest.Body, maxBodyBytes))
	if err != nil {
		writeResult(writer, http.StatusBadRequest, result{Message: "failed to read request body"})
		return
	}

	// 2. A missing secret is a deployment fault, not a caller fault.
	if h.secret == "" {
		logger.Error("revalidation rejected: webhook secret is not configured")
		writeResult(writer, http.StatusInternalServerError, result{Message: "webhook secret is not configured"})
		return
	}

	signature := httpRequest.Header.Get(constants.HeaderWebhookSignature)
	legacySecret := httpRequest.Header.Get(constants.HeaderWebhookSecret)
	if !authenticate(h.secret, signature, legacySecret, body) {
		logger.Warn("revalidation rejected: invalid credentials")
		writeResult(writer, http.StatusUnauthorized, result{Message: "invalid webhook credentials"})
		return
	}

	// 3. Validate the event only after the caller is trusted.
	var event payload
	if err := json.Unmarshal(body, &event); err != nil {
		writeResult(writer, http.StatusBadRequest, result{Message: "invalid payload"})
		return
	}
	if !validate.WebhookContentType(event.ContentType) {
		writeResult(writer, http.StatusBadRequest, result{Message: "invalid contentType"})
		return
	}

	tags := tagsForEvent(event.ContentType, string(event.ContentID))
	if err := h.store.InvalidateTags(httpRequest.Context(), tags...); err != nil {
		logger.Error("revalidation eviction failed", "error", err)
		writeResult(writer, http.StatusInternalServerError, result{Message: "cache eviction failed"})
		return
	}

	sort.Strings(tags)
	logger.Info("cache revalidated",
		"content_type", event.ContentType,
		"content_id", string(event.ContentID),
		"tags", tags,
	)
	writeResult(writer, http.StatusOK, result{
		Revalidated: true,
		Message:     "revalidated tags: " + strings.Join(tags, ", "),
		Timestamp:   h.now().UnixMilli(),
	})
}

func writeResult(writer http.ResponseWriter, statusCode int, body result) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(body)
}
