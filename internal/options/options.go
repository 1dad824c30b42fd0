// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

/*
Package options serves globally-shared content blobs (site settings,
footers, navigation data) exposed by the backend as options pages.

Options pages live outside the regular content collections: they are
fetched from the document API's extension namespace and cached under
their own tag vocabulary.
*/
package options

import (
	"context"
	"errors"
	"net/url"

	"github.com/pressgate/pressgate/internal/backend"
	"github.com/pressgate/pressgate/internal/backend/document"
	"github.com/pressgate/pressgate/internal/platform/ctxutil"
)

const basePath = "/api/ext/v1/options-pages"

// Summary identifies an options page in listings, mirroring the
// backend plugin's registration metadata.
type Summary struct {
	Slug        string `json:"slug"`
	PageTitle   string `json:"page_title"`
	MenuTitle   string `json:"menu_title,omitempty"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"icon_url,omitempty"`
	ParentSlug  string `json:"parent_slug,omitempty"`
	PostID      int    `json:"post_id,omitempty"`
}

// Page is one options page with its field group. Fields is either
// absent or non-empty; suppressed values never appear.
type Page struct {
	Summary
	Fields map[string]any `json:"fields,omitempty"`
}

type rawPage struct {
	Summary
	Fields map[string]any `json:"acf"`
}

// Service reads options pages through the shared response cache.
type Service struct {
	doc *document.Client
}

func NewService(doc *document.Client) *Service {
	return &Service{doc: doc}
}

// List returns every options page summary. Failures degrade to an
// empty list.
func (s *Service) List(ctx context.Context) []Summary {
	var summaries []Summary
	err := s.doc.GetJSON(ctx, basePath, &summaries, []string{"options-pages"})
	if err != nil {
		if !errors.Is(err, backend.ErrUnconfigured) {
			ctxutil.GetLogger(ctx).Warn("options page list degraded to empty result", "error", err)
		}
		return []Summary{}
	}
	if summaries == nil {
		summaries = []Summary{}
	}
	return summaries
}

// BySlug returns one options page with suppressed field values removed.
// A nil result means not found or degraded backend.
func (s *Service) BySlug(ctx context.Context, slug string) *Page {
	var raw rawPage
	tags := []string{"options-pages", "options-page-" + slug}
	err := s.doc.GetJSON(ctx, basePath+"/"+url.PathEscape(slug), &raw, tags)
	if err != nil {
		var transportErr *backend.TransportError
		if !errors.Is(err, backend.ErrUnconfigured) &&
			!(errors.As(err, &transportErr) && transportErr.Status == 404) {
			ctxutil.GetLogger(ctx).Warn("options page lookup degraded to not found",
				"slug", slug, "error", err)
		}
		return nil
	}

	page := &Page{Summary: raw.Summary}
	if page.Slug == "" {
		page.Slug = slug
	}
	fields := map[string]any{}
	for key, value := range raw.Fields {
		if suppressed(value) {
			continue
		}
		fields[key] = value
	}
	if len(fields) > 0 {
		page.Fields = fields
	}
	return page
}

// suppressed mirrors the custom-field filter of single content views:
// false, null, empty string, and empty list values are dropped.
func suppressed(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	}
	return false
}
