// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

/*
Package schema discovers the backend's content model at runtime.

The backend can register content types and taxonomies the gateway does not
know at build time. This package queries for them once, filters out the
platform's built-ins, and hands the result around as an injected [Registry]
snapshot — never as ambient global state.

Lifecycle: discovered lists are treated as immutable for the process
lifetime. There is no in-process invalidation path for schema changes; a
registered-type change requires a restart (the webhook evicts the cached
discovery response, so the restart sees fresh data).
*/
package schema

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/pressgate/pressgate/internal/backend/graphql"
	"github.com/pressgate/pressgate/internal/platform/apperr"
	"github.com/pressgate/pressgate/internal/platform/constants"
	"github.com/pressgate/pressgate/internal/platform/ctxutil"
	"github.com/pressgate/pressgate/internal/platform/validate"
)

// ContentType describes a backend content type.
type ContentType struct {
	// Name is the backend machine key (lowercase alphanumeric/hyphen/underscore).
	Name string `json:"name"`
	// Label is the human-readable name.
	Label       string `json:"label"`
	Description string `json:"description"`
	// SingularQueryName and PluralQueryName are the query-API field names.
	SingularQueryName string `json:"singular_query_name"`
	PluralQueryName   string `json:"plural_query_name"`
	HasArchive        bool   `json:"has_archive"`
	// RestBase is the document-API path segment for this type.
	RestBase string `json:"rest_base"`
}

// Taxonomy describes a backend taxonomy and the content types it applies to.
type Taxonomy struct {
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	ContentTypes []string `json:"content_types"`
}

// builtinContentTypes are the platform's own types, excluded from discovery.
var builtinContentTypes = map[string]struct{}{
	"post":             {},
	"page":             {},
	"attachment":       {},
	"revision":         {},
	"nav_menu_item":    {},
	"wp_block":         {},
	"wp_template":      {},
	"wp_template_part": {},
	"wp_navigation":    {},
	"wp_font_family":   {},
	"wp_font_face":     {},
	"wp_global_styles": {},
}

// builtinTaxonomies are the platform's own taxonomies, excluded from discovery.
var builtinTaxonomies = map[string]struct{}{
	"category":              {},
	"post_tag":              {},
	"post_format":           {},
	"nav_menu":              {},
	"link_category":         {},
	"wp_theme":              {},
	"wp_template_part_area": {},
	"wp_pattern_category":   {},
}

const contentTypesQuery = `
query ContentTypes {
  contentTypes(first: 100) {
    nodes {
      name
      label
      description
      graphqlSingleName
      graphqlPluralName
      hasArchive
      restBase
    }
  }
}`

const taxonomiesQuery = `
query Taxonomies {
  taxonomies(first: 100) {
    nodes {
      name
      label
      connectedContentTypes {
        nodes {
          name
        }
      }
    }
  }
}`

// Registry holds the discovered schema.
//
// # Population Semantics
//
// Each list is populated lazily by the first caller to need it, and only a
// successful discovery is memoized — a failed attempt leaves the registry
// empty so a later caller retries. Concurrent first-callers may race to
// populate, but they compute the same value, so last-write-wins is harmless.
type Registry struct {
	gql *graphql.Client

	mu         sync.RWMutex
	types      []ContentType
	typesSet   bool
	taxonomies []Taxonomy
	taxSet     bool
	labels     map[string]string
}

// NewRegistry creates an empty registry backed by the query transport.
func NewRegistry(gql *graphql.Client) *Registry {
	return &Registry{gql: gql}
}

// ContentTypes returns the custom content types registered in the backend,
// excluding built-ins. The first successful call is cached for the process
// lifetime; failures degrade to an empty list.
func (r *Registry) ContentTypes(ctx context.Context) []ContentType {
	r.mu.RLock()
	if r.typesSet {
		types := r.types
		r.mu.RUnlock()
		return types
	}
	r.mu.RUnlock()

	types, ok := r.discoverContentTypes(ctx)
	if !ok {
		return nil
	}

	r.mu.Lock()
	r.types = types
	r.typesSet = true
	r.mu.Unlock()

	return types
}

// Taxonomies returns the custom taxonomies registered in the backend,
// excluding built-ins, with the same memoization as [Registry.ContentTypes].
func (r *Registry) Taxonomies(ctx context.Context) []Taxonomy {
	r.mu.RLock()
	if r.taxSet {
		taxonomies := r.taxonomies
		r.mu.RUnlock()
		return taxonomies
	}
	r.mu.RUnlock()

	taxonomies, ok := r.discoverTaxonomies(ctx)
	if !ok {
		return nil
	}

	labels := make(map[string]string, len(taxonomies))
	for _, taxonomy := range taxonomies {
		labels[taxonomy.Name] = taxonomy.Label
	}

	r.mu.Lock()
	r.taxonomies = taxonomies
	r.taxSet = true
	r.labels = labels
	r.mu.Unlock()

	return taxonomies
}

// TaxonomyLabel resolves a taxonomy machine key to its display label.
// Returns "" when the taxonomy is unknown; callers fall back to the raw key.
func (r *Registry) TaxonomyLabel(ctx context.Context, name string) string {
	r.mu.RLock()
	populated := r.taxSet
	label := r.labels[name]
	r.mu.RUnlock()

	if populated {
		return label
	}

	// Build the label map on first use.
	r.Taxonomies(ctx)

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.labels[name]
}

// TypeByName finds a discovered custom content type by machine key.
func (r *Registry) TypeByName(ctx context.Context, name string) (ContentType, bool) {
	for _, contentType := range r.ContentTypes(ctx) {
		if contentType.Name == name {
			return contentType, true
		}
	}
	return ContentType{}, false
}

// TypeEnum converts a content-type machine key to the query API's enum value.
//
// # Validation
//
// The input must match the machine-key pattern; this is a caller-misuse
// guard, never triggered by backend data. The transform replaces hyphens
// with underscores and upper-cases.
func TypeEnum(name string) (string, error) {
	if !validate.ContentTypeName(name) {
		return "", apperr.ValidationError("Invalid content type name",
			apperr.FieldError{Field: "contentType", Message: "Must be lowercase, start with a letter, max 50 chars"},
		)
	}
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_")), nil
}

// IsBuiltinContentType reports whether name is one of the platform's own types.
func IsBuiltinContentType(name string) bool {
	_, ok := builtinContentTypes[name]
	return ok
}

// # Discovery Calls

type contentTypesPayload struct {
	ContentTypes struct {
		Nodes []struct {
			Name              string `json:"name"`
			Label             string `json:"label"`
			Description       string `json:"description"`
			GraphqlSingleName string `json:"graphqlSingleName"`
			GraphqlPluralName string `json:"graphqlPluralName"`
			HasArchive        bool   `json:"hasArchive"`
			RestBase          string `json:"restBase"`
		} `json:"nodes"`
	} `json:"contentTypes"`
}

func (r *Registry) discoverContentTypes(ctx context.Context) ([]ContentType, bool) {
	data, err := r.gql.Execute(ctx, contentTypesQuery, nil, []string{constants.TagContentTypes})
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "schema_discovery_degraded",
			slog.String("what", "content_types"),
			slog.String("error", err.Error()),
		)
		return nil, false
	}

	var payload contentTypesPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "schema_discovery_degraded",
			slog.String("what", "content_types"),
			slog.String("error", err.Error()),
		)
		return nil, false
	}

	types := make([]ContentType, 0, len(payload.ContentTypes.Nodes))
	for _, node := range payload.ContentTypes.Nodes {
		if IsBuiltinContentType(node.Name) {
			continue
		}
		types = append(types, ContentType{
			Name:              node.Name,
			Label:             node.Label,
			Description:       node.Description,
			SingularQueryName: node.GraphqlSingleName,
			PluralQueryName:   node.GraphqlPluralName,
			HasArchive:        node.HasArchive,
			RestBase:          node.RestBase,
		})
	}

	return types, true
}

type taxonomiesPayload struct {
	Taxonomies struct {
		Nodes []struct {
			Name                  string `json:"name"`
			Label                 string `json:"label"`
			ConnectedContentTypes struct {
				Nodes []struct {
					Name string `json:"name"`
				} `json:"nodes"`
			} `json:"connectedContentTypes"`
		} `json:"nodes"`
	} `json:"taxonomies"`
}

func (r *Registry) discoverTaxonomies(ctx context.Context) ([]Taxonomy, bool) {
	data, err := r.gql.Execute(ctx, taxonomiesQuery, nil, []string{constants.TagContentTypes})
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "schema_discovery_degraded",
			slog.String("what", "taxonomies"),
			slog.String("error", err.Error()),
		)
		return nil, false
	}

	var payload taxonomiesPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "schema_discovery_degraded",
			slog.String("what", "taxonomies"),
			slog.String("error", err.Error()),
		)
		return nil, false
	}

	taxonomies := make([]Taxonomy, 0, len(payload.Taxonomies.Nodes))
	for _, node := range payload.Taxonomies.Nodes {
		if _, builtin := builtinTaxonomies[node.Name]; builtin {
			continue
		}

		contentTypes := make([]string, 0, len(node.ConnectedContentTypes.Nodes))
		for _, connected := range node.ConnectedContentTypes.Nodes {
			contentTypes = append(contentTypes, connected.Name)
		}

		taxonomies = append(taxonomies, Taxonomy{
			Name:         node.Name,
			Label:        node.Label,
			ContentTypes: contentTypes,
		})
	}

	return taxonomies, true
}
