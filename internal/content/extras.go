// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package content

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/pressgate/pressgate/internal/platform/ctxutil"
	"github.com/pressgate/pressgate/internal/platform/validate"
)

// reservedDocumentKeys are the standard document-API fields: everything
// else on a resource is treated as a custom field or a taxonomy
// assignment candidate.
var reservedDocumentKeys = map[string]struct{}{
	"id":                 {},
	"date":               {},
	"date_gmt":           {},
	"guid":               {},
	"modified":           {},
	"modified_gmt":       {},
	"slug":               {},
	"status":             {},
	"type":               {},
	"link":               {},
	"title":              {},
	"content":            {},
	"excerpt":            {},
	"author":             {},
	"featured_media":     {},
	"comment_status":     {},
	"ping_status":        {},
	"sticky":             {},
	"template":           {},
	"format":             {},
	"meta":               {},
	"categories":         {},
	"tags":               {},
	"permalink_template": {},
	"generated_slug":     {},
	"class_list":         {},
	"_links":             {},
	"_embedded":          {},
}

// mergeExtras enriches a single-item view with document-API data: custom
// fields and dynamically-discovered taxonomy assignments. The merge is
// strictly best-effort. A failed resource fetch leaves the entity as-is,
// and a failed term resolution drops only that taxonomy.
func (s *Service) mergeExtras(ctx context.Context, typeName string, entity *Entity, tags []string) {
	if entity == nil || entity.ID == 0 {
		return
	}
	fields, err := s.doc.FetchResource(ctx, s.documentPath(ctx, typeName), entity.ID, tags)
	if err != nil {
		ctxutil.GetLogger(ctx).Warn("extras merge skipped",
			"type", typeName, "id", entity.ID, "error", err)
		return
	}

	custom := map[string]any{}
	var assignments []TaxonomyAssignment
	for key, raw := range fields {
		if _, reserved := reservedDocumentKeys[key]; reserved {
			continue
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			continue
		}
		if suppressed(value) {
			continue
		}
		if ids, ok := taxonomyIDs(key, value); ok {
			if assignment, ok := s.resolveTaxonomy(ctx, key, ids, tags); ok {
				assignments = append(assignments, assignment)
			}
			continue
		}
		custom[key] = value
	}

	// Map iteration order is random; keep the output stable.
	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].Taxonomy < assignments[j].Taxonomy
	})
	if len(custom) > 0 {
		entity.CustomFields = custom
	}
	if len(assignments) > 0 {
		entity.Taxonomies = assignments
	}
}

// documentPath maps a content type name to its document-API collection
// path: the registry's rest base for discovered types, the conventional
// plural for built-ins, the name itself otherwise.
func (s *Service) documentPath(ctx context.Context, typeName string) string {
	if ct, ok := s.registry.TypeByName(ctx, typeName); ok && ct.RestBase != "" {
		return ct.RestBase
	}
	switch typeName {
	case "post":
		return "posts"
	case "page":
		return "pages"
	case "attachment":
		return "media"
	}
	return typeName
}

// suppressed reports whether a custom field value is dropped from the
// merge: false, null, empty string, or empty list.
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

// taxonomyIDs applies the assignment heuristic: a non-reserved key that
// looks like a taxonomy machine name, holding a non-empty list of
// numbers, is read as a list of term ids. Anything else stays a plain
// custom field.
func taxonomyIDs(key string, value any) ([]int, bool) {
	if !validate.ContentTypeName(key) {
		return nil, false
	}
	list, ok := value.([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}
	ids := make([]int, 0, len(list))
	for _, el := range list {
		n, ok := el.(float64)
		if !ok {
			return nil, false
		}
		ids = append(ids, int(n))
	}
	return ids, true
}

func (s *Service) resolveTaxonomy(ctx context.Context, key string, ids []int, tags []string) (TaxonomyAssignment, bool) {
	docTerms, err := s.doc.FetchTerms(ctx, key, ids, tags)
	if err != nil {
		ctxutil.GetLogger(ctx).Warn("taxonomy term resolution failed",
			"taxonomy", key, "error", err)
		return TaxonomyAssignment{}, false
	}
	if len(docTerms) == 0 {
		return TaxonomyAssignment{}, false
	}
	terms := make([]Term, 0, len(docTerms))
	for _, t := range docTerms {
		terms = append(terms, Term{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	label := s.registry.TaxonomyLabel(ctx, key)
	if label == "" {
		label = key
	}
	return TaxonomyAssignment{Taxonomy: key, Label: label, Terms: terms}, true
}
