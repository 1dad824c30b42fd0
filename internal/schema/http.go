// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package schema

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pressgate/pressgate/internal/platform/respond"
)

// Handler exposes the discovered schema to renderers, so route
// generation can enumerate custom content types without its own
// backend credentials.
type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/content-types", h.listTypes)
	router.Get("/taxonomies", h.listTaxonomies)
	return router
}

func (h *Handler) listTypes(writer http.ResponseWriter, httpRequest *http.Request) {
	types := h.registry.ContentTypes(httpRequest.Context())
	if types == nil {
		types = []ContentType{}
	}
	respond.OK(writer, types)
}

func (h *Handler) listTaxonomies(writer http.ResponseWriter, httpRequest *http.Request) {
	taxonomies := h.registry.Taxonomies(httpRequest.Context())
	if taxonomies == nil {
		taxonomies = []Taxonomy{}
	}
	respond.OK(writer, taxonomies)
}
