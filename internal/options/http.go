// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package options

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pressgate/pressgate/internal/platform/apperr"
	"github.com/pressgate/pressgate/internal/platform/request"
	"github.com/pressgate/pressgate/internal/platform/respond"
)

// Handler exposes the options page endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", h.list)
	router.Get("/{slug}", h.getBySlug)
	return router
}

func (h *Handler) list(writer http.ResponseWriter, httpRequest *http.Request) {
	respond.OK(writer, h.service.List(httpRequest.Context()))
}

func (h *Handler) getBySlug(writer http.ResponseWriter, httpRequest *http.Request) {
	page := h.service.BySlug(httpRequest.Context(), requestutil.Param(httpRequest, "slug"))
	if page == nil {
		respond.Error(writer, httpRequest, apperr.NotFound("options page"))
		return
	}
	respond.OK(writer, page)
}
