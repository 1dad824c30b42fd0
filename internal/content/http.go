// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pressgate/pressgate/internal/platform/apperr"
	"github.com/pressgate/pressgate/internal/platform/request"
	"github.com/pressgate/pressgate/internal/platform/respond"
	"github.com/pressgate/pressgate/pkg/convert"
	"github.com/pressgate/pressgate/pkg/pagination"
)

// Handler exposes the content read API.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the content endpoints on a fresh router.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/posts", h.listPosts)
	router.Get("/posts/slugs", h.listPostSlugs)
	router.Get("/posts/id/{id}", h.getPostByID)
	router.Get("/posts/{slug}", h.getPostBySlug)

	router.Get("/pages", h.listPages)
	router.Get("/pages/slugs", h.listPageSlugs)
	router.Get("/pages/{slug}", h.getPageBySlug)

	router.Get("/categories", h.listCategories)
	router.Get("/tags", h.listTags)
	router.Get("/media/{id}", h.getMedia)
	router.Get("/authors/{id}", h.getAuthor)

	router.Get("/content/{type}", h.listNodes)
	router.Get("/content/{type}/slugs", h.listNodeSlugs)
	router.Get("/content/{type}/{slug}", h.getNodeBySlug)

	return router
}

func (h *Handler) listPosts(writer http.ResponseWriter, httpRequest *http.Request) {
	params := pagination.FromRequest(httpRequest)
	result := h.service.PostsPage(httpRequest.Context(), params.Page, params.Limit)
	respond.Paginated(writer, result.Items, pagination.NewMeta(params.Page, params.Limit, result.Total))
}

func (h *Handler) listPages(writer http.ResponseWriter, httpRequest *http.Request) {
	params := pagination.FromRequest(httpRequest)
	result := h.service.PagesPage(httpRequest.Context(), params.Page, params.Limit)
	respond.Paginated(writer, result.Items, pagination.NewMeta(params.Page, params.Limit, result.Total))
}

func (h *Handler) listNodes(writer http.ResponseWriter, httpRequest *http.Request) {
	params := pagination.FromRequest(httpRequest)
	typeName := requestutil.Param(httpRequest, "type")
	result, err := h.service.NodesPage(httpRequest.Context(), typeName, params.Page, params.Limit)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	respond.Paginated(writer, result.Items, pagination.NewMeta(params.Page, params.Limit, result.Total))
}

func (h *Handler) getPostBySlug(writer http.ResponseWriter, httpRequest *http.Request) {
	entity := h.service.PostBySlug(httpRequest.Context(), requestutil.Param(httpRequest, "slug"))
	if entity == nil {
		respond.Error(writer, httpRequest, apperr.NotFound("post"))
		return
	}
	respond.OK(writer, entity)
}

func (h *Handler) getPageBySlug(writer http.ResponseWriter, httpRequest *http.Request) {
	entity := h.service.PageBySlug(httpRequest.Context(), requestutil.Param(httpRequest, "slug"))
	if entity == nil {
		respond.Error(writer, httpRequest, apperr.NotFound("page"))
		return
	}
	respond.OK(writer, entity)
}

func (h *Handler) getNodeBySlug(writer http.ResponseWriter, httpRequest *http.Request) {
	typeName := requestutil.Param(httpRequest, "type")
	entity, err := h.service.NodeBySlug(httpRequest.Context(), typeName, requestutil.Param(httpRequest, "slug"))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	if entity == nil {
		respond.Error(writer, httpRequest, apperr.NotFound(typeName))
		return
	}
	respond.OK(writer, entity)
}

func (h *Handler) getPostByID(writer http.ResponseWriter, httpRequest *http.Request) {
	id := convert.ToInt(requestutil.Param(httpRequest, "id"))
	if id <= 0 {
		respond.Error(writer, httpRequest, apperr.ValidationError("id must be a positive integer"))
		return
	}
	entity, err := h.service.PostByID(httpRequest.Context(), id)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	respond.OK(writer, entity)
}

func (h *Handler) listPostSlugs(writer http.ResponseWriter, httpRequest *http.Request) {
	respond.OK(writer, h.service.AllPostSlugs(httpRequest.Context()))
}

func (h *Handler) listPageSlugs(writer http.ResponseWriter, httpRequest *http.Request) {
	respond.OK(writer, h.service.AllPageSlugs(httpRequest.Context()))
}

func (h *Handler) listNodeSlugs(writer http.ResponseWriter, httpRequest *http.Request) {
	slugs, err := h.service.AllSlugsForType(httpRequest.Context(), requestutil.Param(httpRequest, "type"))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	respond.OK(writer, slugs)
}

func (h *Handler) listCategories(writer http.ResponseWriter, httpRequest *http.Request) {
	respond.OK(writer, h.service.Categories(httpRequest.Context()))
}

func (h *Handler) listTags(writer http.ResponseWriter, httpRequest *http.Request) {
	respond.OK(writer, h.service.TagsList(httpRequest.Context()))
}

func (h *Handler) getMedia(writer http.ResponseWriter, httpRequest *http.Request) {
	id := convert.ToInt(requestutil.Param(httpRequest, "id"))
	if id <= 0 {
		respond.Error(writer, httpRequest, apperr.ValidationError("id must be a positive integer"))
		return
	}
	media := h.service.MediaByID(httpRequest.Context(), id)
	if media == nil {
		respond.Error(writer, httpRequest, apperr.NotFound("media"))
		return
	}
	respond.OK(writer, media)
}

func (h *Handler) getAuthor(writer http.ResponseWriter, httpRequest *http.Request) {
	id := convert.ToInt(requestutil.Param(httpRequest, "id"))
	if id <= 0 {
		respond.Error(writer, httpRequest, apperr.ValidationError("id must be a positive integer"))
		return
	}
	author := h.service.AuthorByID(httpRequest.Context(), id)
	if author == nil {
		respond.Error(writer, httpRequest, apperr.NotFound("author"))
		return
	}
	respond.OK(writer, author)
}
