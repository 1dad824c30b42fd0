// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pressgate/pressgate/internal/backend"
	"github.com/pressgate/pressgate/internal/backend/document"
	"github.com/pressgate/pressgate/internal/backend/graphql"
	"github.com/pressgate/pressgate/internal/platform/apperr"
	"github.com/pressgate/pressgate/internal/platform/ctxutil"
	"github.com/pressgate/pressgate/internal/schema"
)

// slugWalkPageSize is the batch size used when walking a full slug list.
const slugWalkPageSize = 100

// Service is the read-side content API: it executes backend queries,
// normalizes responses, translates pagination, and merges document-API
// extras into single-item views.
//
// List and slug operations degrade gracefully: on any backend failure
// they log and return an empty result. Lookups by id are strict and
// surface a typed error instead.
type Service struct {
	gql      *graphql.Client
	doc      *document.Client
	registry *schema.Registry
	countCap int
}

func NewService(gql *graphql.Client, doc *document.Client, registry *schema.Registry, countCap int) *Service {
	return &Service{gql: gql, doc: doc, registry: registry, countCap: countCap}
}

// # Listing

// PostsPage returns one page of published posts with collection totals.
func (s *Service) PostsPage(ctx context.Context, page, pageSize int) Paginated[Entity] {
	return s.listPage(ctx, collectionQueries{
		page:  postsPageQuery,
		count: postsCountQuery,
		root:  "posts",
	}, nil, page, pageSize, listTags("posts", page))
}

// PagesPage returns one page of published pages with collection totals.
func (s *Service) PagesPage(ctx context.Context, page, pageSize int) Paginated[Entity] {
	return s.listPage(ctx, collectionQueries{
		page:  pagesPageQuery,
		count: pagesCountQuery,
		root:  "pages",
	}, nil, page, pageSize, listTags("pages", page))
}

// NodesPage returns one page of a custom content type. The type name is
// validated before any backend call; an unknown or malformed name is a
// caller error, not a degraded backend.
func (s *Service) NodesPage(ctx context.Context, typeName string, page, pageSize int) (Paginated[Entity], error) {
	enum, err := schema.TypeEnum(typeName)
	if err != nil {
		return EmptyPaginated[Entity](), err
	}
	collection := cptCollection(typeName)
	result := s.listPage(ctx, collectionQueries{
		page:  nodesPageQuery,
		count: nodesCountQuery,
		root:  "contentNodes",
	}, map[string]any{"type": []string{enum}}, page, pageSize, listTags(collection, page))
	return result, nil
}

type collectionQueries struct {
	page  string
	count string
	root  string
}

// listPage runs the page query and the capped count query concurrently
// and assembles pagination metadata from both.
func (s *Service) listPage(ctx context.Context, queries collectionQueries, extraVars map[string]any, page, pageSize int, tags []string) Paginated[Entity] {
	var (
		conn  rawEntityConnection
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vars := map[string]any{"first": pageSize}
		if cursor := PageToCursor(page, pageSize); cursor != "" {
			vars["after"] = cursor
		}
		for k, v := range extraVars {
			vars[k] = v
		}
		var err error
		conn, err = s.fetchConnection(gctx, queries.page, queries.root, vars, tags)
		return err
	})
	g.Go(func() error {
		vars := map[string]any{"cap": s.countCap}
		for k, v := range extraVars {
			vars[k] = v
		}
		var err error
		total, err = s.countCollection(gctx, queries.count, queries.root, vars, tags)
		return err
	})

	if err := g.Wait(); err != nil {
		ctxutil.GetLogger(ctx).Warn("content list degraded to empty result",
			"collection", queries.root, "page", page, "error", err)
		return EmptyPaginated[Entity]()
	}
	return NewPaginated(normalizeEntities(conn), total, pageSize)
}

func (s *Service) fetchConnection(ctx context.Context, query, root string, vars map[string]any, tags []string) (rawEntityConnection, error) {
	data, err := s.gql.Execute(ctx, query, vars, tags)
	if err != nil {
		return rawEntityConnection{}, err
	}
	payload := map[string]rawEntityConnection{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return rawEntityConnection{}, fmt.Errorf("decode %s connection: %w", root, err)
	}
	return payload[root], nil
}

// countCollection issues the bounded ids-only query and counts the
// returned nodes. Collections larger than the cap report the cap.
func (s *Service) countCollection(ctx context.Context, query, root string, vars map[string]any, tags []string) (int, error) {
	data, err := s.gql.Execute(ctx, query, vars, tags)
	if err != nil {
		return 0, err
	}
	payload := map[string]struct {
		Nodes []json.RawMessage `json:"nodes"`
	}{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, fmt.Errorf("decode %s count: %w", root, err)
	}
	return len(payload[root].Nodes), nil
}

// # Single items

// PostBySlug fetches one published post, with extras merged in. A nil
// result means not found or degraded backend; the caller renders 404.
func (s *Service) PostBySlug(ctx context.Context, slug string) *Entity {
	entity := s.fetchSingle(ctx, postBySlugQuery, "post", map[string]any{"slug": slug}, slugTags("posts"))
	if entity != nil {
		s.mergeExtras(ctx, "post", entity, itemTags("posts", "post", entity.ID))
	}
	return entity
}

// PageBySlug fetches one published page by its URI path.
func (s *Service) PageBySlug(ctx context.Context, slug string) *Entity {
	entity := s.fetchSingle(ctx, pageBySlugQuery, "page", map[string]any{"slug": slug}, slugTags("pages"))
	if entity != nil {
		s.mergeExtras(ctx, "page", entity, itemTags("pages", "page", entity.ID))
	}
	return entity
}

// NodeBySlug fetches one entity of a custom content type by slug.
func (s *Service) NodeBySlug(ctx context.Context, typeName, slug string) (*Entity, error) {
	enum, err := schema.TypeEnum(typeName)
	if err != nil {
		return nil, err
	}
	collection := cptCollection(typeName)
	conn, err := s.fetchConnection(ctx, nodeBySlugQuery, "contentNodes",
		map[string]any{"type": []string{enum}, "slug": slug}, slugTags(collection))
	if err != nil {
		ctxutil.GetLogger(ctx).Warn("content lookup degraded to not found",
			"type", typeName, "slug", slug, "error", err)
		return nil, nil
	}
	entities := normalizeEntities(conn)
	if len(entities) == 0 {
		return nil, nil
	}
	entity := &entities[0]
	s.mergeExtras(ctx, typeName, entity, itemTags(collection, typeName, entity.ID))
	return entity, nil
}

// PostByID is the strict lookup path: backend failures surface as typed
// errors instead of an empty fallback.
func (s *Service) PostByID(ctx context.Context, id int) (Entity, error) {
	data, err := s.gql.Execute(ctx, postByIDQuery, map[string]any{"id": id}, itemTags("posts", "post", id))
	if err != nil {
		return Entity{}, mapBackendError(err)
	}
	payload := map[string]*rawEntity{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return Entity{}, apperr.Internal(fmt.Errorf("decode post: %w", err))
	}
	raw := payload["post"]
	if raw == nil {
		return Entity{}, apperr.NotFound("post")
	}
	entity := normalizeEntity(raw)
	s.mergeExtras(ctx, "post", &entity, itemTags("posts", "post", id))
	return entity, nil
}

// fetchSingle is the graceful single-item path shared by slug lookups:
// any failure logs and reads as not found.
func (s *Service) fetchSingle(ctx context.Context, query, root string, vars map[string]any, tags []string) *Entity {
	data, err := s.gql.Execute(ctx, query, vars, tags)
	if err != nil {
		ctxutil.GetLogger(ctx).Warn("content lookup degraded to not found",
			"root", root, "error", err)
		return nil
	}
	payload := map[string]*rawEntity{}
	if err := json.Unmarshal(data, &payload); err != nil {
		ctxutil.GetLogger(ctx).Warn("content lookup returned undecodable payload",
			"root", root, "error", err)
		return nil
	}
	raw := payload[root]
	if raw == nil {
		return nil
	}
	entity := normalizeEntity(raw)
	return &entity
}

// # Slug enumeration

// AllPostSlugs walks the full published post collection and returns
// every slug, for build-time route generation.
func (s *Service) AllPostSlugs(ctx context.Context) []string {
	return s.walkSlugs(ctx, postSlugsQuery, "posts", nil, slugTags("posts"))
}

// AllPageSlugs walks the full published page collection.
func (s *Service) AllPageSlugs(ctx context.Context) []string {
	return s.walkSlugs(ctx, pageSlugsQuery, "pages", nil, slugTags("pages"))
}

// AllSlugsForType walks one custom content type.
func (s *Service) AllSlugsForType(ctx context.Context, typeName string) ([]string, error) {
	enum, err := schema.TypeEnum(typeName)
	if err != nil {
		return nil, err
	}
	return s.walkSlugs(ctx, nodeSlugsQuery, "contentNodes",
		map[string]any{"type": []string{enum}}, slugTags(cptCollection(typeName))), nil
}

// walkSlugs follows the connection cursor to exhaustion. Each batch is
// cached independently, so a warm walk costs no backend calls.
func (s *Service) walkSlugs(ctx context.Context, query, root string, extraVars map[string]any, tags []string) []string {
	slugs := []string{}
	after := ""
	for {
		vars := map[string]any{"first": slugWalkPageSize}
		if after != "" {
			vars["after"] = after
		}
		for k, v := range extraVars {
			vars[k] = v
		}
		data, err := s.gql.Execute(ctx, query, vars, tags)
		if err != nil {
			ctxutil.GetLogger(ctx).Warn("slug walk degraded to empty result",
				"collection", root, "error", err)
			return []string{}
		}
		payload := map[string]rawSlugConnection{}
		if err := json.Unmarshal(data, &payload); err != nil {
			ctxutil.GetLogger(ctx).Warn("slug walk returned undecodable payload",
				"collection", root, "error", err)
			return []string{}
		}
		conn := payload[root]
		for _, node := range conn.Nodes {
			if node == nil || node.Slug == "" {
				continue
			}
			slugs = append(slugs, node.Slug)
		}
		if !conn.PageInfo.HasNextPage || conn.PageInfo.EndCursor == "" {
			return slugs
		}
		after = conn.PageInfo.EndCursor
	}
}

// # Supporting lookups

// MediaByID fetches one media item; nil means not found or degraded.
func (s *Service) MediaByID(ctx context.Context, id int) *Media {
	data, err := s.gql.Execute(ctx, mediaByIDQuery, map[string]any{"id": id}, itemTags("media", "media", id))
	if err != nil {
		ctxutil.GetLogger(ctx).Warn("media lookup degraded to not found", "id", id, "error", err)
		return nil
	}
	payload := map[string]*rawMedia{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	raw := payload["mediaItem"]
	if raw == nil {
		return nil
	}
	media := normalizeMedia(raw)
	return &media
}

// Categories lists the category taxonomy.
func (s *Service) Categories(ctx context.Context) []TermSummary {
	return s.termList(ctx, categoriesQuery, "categories")
}

// TagsList lists the tag taxonomy.
func (s *Service) TagsList(ctx context.Context) []TermSummary {
	return s.termList(ctx, tagsQuery, "tags")
}

func (s *Service) termList(ctx context.Context, query, root string) []TermSummary {
	fallback := json.RawMessage(`{}`)
	data := s.gql.ExecuteGraceful(ctx, query, fallback, map[string]any{"first": slugWalkPageSize}, slugTags(root))

	payload := map[string]rawTermConnection{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return []TermSummary{}
	}
	return normalizeTerms(payload[root])
}

// AuthorByID fetches one author; nil means not found or degraded.
func (s *Service) AuthorByID(ctx context.Context, id int) *Author {
	data, err := s.gql.Execute(ctx, authorByIDQuery, map[string]any{"id": id}, itemTags("authors", "author", id))
	if err != nil {
		ctxutil.GetLogger(ctx).Warn("author lookup degraded to not found", "id", id, "error", err)
		return nil
	}
	payload := map[string]*rawUser{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	raw := payload["user"]
	if raw == nil {
		return nil
	}
	author := normalizeAuthor(raw)
	return &author
}

func mapBackendError(err error) error {
	if errors.Is(err, backend.ErrUnconfigured) {
		return apperr.Misconfigured("content backend is not configured")
	}
	return apperr.BackendUnavailable(err)
}
