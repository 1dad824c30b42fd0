package content

import "strings"

// Normalization is total and deterministic: every raw shape maps to a
// valid entity without error, and absent fields take fixed defaults.

func normalizeStatus(raw string) Status {
	if raw == "" {
		return StatusPublish
	}
	return Status(strings.ToLower(raw))
}

func normalizeToggle(raw string) string {
	if raw == "" {
		return "closed"
	}
	return strings.ToLower(raw)
}

func refID(ref *rawNodeRef) int {
	if ref == nil || ref.Node == nil {
		return 0
	}
	return ref.Node.DatabaseID
}

func connectionIDs(conn *rawIDConnection) []int {
	if conn == nil {
		return nil
	}
	ids := make([]int, 0, len(conn.Nodes))
	for _, node := range conn.Nodes {
		if node == nil {
			continue
		}
		ids = append(ids, node.DatabaseID)
	}
	return ids
}

func normalizeSeoImage(raw *rawSeoImage) *SeoImage {
	if raw == nil || raw.SourceURL == "" {
		return nil
	}
	return &SeoImage{
		URL:     raw.SourceURL,
		Width:   raw.MediaDetails.Width,
		Height:  raw.MediaDetails.Height,
		AltText: raw.AltText,
	}
}

func normalizeSeo(raw *rawSeo) *SeoMetadata {
	if raw == nil {
		return nil
	}
	seo := &SeoMetadata{
		Title:              raw.Title,
		Description:        raw.MetaDesc,
		CanonicalURL:       raw.Canonical,
		OGTitle:            raw.OpengraphTitle,
		OGDescription:      raw.OpengraphDesc,
		OGImage:            normalizeSeoImage(raw.OpengraphImage),
		TwitterTitle:       raw.TwitterTitle,
		TwitterDescription: raw.TwitterDescription,
		TwitterImage:       normalizeSeoImage(raw.TwitterImage),
	}
	if *seo == (SeoMetadata{}) {
		return nil
	}
	return seo
}

func normalizeEntity(raw *rawEntity) Entity {
	if raw == nil {
		raw = &rawEntity{}
	}
	return Entity{
		ID:            raw.DatabaseID,
		Slug:          raw.Slug,
		Date:          raw.Date,
		Modified:      raw.Modified,
		Status:        normalizeStatus(raw.Status),
		Title:         raw.Title,
		Content:       raw.Content,
		Excerpt:       raw.Excerpt,
		CommentStatus: normalizeToggle(raw.CommentStatus),
		PingStatus:    normalizeToggle(raw.PingStatus),
		Author:        refID(raw.Author),
		FeaturedMedia: refID(raw.FeaturedImage),
		Categories:    connectionIDs(raw.Categories),
		Tags:          connectionIDs(raw.Tags),
		Seo:           normalizeSeo(raw.Seo),
	}
}

func normalizeEntities(conn rawEntityConnection) []Entity {
	entities := make([]Entity, 0, len(conn.Nodes))
	for _, node := range conn.Nodes {
		if node == nil {
			continue
		}
		entities = append(entities, normalizeEntity(node))
	}
	return entities
}

func normalizeMedia(raw *rawMedia) Media {
	if raw == nil {
		raw = &rawMedia{}
	}
	return Media{
		ID:       raw.DatabaseID,
		Slug:     raw.Slug,
		URL:      raw.SourceURL,
		AltText:  raw.AltText,
		Width:    raw.MediaDetails.Width,
		Height:   raw.MediaDetails.Height,
		MimeType: raw.MimeType,
	}
}

func normalizeTerms(conn rawTermConnection) []TermSummary {
	terms := make([]TermSummary, 0, len(conn.Nodes))
	for _, node := range conn.Nodes {
		if node == nil {
			continue
		}
		terms = append(terms, TermSummary{
			ID:    node.DatabaseID,
			Name:  node.Name,
			Slug:  node.Slug,
			Count: node.Count,
		})
	}
	return terms
}

func normalizeAuthor(raw *rawUser) Author {
	if raw == nil {
		raw = &rawUser{}
	}
	author := Author{
		ID:          raw.DatabaseID,
		Name:        raw.Name,
		Slug:        raw.Slug,
		Description: raw.Description,
	}
	if raw.Avatar != nil {
		author.AvatarURL = raw.Avatar.URL
	}
	return author
}
