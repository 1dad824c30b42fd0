package content

// Status is the publication state of a content entity.
type Status string

const (
	StatusPublish Status = "publish"
	StatusFuture  Status = "future"
	StatusDraft   Status = "draft"
	StatusPending Status = "pending"
	StatusPrivate Status = "private"
)

// Term is a taxonomy term attached to an entity.
type Term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TaxonomyAssignment groups the terms of one dynamically-discovered taxonomy.
type TaxonomyAssignment struct {
	// Taxonomy is the backend machine key (e.g. "industry").
	Taxonomy string `json:"taxonomy"`
	// Label is the display name, falling back to the machine key when the
	// taxonomy is not present in the schema registry.
	Label string `json:"label"`
	Terms []Term `json:"terms"`
}

// SeoImage describes an image referenced by SEO metadata.
type SeoImage struct {
	URL     string `json:"url"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	AltText string `json:"alt_text,omitempty"`
}

// SeoMetadata carries the per-entity SEO block when the backend provides one.
type SeoMetadata struct {
	Title              string    `json:"title,omitempty"`
	Description        string    `json:"description,omitempty"`
	CanonicalURL       string    `json:"canonical_url,omitempty"`
	OGTitle            string    `json:"og_title,omitempty"`
	OGDescription      string    `json:"og_description,omitempty"`
	OGImage            *SeoImage `json:"og_image,omitempty"`
	TwitterTitle       string    `json:"twitter_title,omitempty"`
	TwitterDescription string    `json:"twitter_description,omitempty"`
	TwitterImage       *SeoImage `json:"twitter_image,omitempty"`
}

// Entity is the stable model every backend response shape normalizes into:
// posts, pages, and generic content nodes all share it.
type Entity struct {
	ID   int    `json:"id"`
	Slug string `json:"slug"`

	// Date and Modified are ISO-8601 strings as the backend reports them.
	Date     string `json:"date"`
	Modified string `json:"modified"`

	Status Status `json:"status"`

	// Rendered HTML fragments. Sanitization is the renderer's concern.
	Title   string `json:"title"`
	Content string `json:"content"`
	Excerpt string `json:"excerpt"`

	CommentStatus string `json:"comment_status"`
	PingStatus    string `json:"ping_status"`

	// Relational references, flattened to ids.
	Author        int   `json:"author"`
	FeaturedMedia int   `json:"featured_media"`
	Categories    []int `json:"categories"`
	Tags          []int `json:"tags"`

	// CustomFields is either absent or non-empty: an all-suppressed field
	// set collapses to absent, and consumers must not distinguish the two.
	CustomFields map[string]any `json:"custom_fields,omitempty"`

	// Taxonomies holds dynamically-discovered taxonomy assignments.
	Taxonomies []TaxonomyAssignment `json:"custom_taxonomies,omitempty"`

	Seo *SeoMetadata `json:"seo,omitempty"`
}

// Media is the normalized form of a media library item.
type Media struct {
	ID       int    `json:"id"`
	Slug     string `json:"slug"`
	URL      string `json:"url"`
	AltText  string `json:"alt_text"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MimeType string `json:"mime_type"`
}

// TermSummary is the normalized form of a built-in taxonomy term
// (category or tag) in listing responses.
type TermSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// Author is the normalized form of a content author.
type Author struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	AvatarURL   string `json:"avatar_url"`
}

// Paginated is a page of items together with collection totals.
//
// Invariant: TotalPages == 0 exactly when Total == 0.
type Paginated[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginated computes TotalPages as ceil(total/pageSize).
func NewPaginated[T any](items []T, total, pageSize int) Paginated[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{Items: items, Total: total, TotalPages: totalPages}
}

// EmptyPaginated is the degraded-mode result: no items, zero totals.
func EmptyPaginated[T any]() Paginated[T] {
	return Paginated[T]{Items: []T{}}
}
