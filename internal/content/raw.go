package content

// Raw wire shapes of the backend query API. Relations arrive as nested
// node wrappers and connections; the normalizer flattens them.

type rawIDNode struct {
	DatabaseID int `json:"databaseId"`
}

type rawNodeRef struct {
	Node *rawIDNode `json:"node"`
}

type rawIDConnection struct {
	Nodes []*rawIDNode `json:"nodes"`
}

type rawPageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type rawSeoImage struct {
	SourceURL string `json:"sourceUrl"`
	AltText   string `json:"altText"`
	MediaDetails struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"mediaDetails"`
}

type rawSeo struct {
	Title              string       `json:"title"`
	MetaDesc           string       `json:"metaDesc"`
	Canonical          string       `json:"canonical"`
	OpengraphTitle     string       `json:"opengraphTitle"`
	OpengraphDesc      string       `json:"opengraphDescription"`
	OpengraphImage     *rawSeoImage `json:"opengraphImage"`
	TwitterTitle       string       `json:"twitterTitle"`
	TwitterDescription string       `json:"twitterDescription"`
	TwitterImage       *rawSeoImage `json:"twitterImage"`
}

// rawEntity covers the shared field set of posts, pages, and generic
// content nodes; fields a given type lacks simply stay zero.
type rawEntity struct {
	DatabaseID    int              `json:"databaseId"`
	Slug          string           `json:"slug"`
	Date          string           `json:"date"`
	Modified      string           `json:"modified"`
	Status        string           `json:"status"`
	Title         string           `json:"title"`
	Content       string           `json:"content"`
	Excerpt       string           `json:"excerpt"`
	CommentStatus string           `json:"commentStatus"`
	PingStatus    string           `json:"pingStatus"`
	Author        *rawNodeRef      `json:"author"`
	FeaturedImage *rawNodeRef      `json:"featuredImage"`
	Categories    *rawIDConnection `json:"categories"`
	Tags          *rawIDConnection `json:"tags"`
	Seo           *rawSeo          `json:"seo"`
}

type rawEntityConnection struct {
	PageInfo rawPageInfo  `json:"pageInfo"`
	Nodes    []*rawEntity `json:"nodes"`
}

type rawSlugConnection struct {
	PageInfo rawPageInfo `json:"pageInfo"`
	Nodes    []*struct {
		Slug string `json:"slug"`
	} `json:"nodes"`
}

type rawMedia struct {
	DatabaseID   int    `json:"databaseId"`
	Slug         string `json:"slug"`
	SourceURL    string `json:"sourceUrl"`
	AltText      string `json:"altText"`
	MimeType     string `json:"mimeType"`
	MediaDetails struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"mediaDetails"`
}

type rawTerm struct {
	DatabaseID int    `json:"databaseId"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Count      int    `json:"count"`
}

type rawTermConnection struct {
	Nodes []*rawTerm `json:"nodes"`
}

type rawUser struct {
	DatabaseID  int    `json:"databaseId"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Avatar      *struct {
		URL string `json:"url"`
	} `json:"avatar"`
}
