// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package revalidate

import (
	"fmt"

	"github.com/pressgate/pressgate/internal/platform/constants"
)

// tagsForEvent maps a CMS change event to the cache tags it must evict.
//
// Every event evicts the umbrella content tag and the schema cache:
// a change to any entity may ripple into listings, and registering or
// renaming a content type must not serve a stale registry. Id-scoped
// tags are added only when the event names an id.
func tagsForEvent(contentType, contentID string) []string {
	tags := []string{constants.TagAllContent, constants.TagContentTypes}

	switch contentType {
	case "post":
		tags = append(tags, "posts", "posts-page-1")
		if contentID != "" {
			tags = append(tags, "post-"+contentID)
		}
	case "page":
		tags = append(tags, "pages")
		if contentID != "" {
			tags = append(tags, "page-"+contentID)
		}
	case "category":
		tags = append(tags, "categories")
		if contentID != "" {
			tags = append(tags, "category-"+contentID, "posts-category-"+contentID)
		}
	case "tag":
		tags = append(tags, "tags")
		if contentID != "" {
			tags = append(tags, "tag-"+contentID, "posts-tag-"+contentID)
		}
	case "author", "user":
		tags = append(tags, "authors")
		if contentID != "" {
			tags = append(tags, "author-"+contentID, "posts-author-"+contentID)
		}
	case "media", "attachment":
		tags = append(tags, "media")
		if contentID != "" {
			tags = append(tags, "media-"+contentID)
		}
	case "options", "options-page":
		tags = append(tags, "options-pages")
		if contentID != "" {
			tags = append(tags, "options-page-"+contentID)
		}
	default:
		// Custom content types share one collection tag per type.
		collection := "cpt-" + contentType
		tags = append(tags, collection)
		if contentID != "" {
			tags = append(tags, fmt.Sprintf("%s-%s", collection, contentID))
		}
	}
	return tags
}
