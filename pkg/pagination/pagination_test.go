// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pressgate/pressgate/pkg/pagination"
)

/*
TestNewMeta_TotalPages verifies the ceiling division and the
"zero pages iff zero total" invariant.
*/
func TestNewMeta_TotalPages(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		limit      int
		totalPages int
	}{
		{"empty", 0, 9, 0},
		{"exact_fit", 18, 9, 2},
		{"partial_last_page", 19, 9, 3},
		{"single_item", 1, 9, 1},
		{"limit_one", 7, 1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(1, tt.limit, tt.total)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.total == 0, meta.TotalPages == 0)
		})
	}
}

/*
TestFromRequest_Clamping verifies query parameter parsing and clamping.
*/
func TestFromRequest_Clamping(t *testing.T) {
	tests := []struct {
		name  string
		query string
		page  int
		limit int
	}{
		{"defaults", "", 1, 9},
		{"explicit", "page=3&per_page=20", 3, 20},
		{"negative_page", "page=-2", 1, 9},
		{"zero_limit", "per_page=0", 1, 9},
		{"excessive_limit", "per_page=5000", 1, 9},
		{"garbage", "page=abc&per_page=x", 1, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/?"+tt.query, nil)
			params := pagination.FromRequest(r)
			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.limit, params.Limit)
		})
	}
}
