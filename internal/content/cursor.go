package content

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const cursorPrefix = "arrayconnection:"

// PageToCursor translates a 1-based page number into the opaque offset
// cursor the query API expects. Page 1 (and anything below) means "start
// from the beginning" and produces no cursor at all; for later pages the
// cursor addresses the last item of the preceding page.
func PageToCursor(page, pageSize int) string {
	if page <= 1 {
		return ""
	}
	offset := (page-1)*pageSize - 1
	return base64.StdEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

// OffsetFromCursor decodes a cursor back into its item offset.
func OffsetFromCursor(cursor string) (int, error) {
	decoded, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("decode cursor: %w", err)
	}
	rest, ok := strings.CutPrefix(string(decoded), cursorPrefix)
	if !ok {
		return 0, fmt.Errorf("cursor %q: missing %q prefix", decoded, cursorPrefix)
	}
	offset, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("cursor offset: %w", err)
	}
	return offset, nil
}
