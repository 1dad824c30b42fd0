// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package httpx

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ReadBody reads and closes an HTTP response body.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// DecodeJSON decodes a JSON response body into target and closes the body.
func DecodeJSON(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("httpx: decode JSON response: %w", err)
	}
	return nil
}

// Is2xx reports whether the response carries a success status.
func Is2xx(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
