// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

/*
Package backend defines the error taxonomy shared by the two transports that
talk to the content backend: the GraphQL query API and the REST document API.

Both transports fail the same two ways — a non-2xx HTTP status, or a 200
response whose envelope carries application-level errors — so the types live
here rather than in either transport.
*/
package backend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnconfigured is returned by strict execution when no backend base URL
// is configured. Graceful callers convert it to their fallback value.
var ErrUnconfigured = errors.New("backend: base URL is not configured")

// TransportError reports a non-2xx HTTP response from either backend API.
type TransportError struct {
	Status   int
	Endpoint string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend: HTTP %d from %s", e.Status, e.Endpoint)
}

// BackendError reports a 200 OK response whose envelope carried an errors array.
type BackendError struct {
	Messages []string
}

func (e *BackendError) Error() string {
	return "backend: " + strings.Join(e.Messages, "; ")
}
