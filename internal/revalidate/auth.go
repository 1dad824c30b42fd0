// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package revalidate

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// authenticate verifies a webhook call against the shared secret.
//
// The preferred scheme is an HMAC-SHA256 hex digest of the raw request
// body. When no signature header is present, a legacy plaintext secret
// header is accepted instead. Both comparisons are constant-time.
func authenticate(secret, signature, legacySecret string, body []byte) bool {
	if signature != "" {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(body)
		expected := hex.EncodeToString(mac.Sum(nil))
		return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
	}
	if legacySecret != "" {
		return subtle.ConstantTimeCompare([]byte(secret), []byte(legacySecret)) == 1
	}
	return false
}
