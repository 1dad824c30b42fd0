// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

package revalidate

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestAuthenticate(t *testing.T) {
	secret := "hunter2"
	body := []byte(`{"contentType":"post","contentId":42}`)

	tests := []struct {
		name         string
		signature    string
		legacySecret string
		want         bool
	}{
		{"valid signature", sign(secret, body), "", true},
		{"uppercase signature accepted", strings.ToUpper(sign(secret, body)), "", true},
		{"signature over different body", sign(secret, []byte(`{}`)), "", false},
		{"signature with wrong secret", sign("other", body), "", false},
		{"malformed signature", "not-hex", "", false},
		{"valid legacy secret", "", secret, true},
		{"wrong legacy secret", "", "guess", false},
		{"no credentials", "", "", false},
		{"signature takes precedence over legacy", sign("other", body), secret, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, authenticate(secret, tt.signature, tt.legacySecret, body))
		})
	}
}
