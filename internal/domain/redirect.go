package domain

import (
	"net/url"
	"strings"
)

// ValidateRedirectPath checks a post-login redirect target against open
// redirect tricks and returns the decoded safe path. The boolean is false
// when the input must be rejected; callers fall back to a safe default.
//
// The unsafe patterns are checked after percent-decoding, closing the bypass
// where "//evil.com" hides behind "%2F".
func ValidateRedirectPath(raw string) (string, bool) {
	if raw == "" {
		return "/", true
	}
	if !strings.HasPrefix(raw, "/") {
		return "", false
	}

	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", false
	}

	switch {
	case strings.HasPrefix(decoded, "//"):
		// protocol-relative URL
		return "", false
	case strings.Contains(decoded, "://"):
		// absolute URL
		return "", false
	case strings.Contains(decoded, `\`):
		// some browsers normalize backslash to slash
		return "", false
	}

	return decoded, true
}
