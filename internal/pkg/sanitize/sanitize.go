// Package sanitize strips markup from visitor-supplied free text before it is
// persisted or forwarded in notifications.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func strict() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text removes every HTML element from s and trims surrounding whitespace.
// Entities escaped by the policy are decoded back so "&" stays "&".
func Text(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict().Sanitize(trimmed)))
}
