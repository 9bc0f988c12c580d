package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
}

// PlainText strips all markup from s and returns the text a user would see.
// Entities are decoded, so the result is safe to embed in JSON but not in HTML.
// Strings without markup are returned unchanged.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	initPolicies()
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// PlainTextCustom applies a custom bluemonday policy before decoding entities.
// Returns input unchanged if policy is nil.
func PlainTextCustom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return html.UnescapeString(policy.Sanitize(s))
}
