package fees

import (
	"regexp"
	"strings"
)

var (
	// "01 ", "1.", "02)", "12 - " at the start of a label; "2nd" and
	// "1031" are part of the name
	indexPrefix = regexp.MustCompile(`^\s*\d{1,2}(?:\s*[.:)\-]+\s*|\s+|$)`)
	// "... to Acme Appraisals LLC" at the end of a label
	providerClause = regexp.MustCompile(`(?i)\s+to\s+(.*)$`)
	whitespace     = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a raw fee label into a matching key. It strips a
// leading line index and a trailing "to <provider>" clause, folds case and
// collapses whitespace. Empty labels produce the empty key.
//
// The heuristic is deliberately conservative: differently worded fees stay
// unmatched rather than being merged.
func Normalize(label string) string {
	key := indexPrefix.ReplaceAllString(label, "")
	key = providerClause.ReplaceAllString(key, "")
	key = strings.ToLower(key)
	key = whitespace.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}

// ProviderName returns the entity named in a trailing "to <provider>" clause,
// or the empty string.
func ProviderName(label string) string {
	m := providerClause.FindStringSubmatch(indexPrefix.ReplaceAllString(label, ""))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(m[1], " "))
}
