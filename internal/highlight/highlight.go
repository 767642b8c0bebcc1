// Package highlight marks search-term matches in display text for the
// listing endpoints' hl=1 mode.
package highlight

import (
	"regexp"
	"strings"
)

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// NewDecorator builds a pure text transform from a raw search query.
//
// The query is split on whitespace; tokens shorter than two characters are
// dropped. If nothing survives, the identity function is returned. Otherwise
// every case-insensitive occurrence of any token is wrapped in <mark> tags,
// with the matched text kept verbatim. Tokens are matched literally: regexp
// metacharacters in the query have no special meaning.
//
// The decorator is meant for a single pass over plain text. Re-applying it to
// its own output can double-wrap matches inside the inserted tags.
func NewDecorator(query string) func(string) string {
	var tokens []string
	for _, part := range strings.Fields(query) {
		part = strings.ToLower(strings.TrimSpace(part))
		if len(part) < 2 {
			continue
		}
		tokens = append(tokens, regexp.QuoteMeta(part))
	}
	if len(tokens) == 0 {
		return func(text string) string { return text }
	}

	pattern := regexp.MustCompile("(?i)" + strings.Join(tokens, "|"))
	return func(text string) string {
		return pattern.ReplaceAllStringFunc(text, func(match string) string {
			return markOpen + match + markClose
		})
	}
}
