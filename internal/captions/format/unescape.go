package format

import (
	"strings"

	"golang.org/x/net/html"
)

// Unescape resolves HTML entities (&amp;, &#39;, &nbsp;, ...) left in a text leaf
// after XML decoding. The platform escapes caption text once more on top of the
// XML layer, so every decoder runs its text through here exactly once.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	return html.UnescapeString(s)
}
