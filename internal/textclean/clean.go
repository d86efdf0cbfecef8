// Package textclean normalizes post text as delivered by X.
package textclean

import (
	"html"
	"strings"
	"unicode/utf8"
)

var replacer = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201C", "\"", "\u201D", "\"",
	"\u2026", "...", "\u00a0", " ", "\u200b", "", "\ufeff", "",
	"\r\n", "\n",
)

// Clean unescapes the HTML entities X leaves in full_text (&amp;, &lt;, &gt;),
// repairs invalid UTF-8 and folds typographic quotes, ellipses and
// non-breaking spaces to their ASCII forms.
func Clean(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	return strings.TrimSpace(replacer.Replace(html.UnescapeString(s)))
}
