// Package sanitize maps extracted text into the Latin-1 subset the PDF core
// fonts can encode.
package sanitize

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// typographic characters that have a reasonable ASCII spelling. Applied
// before the encodability check so they survive instead of being dropped.
var replacer = strings.NewReplacer(
	"→", "->", // right arrow
	"←", "<-", // left arrow
	"–", "-", // en dash
	"—", "--", // em dash
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"•", "*", // bullet
	"…", "...", // ellipsis
)

// Clean returns s with typographic characters replaced by ASCII equivalents
// and any character still outside ISO 8859-1 removed. It is idempotent and
// never fails; empty input yields the empty string.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = replacer.Replace(s)
	// Fast path: pure ASCII needs no per-rune scan.
	if isASCII(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if _, ok := charmap.ISO8859_1.EncodeRune(r); ok {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
