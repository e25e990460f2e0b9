package category

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify normalizes a category name into its foreign-key slug: trimmed,
// lowercased, diacritics stripped, non-word runes replaced and whitespace
// runs collapsed into a single underscore. "Platos Principales" becomes
// "platos_principales", "Sándwiches" becomes "sandwiches".
func Slugify(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	if out, _, err := transform.String(deaccent, s); err == nil {
		s = out
	}

	var b strings.Builder
	lastUnderscore := true // suppress a leading underscore
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimRight(b.String(), "_")
}
