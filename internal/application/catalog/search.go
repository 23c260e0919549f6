package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var searchNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSearch prepara un término de búsqueda: minúsculas, sin espacios en
// los extremos y sin diacríticos, para que "José" encuentre a "jose".
func NormalizeSearch(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ""
	}
	out, _, err := transform.String(searchNormalizer, s)
	if err != nil {
		return s
	}
	return out
}
