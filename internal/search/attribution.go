package search

import (
	"regexp"
	"strings"
)

const (
	defaultAttribution = "Wikimedia Commons"
	maxAuthorLen       = 20
)

var footnoteMarker = regexp.MustCompile(`\[[^\]]*\]`)

// FormatAttribution turns a raw author string into the short credit line
// stored next to each image: footnote markers stripped, truncated at a word
// boundary near 20 runes, prefixed with a copyright glyph. Empty input falls
// back to the generic Commons credit.
func FormatAttribution(raw string) string {
	cleaned := raw
	if loc := footnoteMarker.FindStringIndex(cleaned); loc != nil {
		cleaned = cleaned[:loc[0]]
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "© " + defaultAttribution
	}

	runes := []rune(cleaned)
	if len(runes) > maxAuthorLen {
		head := string(runes[:maxAuthorLen])
		if cut := strings.LastIndex(head, " "); cut != -1 {
			cleaned = head[:cut] + " ..."
		} else {
			cleaned = head + " ..."
		}
	}
	return "© " + cleaned
}
