package search

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ResultLink is one hit on a MediaSearch results page.
type ResultLink struct {
	FilePageURL string
	ThumbURL    string
}

// Rendition is one entry from a file page's "other resolutions" listing.
type Rendition struct {
	URL    string
	Width  int
	Height int
}

// DetailPage holds everything extracted from a file detail page.
type DetailPage struct {
	Author     string
	Renditions []Rendition
}

// Parser extracts structure from MediaSearch pages. Commons markup is
// unversioned and may change, so the scraping lives behind this seam and
// tests exercise it against fixture HTML.
type Parser interface {
	SearchResults(body []byte, max int) []ResultLink
	DetailPage(body []byte) DetailPage
}

// goqueryParser implements Parser against the markup Commons serves today.
type goqueryParser struct{}

// NewParser returns the default goquery-backed Parser.
func NewParser() Parser {
	return goqueryParser{}
}

// dimensions like "1,024 × 1,024 pixels", thousands separators included
var dimensionsRe = regexp.MustCompile(`([\d,]+)\s*×\s*([\d,]+)`)

// SearchResults returns up to max result links, deduplicated by file page
// URL preserving first occurrence. Results without a thumbnail are skipped.
func (goqueryParser) SearchResults(body []byte, max int) []ResultLink {
	if max <= 0 {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var links []ResultLink
	doc.Find("a.sdms-image-result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return true
		}
		if _, dup := seen[href]; dup {
			return true
		}
		thumb, ok := sel.Find("img").Attr("data-src")
		if !ok || thumb == "" {
			return true
		}
		seen[href] = struct{}{}
		links = append(links, ResultLink{FilePageURL: href, ThumbURL: thumb})
		return len(links) < max
	})
	return links
}

// DetailPage extracts the author credit and the resolution listing from a
// file page. Absent pieces come back zero-valued; the caller has fallbacks
// for both.
func (goqueryParser) DetailPage(body []byte) DetailPage {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return DetailPage{}
	}

	var page DetailPage

	doc.Find("td").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.TrimSpace(sel.Text()) != "Author" {
			return true
		}
		value := sel.NextFiltered("td")
		if value.Length() == 0 {
			return true
		}
		text := strings.TrimSpace(value.Text())
		// Drop trailing parentheticals (license notes, talk links).
		if cut := strings.Index(text, "("); cut != -1 {
			text = strings.TrimSpace(text[:cut])
		}
		page.Author = text
		return false
	})

	doc.Find("span.mw-filepage-other-resolutions a.mw-thumbnail-link").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		m := dimensionsRe.FindStringSubmatch(sel.Text())
		if m == nil {
			return
		}
		w, errW := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		h, errH := strconv.Atoi(strings.ReplaceAll(m[2], ",", ""))
		if errW != nil || errH != nil {
			return
		}
		page.Renditions = append(page.Renditions, Rendition{URL: href, Width: w, Height: h})
	})

	return page
}
