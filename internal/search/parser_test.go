package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	body, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return body
}

func TestSearchResultsDedupesAndLimits(t *testing.T) {
	body := fixture(t, "search_results.html")
	p := NewParser()

	links := p.SearchResults(body, 10)
	require.Len(t, links, 3, "duplicate and thumbless results should be dropped")
	require.Equal(t, "/wiki/File:Blue_jay_1.jpg", links[0].FilePageURL)
	require.Equal(t, "/wiki/File:Blue_jay_2.jpg", links[1].FilePageURL)
	require.Equal(t, "/wiki/File:Blue_jay_3.jpg", links[2].FilePageURL)
	require.Contains(t, links[0].ThumbURL, "330px-Blue_jay_1.jpg")
}

func TestSearchResultsHonorsMax(t *testing.T) {
	body := fixture(t, "search_results.html")
	p := NewParser()

	require.Len(t, p.SearchResults(body, 2), 2)
	require.Empty(t, p.SearchResults(body, 0))
}

func TestSearchResultsEmptyPage(t *testing.T) {
	p := NewParser()
	require.Empty(t, p.SearchResults([]byte("<html><body>no results</body></html>"), 3))
}

func TestDetailPage(t *testing.T) {
	body := fixture(t, "detail_page.html")
	p := NewParser()

	page := p.DetailPage(body)
	require.Equal(t, "Charles James Sharp", page.Author)
	require.Equal(t, []Rendition{
		{URL: "//upload.wikimedia.org/wikipedia/commons/thumb/a/ab/Blue_jay_1.jpg/320px-Blue_jay_1.jpg", Width: 320, Height: 240},
		{URL: "//upload.wikimedia.org/wikipedia/commons/thumb/a/ab/Blue_jay_1.jpg/1024px-Blue_jay_1.jpg", Width: 1024, Height: 768},
		{URL: "//upload.wikimedia.org/wikipedia/commons/thumb/a/ab/Blue_jay_1.jpg/1280px-Blue_jay_1.jpg", Width: 1280, Height: 960},
		{URL: "//upload.wikimedia.org/wikipedia/commons/thumb/a/ab/Blue_jay_1.jpg/2560px-Blue_jay_1.jpg", Width: 2560, Height: 1920},
	}, page.Renditions)
}

func TestDetailPageWithoutAuthorOrResolutions(t *testing.T) {
	p := NewParser()
	page := p.DetailPage([]byte("<html><body><p>bare page</p></body></html>"))
	require.Empty(t, page.Author)
	require.Empty(t, page.Renditions)
}
