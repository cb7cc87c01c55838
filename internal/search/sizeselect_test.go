package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectBySizePicksSmallestAboveFloor(t *testing.T) {
	renditions := []Rendition{
		{URL: "url1", Width: 600, Height: 600},
		{URL: "url2", Width: 1024, Height: 1024},
		{URL: "url3", Width: 800, Height: 600},
	}

	best, ok := selectBySize(renditions, 800, 600)
	require.True(t, ok)
	require.Equal(t, "url3", best.URL)
}

func TestSelectBySizeNoneMeetsFloor(t *testing.T) {
	renditions := []Rendition{
		{URL: "url1", Width: 640, Height: 480},
		{URL: "url2", Width: 799, Height: 900},
		{URL: "url3", Width: 900, Height: 599},
	}

	_, ok := selectBySize(renditions, 800, 600)
	require.False(t, ok)
}

func TestSelectBySizeBothDimensionsRequired(t *testing.T) {
	// Wide enough but too short must not pass even with a huge pixel count.
	renditions := []Rendition{
		{URL: "short", Width: 4000, Height: 500},
		{URL: "fits", Width: 810, Height: 610},
	}

	best, ok := selectBySize(renditions, 800, 600)
	require.True(t, ok)
	require.Equal(t, "fits", best.URL)
}

func TestSelectBySizeEmptyListing(t *testing.T) {
	_, ok := selectBySize(nil, 800, 600)
	require.False(t, ok)
}
