package search

// selectBySize picks the smallest rendition (by total pixel count) that still
// meets both minimum dimensions. The display only needs minWidth×minHeight,
// so anything larger wastes bandwidth and storage. Returns false when no
// rendition clears the floor; the caller falls back to the full-resolution
// original.
func selectBySize(renditions []Rendition, minWidth, minHeight int) (Rendition, bool) {
	var (
		best  Rendition
		found bool
	)
	for _, r := range renditions {
		if r.Width < minWidth || r.Height < minHeight {
			continue
		}
		if !found || r.Width*r.Height < best.Width*best.Height {
			best = r
			found = true
		}
	}
	return best, found
}
