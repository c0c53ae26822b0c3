package domain

// HighlightReel is a preview of one highlight album. Items are fetched
// lazily by reel ID once the user picks an album.
type HighlightReel struct {
	ID        string
	Title     string
	ItemCount int
}
