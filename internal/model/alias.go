package model

// Kind tells whether a request targets a single track or a whole album.
type Kind int

const (
	// KindSingle downloads exactly one track.
	KindSingle Kind = iota

	// KindAlbum downloads every entry of a playlist or album.
	KindAlbum
)

// String returns "single" or "album".
func (k Kind) String() string {
	if k == KindAlbum {
		return "album"
	}
	return "single"
}

// Alias is a user-defined short name for a locator.
type Alias struct {
	// Name is the unique key the user types instead of the locator.
	Name string

	// Locator is a URL or a free-text search query.
	Locator string

	// Kind records whether the locator points at an album.
	Kind Kind
}
