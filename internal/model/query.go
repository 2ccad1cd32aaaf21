package model

import "strings"

// SplitArtistTitle splits an "Artist - Title" request into its parts.
//
// A spaced separator (" - ", " – " or " — ") is preferred so that names
// like "Jay-Z - The Blueprint" split in the right place. Otherwise the
// first bare hyphen, en dash or em dash is used. Both parts must be
// non-empty after trimming.
//
// Example:
//
//	SplitArtistTitle("Metallica - Master of Puppets") // "Metallica", "Master of Puppets", true
//	SplitArtistTitle("just a query")                  // "", "", false
func SplitArtistTitle(raw string) (artist, title string, ok bool) {
	for _, sep := range []string{" - ", " – ", " — ", "-", "–", "—"} {
		before, after, found := strings.Cut(raw, sep)
		if !found {
			continue
		}
		before, after = strings.TrimSpace(before), strings.TrimSpace(after)
		if before != "" && after != "" {
			return before, after, true
		}
	}
	return "", "", false
}
