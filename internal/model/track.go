package model

import (
	"fmt"

	ioutils "github.com/landonrogers/bippi/internal/io"
)

// maxTitleRunes bounds the title part of a track file name so that deep
// album folders stay below common path length limits.
const maxTitleRunes = 120

// CatalogTrack is one entry of an authoritative track listing.
//
// CatalogTrack values come from the metadata catalog and are never
// modified afterwards. Their order in a Release is the canonical album
// order.
type CatalogTrack struct {
	// Position is the overall 1-indexed position on the release.
	Position int

	// Title is the canonical track title.
	Title string

	// Artist is the credited track artist (usually the album artist).
	Artist string

	// Duration is the track length in seconds, 0 when unknown.
	Duration float64

	// Disc is the 1-indexed medium number, 0 when unknown.
	Disc int

	// DiscPosition is the position on the medium, 0 when unknown.
	DiscPosition int
}

// Release is an authoritative release returned by the metadata catalog.
type Release struct {
	ID         string
	Title      string
	Artist     string
	Date       string
	TotalDiscs int
	Tracks     []CatalogTrack
}

// RawLocator is one downloadable entry as presented by the source
// (a playlist or a search result), in source order.
type RawLocator struct {
	// URL is what the download engine is invoked with.
	URL string

	// HintTitle is the title the source shows for the entry, if any.
	HintTitle string

	// Position is the 1-indexed position in the source sequence.
	Position int

	// Duration is the source-reported length in seconds, 0 when unknown.
	Duration float64
}

// AlignedTrack is the unit of work of the download orchestrator: a
// locator paired with the target metadata it should be saved under.
//
// Within one run TargetPosition values form the contiguous sequence 1..N
// and every Locator.URL is distinct.
type AlignedTrack struct {
	Locator        RawLocator
	TargetPosition int
	TargetTitle    string
	TargetArtist   string
	AlbumTitle     string

	// Disc and DiscPosition carry the catalog's medium layout when the
	// track was matched against a multi-disc release.
	Disc         int
	DiscPosition int

	// Duration is the catalog duration when matched, else the source one.
	Duration float64
}

// FileBase returns the file name, without extension, for this track.
//
// Album tracks are prefixed with their zero-padded position ("03 - Title"),
// or with disc and disc position ("02-05 - Title") when the album spans
// several discs. Single tracks use the bare title.
//
// Example:
//
//	t := AlignedTrack{TargetPosition: 3, TargetTitle: "Outro"}
//	t.FileBase(album) // "03 - Outro"
func (t AlignedTrack) FileBase(album *Album) string {
	title := truncateRunes(t.TargetTitle, maxTitleRunes)
	if album != nil && album.Kind == KindSingle {
		return ioutils.SanitizeFileName(title)
	}

	prefix := fmt.Sprintf("%02d", t.TargetPosition)
	if album != nil && album.MultiDisc() && t.Disc > 0 && t.DiscPosition > 0 {
		prefix = fmt.Sprintf("%02d-%02d", t.Disc, t.DiscPosition)
	}
	return prefix + " - " + ioutils.SanitizeFileName(title)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
