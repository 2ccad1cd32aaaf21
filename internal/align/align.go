package align

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/landonrogers/bippi/internal/model"
)

// DefaultThreshold is the minimum similarity for a fuzzy match.
const DefaultThreshold = 0.5

// Options carries album context for alignment.
type Options struct {
	AlbumTitle  string
	AlbumArtist string

	// Threshold is the minimum similarity in (0, 1]. Zero means
	// DefaultThreshold.
	Threshold float64
}

// Align pairs source locators with catalog tracks.
//
// When both lists have the same length they are paired by position.
// Otherwise source titles are fuzzy matched to catalog titles, best
// pairs first. Matched tracks are numbered in catalog order; unmatched
// locators follow in source order under their own titles. Unmatched
// catalog tracks are dropped.
//
// The result always has one entry per locator, ordered by
// TargetPosition 1..len(raw).
func Align(raw []model.RawLocator, catalog []model.CatalogTrack, opts Options) []model.AlignedTrack {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}

	if len(raw) == len(catalog) {
		return alignByPosition(raw, catalog, opts)
	}
	return alignByTitle(raw, catalog, opts)
}

func alignByPosition(raw []model.RawLocator, catalog []model.CatalogTrack, opts Options) []model.AlignedTrack {
	aligned := make([]model.AlignedTrack, len(raw))
	for i := range raw {
		aligned[i] = matched(raw[i], catalog[i], i+1, opts)
	}
	return aligned
}

type candidate struct {
	raw     int
	catalog int
	score   float64
}

func alignByTitle(raw []model.RawLocator, catalog []model.CatalogTrack, opts Options) []model.AlignedTrack {
	candidates := make([]candidate, 0, len(raw)*len(catalog))
	for ri, r := range raw {
		hint := hintTokens(r.HintTitle, opts.AlbumArtist)
		for ci, c := range catalog {
			score := dice(hint, titleTokens(c.Title))
			if score >= opts.Threshold {
				candidates = append(candidates, candidate{raw: ri, catalog: ci, score: score})
			}
		}
	}

	slices.SortFunc(candidates, func(a, b candidate) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		if c := cmp.Compare(a.raw, b.raw); c != 0 {
			return c
		}
		return cmp.Compare(a.catalog, b.catalog)
	})

	// rawFor[ci] is the raw index matched to catalog track ci, or -1.
	rawFor := make([]int, len(catalog))
	for i := range rawFor {
		rawFor[i] = -1
	}
	rawTaken := make([]bool, len(raw))
	for _, c := range candidates {
		if rawTaken[c.raw] || rawFor[c.catalog] >= 0 {
			continue
		}
		rawTaken[c.raw] = true
		rawFor[c.catalog] = c.raw
	}

	aligned := make([]model.AlignedTrack, 0, len(raw))
	for ci, ri := range rawFor {
		if ri < 0 {
			continue
		}
		aligned = append(aligned, matched(raw[ri], catalog[ci], len(aligned)+1, opts))
	}
	for ri, r := range raw {
		if rawTaken[ri] {
			continue
		}
		aligned = append(aligned, unmatched(r, len(aligned)+1, opts))
	}

	return aligned
}

func matched(r model.RawLocator, c model.CatalogTrack, position int, opts Options) model.AlignedTrack {
	artist := c.Artist
	if artist == "" {
		artist = albumArtist(opts)
	}
	duration := c.Duration
	if duration == 0 {
		duration = r.Duration
	}
	return model.AlignedTrack{
		Locator:        r,
		TargetPosition: position,
		TargetTitle:    c.Title,
		TargetArtist:   artist,
		AlbumTitle:     opts.AlbumTitle,
		Disc:           c.Disc,
		DiscPosition:   c.DiscPosition,
		Duration:       duration,
	}
}

func unmatched(r model.RawLocator, position int, opts Options) model.AlignedTrack {
	title := trimArtistPrefix(r.HintTitle, opts.AlbumArtist)
	if title == "" {
		title = fmt.Sprintf("Track %d", position)
	}
	return model.AlignedTrack{
		Locator:        r,
		TargetPosition: position,
		TargetTitle:    title,
		TargetArtist:   albumArtist(opts),
		AlbumTitle:     opts.AlbumTitle,
		Duration:       r.Duration,
	}
}

func albumArtist(opts Options) string {
	if opts.AlbumArtist != "" {
		return opts.AlbumArtist
	}
	return model.UnknownArtist
}
