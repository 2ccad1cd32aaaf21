package catalog

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"github.com/landonrogers/bippi/internal/model"
	"golang.org/x/text/cases"
)

// fold returns s case-folded. A Caser is not safe for concurrent use, so
// one is created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// BuildSearchQuery turns user input into a MusicBrainz release query.
// "Artist - Album" becomes a fielded query; anything else is passed
// through as free text.
//
// Example:
//
//	BuildSearchQuery("Metallica - Master of Puppets")
//	// release:"Master of Puppets" AND artist:"Metallica"
func BuildSearchQuery(raw string) string {
	raw = strings.TrimSpace(raw)
	if artist, album, ok := model.SplitArtistTitle(raw); ok {
		return `release:"` + escapeQuery(album) + `" AND artist:"` + escapeQuery(artist) + `"`
	}
	return raw
}

func escapeQuery(value string) string {
	return strings.ReplaceAll(value, `"`, `\"`)
}

// selectRelease picks the best candidate for query.
//
// An exact case-insensitive match of both artist and album wins.
// Otherwise the candidate with the highest token overlap against the
// query is chosen. Ties go to the earliest release date (a missing date
// sorts last) and then to search order.
func selectRelease(query string, candidates []releaseResult) (releaseResult, bool) {
	if len(candidates) == 0 {
		return releaseResult{}, false
	}

	if artist, album, ok := model.SplitArtistTitle(query); ok {
		for _, c := range candidates {
			if fold(c.Title) == fold(album) &&
				fold(formatArtistCredit(c.ArtistCredit)) == fold(artist) {
				return c, true
			}
		}
	}

	queryTokens := tokenize(query)
	type scored struct {
		index int
		score int
		date  string
	}
	ranked := make([]scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = scored{
			index: i,
			score: overlap(queryTokens, tokenize(formatArtistCredit(c.ArtistCredit)+" "+c.Title)),
			date:  c.Date,
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		if a.score != b.score {
			return cmp.Compare(b.score, a.score)
		}
		if c := compareDates(a.date, b.date); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})

	return candidates[ranked[0].index], true
}

// compareDates orders ISO dates ascending with empty dates last.
// Partial dates ("1986", "1986-03") compare as prefixes.
func compareDates(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return strings.Compare(a, b)
}

// tokenize returns the set of case-folded alphanumeric words in s.
func tokenize(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, field := range strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		tokens[field] = struct{}{}
	}
	return tokens
}

func overlap(a, b map[string]struct{}) int {
	n := 0
	for token := range a {
		if _, ok := b[token]; ok {
			n++
		}
	}
	return n
}
