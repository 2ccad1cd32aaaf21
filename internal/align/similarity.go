package align

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// annotations matches bracketed title annotations such as "(Live)",
// "[Remastered 2011]" or "{Bonus}".
var annotations = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]|\{[^}]*\}`)

type tokenSet map[string]struct{}

// normalize folds case, strips diacritics and removes bracketed
// annotations.
func normalize(s string) string {
	s = annotations.ReplaceAllString(s, " ")

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}
	return cases.Fold().String(s)
}

// stripArtistPrefix removes a leading "Artist - " from a source title,
// the usual shape of uploaded album tracks.
func stripArtistPrefix(title, artist string) string {
	if artist == "" {
		return title
	}
	for _, sep := range []string{" - ", " – ", " — "} {
		prefix := normalize(artist) + sep
		if strings.HasPrefix(title, prefix) {
			return strings.TrimPrefix(title, prefix)
		}
	}
	return title
}

// trimArtistPrefix is stripArtistPrefix for display titles: the artist is
// compared after normalization and the rest of title is returned as
// written. A title that is only the prefix is kept.
func trimArtistPrefix(title, artist string) string {
	if artist == "" {
		return title
	}
	want := strings.TrimSpace(normalize(artist))
	for _, sep := range []string{" - ", " – ", " — "} {
		i := strings.Index(title, sep)
		if i <= 0 || strings.TrimSpace(normalize(title[:i])) != want {
			continue
		}
		if rest := strings.TrimSpace(title[i+len(sep):]); rest != "" {
			return rest
		}
	}
	return title
}

func tokenize(normalized string) tokenSet {
	set := make(tokenSet)
	for _, tok := range strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		set[tok] = struct{}{}
	}
	return set
}

// hintTokens tokenizes a source title.
func hintTokens(hint, albumArtist string) tokenSet {
	return tokenize(stripArtistPrefix(normalize(hint), albumArtist))
}

// titleTokens tokenizes a catalog title.
func titleTokens(title string) tokenSet {
	return tokenize(normalize(title))
}

// dice returns the Sørensen–Dice coefficient of two token sets, in [0, 1].
// Two empty sets score 0.
func dice(a, b tokenSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			common++
		}
	}
	return 2 * float64(common) / float64(len(a)+len(b))
}

// Similarity scores how likely a source title names a catalog title.
// Case, diacritics, bracketed annotations and a leading
// "albumArtist - " prefix are ignored.
//
// Example:
//
//	Similarity("Daft Punk - One More Time (Official Audio)", "One More Time", "Daft Punk") // 1
func Similarity(hint, title, albumArtist string) float64 {
	return dice(hintTokens(hint, albumArtist), titleTokens(title))
}
