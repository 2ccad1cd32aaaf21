package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/landonrogers/bippi/internal/model"
	"github.com/samber/lo"
)

// convertRelease turns a release detail into a model.Release. Media
// without tracks are skipped; a release without any track is no match.
func convertRelease(detail *releaseDetail) (*model.Release, error) {
	release := &model.Release{
		ID:     detail.ID,
		Title:  detail.Title,
		Artist: formatArtistCredit(detail.ArtistCredit),
		Date:   detail.Date,
	}
	if release.Title == "" {
		release.Title = "Unknown Release"
	}
	if release.Artist == "" {
		release.Artist = model.UnknownArtist
	}

	discs := 0
	for mediumIndex, m := range detail.Media {
		if len(m.Tracks) == 0 {
			continue
		}
		discs++

		disc := m.Position
		if disc <= 0 {
			disc = mediumIndex + 1
		}

		for i, t := range m.Tracks {
			release.Tracks = append(release.Tracks, convertTrack(t, i, disc, len(release.Tracks)+1, release.Artist))
		}
	}

	if len(release.Tracks) == 0 {
		return nil, fmt.Errorf("release %s does not contain any tracks", detail.ID)
	}
	release.TotalDiscs = max(discs, 1)

	return release, nil
}

func convertTrack(t track, indexOnDisc, disc, overall int, albumArtist string) model.CatalogTrack {
	title := t.Title
	if title == "" && t.Recording != nil {
		title = t.Recording.Title
	}
	if title == "" {
		title = fmt.Sprintf("Track %d", indexOnDisc+1)
	}

	position := t.Position
	if position <= 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(t.Number)); err == nil && n > 0 {
			position = n
		} else {
			position = indexOnDisc + 1
		}
	}

	length := t.Length
	if length == 0 && t.Recording != nil {
		length = t.Recording.Length
	}

	artist := formatArtistCredit(t.ArtistCredit)
	if artist == "" {
		artist = albumArtist
	}

	return model.CatalogTrack{
		Position:     overall,
		Title:        title,
		Artist:       artist,
		Duration:     float64(length) / 1000,
		Disc:         disc,
		DiscPosition: position,
	}
}

// formatArtistCredit renders an artist credit the way MusicBrainz shows
// it ("Simon & Garfunkel", "Artist feat. Guest"). When the credit has no
// names of its own the artist names are joined with " & ".
func formatArtistCredit(credits []artistCredit) string {
	var b strings.Builder
	for _, credit := range credits {
		name := credit.Name
		if name == "" {
			name = credit.Artist.Name
		}
		b.WriteString(name)
		b.WriteString(credit.JoinPhrase)
	}
	if composed := strings.TrimSpace(b.String()); composed != "" {
		return composed
	}

	names := lo.FilterMap(credits, func(c artistCredit, _ int) (string, bool) {
		return c.Artist.Name, c.Artist.Name != ""
	})
	return strings.Join(names, " & ")
}
