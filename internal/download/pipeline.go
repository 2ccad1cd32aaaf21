package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/landonrogers/bippi/internal/align"
	"github.com/landonrogers/bippi/internal/catalog"
	"github.com/landonrogers/bippi/internal/config"
	"github.com/landonrogers/bippi/internal/expand"
	ioutils "github.com/landonrogers/bippi/internal/io"
	"github.com/landonrogers/bippi/internal/model"
	"github.com/landonrogers/bippi/internal/report"
	"golang.org/x/sync/errgroup"
)

// ErrNoTarget is returned when a request names nothing to download.
var ErrNoTarget = errors.New("nothing to download: no target given")

// autoAlbumPrefix is how auto-generated album playlists are titled.
const autoAlbumPrefix = "Album - "

// Request is one single or album download request.
type Request struct {
	// Target is an alias name, a URL or free text.
	Target string

	// Format overrides the configured audio format.
	Format string

	// Destination overrides the configured download directory.
	Destination string

	// ReleaseID pins the catalog release instead of searching for it.
	ReleaseID string

	// Workers overrides the configured number of parallel downloads.
	Workers int

	// Playlist writes a playlist file even when the config does not ask
	// for one.
	Playlist bool
}

// Album downloads every track of an album request.
//
// Text requests are looked up in the catalog while the source is being
// searched. URL requests are listed first and then looked up by the
// playlist title. When the catalog has no usable release the run
// continues in degraded mode with source titles.
//
// The returned error is non-nil only when nothing could be attempted;
// per-track failures are part of the report.
func (m *Manager) Album(ctx context.Context, req Request) (*report.Report, error) {
	format, dest, err := m.prepare(req)
	if err != nil {
		return nil, err
	}

	target := strings.TrimSpace(req.Target)
	if a, ok := m.resolve(target); ok {
		target = a.Locator
	}
	return m.album(ctx, req, target, format, dest)
}

// Single downloads one track. An alias saved as an album is downloaded
// as an album.
func (m *Manager) Single(ctx context.Context, req Request) (*report.Report, error) {
	format, dest, err := m.prepare(req)
	if err != nil {
		return nil, err
	}

	target := strings.TrimSpace(req.Target)
	if a, ok := m.resolve(target); ok {
		target = a.Locator
		if a.Kind == model.KindAlbum {
			return m.album(ctx, req, target, format, dest)
		}
	}

	if !expand.LooksLikeURL(target) {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Searching for '%s' (first match)", target), Level: LevelInfo})
	}
	exp, err := m.expander.ExpandSingle(ctx, target)
	if err != nil {
		return nil, err
	}

	loc := exp.Locators[0]
	title := strings.TrimSpace(exp.Title)
	if title == "" {
		title = loc.HintTitle
	}
	album := model.NewAlbum(model.KindSingle, expand.StripTopicSuffix(exp.Uploader), title, "", m.settings.ToPathConfig(dest))
	track := model.AlignedTrack{
		Locator:        loc,
		TargetPosition: 1,
		TargetTitle:    title,
		TargetArtist:   album.Artist,
		Duration:       loc.Duration,
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Saving audio to %s as %s", album.Path, format), Level: LevelInfo})
	results := m.Run(ctx, album, []model.AlignedTrack{track}, format, WithWorkers(1))

	r := report.Build(album, results, report.Options{Interrupted: ctx.Err() != nil})
	if r.Succeeded == 1 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Successfully downloaded: %s", title), Level: LevelSuccess})
	}
	return r, nil
}

func (m *Manager) album(ctx context.Context, req Request, target, format, dest string) (*report.Report, error) {
	var (
		exp     *expand.Expansion
		release *model.Release
		metaErr error
	)

	if expand.LooksLikeURL(target) {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Listing %s", target), Level: LevelInfo})
		var err error
		exp, err = m.expander.Expand(ctx, target)
		if err != nil {
			return nil, err
		}
		release, metaErr = m.reconcile(ctx, req.ReleaseID, playlistQuery(exp))
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Searching for '%s'", target), Level: LevelInfo})
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			exp, err = m.expander.Expand(gctx, target)
			return err
		})
		g.Go(func() error {
			release, metaErr = m.reconcile(gctx, req.ReleaseID, target)
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	var warnings []string
	warn := func(msg string) {
		warnings = append(warnings, msg)
		m.progress(ProgressEvent{Message: msg, Level: LevelWarning})
	}

	if metaErr == nil && release == nil {
		metaErr = &catalog.MetadataError{Err: catalog.ErrNoMatch}
	}
	if metaErr != nil {
		release = nil
		warn(fmt.Sprintf("Metadata lookup failed (%v), using source titles", metaErr))
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Found release: %s - %s (%d tracks)", release.Artist, release.Title, len(release.Tracks)), Level: LevelInfo})
		if len(release.Tracks) != len(exp.Locators) {
			warn(fmt.Sprintf("Source has %d entries but the release has %d tracks, matching by title", len(exp.Locators), len(release.Tracks)))
		}
	}

	artist, title, date := describeAlbum(target, exp, release)
	album := model.NewAlbum(model.KindAlbum, artist, title, date, m.settings.ToPathConfig(dest))
	var catalogTracks []model.CatalogTrack
	if release != nil {
		album.ReleaseID = release.ID
		album.TotalDiscs = max(release.TotalDiscs, 1)
		catalogTracks = release.Tracks
	}
	if err := ioutils.EnsureDir(album.Path); err != nil {
		return nil, fmt.Errorf("create album folder: %w", err)
	}

	tracks := align.Align(exp.Locators, catalogTracks, align.Options{
		AlbumTitle:  album.Title,
		AlbumArtist: artist,
		Threshold:   m.settings.MatchThreshold,
	})

	artwork, artworkPath := m.coverArt(ctx, album)

	workers := req.Workers
	if workers <= 0 {
		workers = m.settings.Workers
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Saving %d tracks to %s as %s", len(tracks), album.Path, format), Level: LevelInfo})
	results := m.Run(ctx, album, tracks, format, WithWorkers(workers), WithArtwork(artwork))

	playlistPath := m.writePlaylist(album, results, req.Playlist)

	r := report.Build(album, results, report.Options{
		Degraded:     metaErr != nil,
		Warnings:     warnings,
		Interrupted:  ctx.Err() != nil,
		PlaylistPath: playlistPath,
		ArtworkPath:  artworkPath,
	})
	if r.Succeeded == r.Total() {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Successfully downloaded album: %s", album.Title), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Finished %s, some tracks failed", album.Title), Level: LevelWarning})
	}
	return r, nil
}

// reconcile fetches the pinned release, or searches the catalog for query.
func (m *Manager) reconcile(ctx context.Context, releaseID, query string) (*model.Release, error) {
	if releaseID != "" {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching release %s", releaseID), Level: LevelVerbose})
		return m.catalog.FetchRelease(ctx, releaseID)
	}
	if strings.TrimSpace(query) == "" {
		return nil, &catalog.MetadataError{Err: catalog.ErrNoMatch}
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Looking up '%s' on MusicBrainz", query), Level: LevelVerbose})
	return m.catalog.FetchAlbumMetadata(ctx, query)
}

// prepare validates the request and returns the effective format and
// destination.
func (m *Manager) prepare(req Request) (format, dest string, err error) {
	if strings.TrimSpace(req.Target) == "" {
		return "", "", ErrNoTarget
	}

	format = strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = m.settings.Format()
	}
	if !config.IsSupportedFormat(format) {
		return "", "", &config.ConfigError{Message: fmt.Sprintf("unsupported format %q (supported: %s)",
			format, strings.Join(config.SupportedFormats, ", "))}
	}

	dest = req.Destination
	if dest == "" {
		dest = m.settings.Destination()
	}
	if dest, err = filepath.Abs(dest); err != nil {
		return "", "", err
	}
	if err := ioutils.EnsureDir(dest); err != nil {
		return "", "", fmt.Errorf("create destination: %w", err)
	}
	return format, dest, nil
}

// describeAlbum picks the album artist, title and date: the release when
// there is one, else the request text, else the listed playlist.
func describeAlbum(target string, exp *expand.Expansion, release *model.Release) (artist, title, date string) {
	if release != nil {
		return release.Artist, release.Title, release.Date
	}
	if !expand.LooksLikeURL(target) {
		if a, t, ok := model.SplitArtistTitle(target); ok {
			return a, t, ""
		}
	}

	title = playlistTitle(exp.Title)
	if title == "" {
		title = target
	}
	return expand.StripTopicSuffix(exp.Uploader), title, ""
}

// playlistQuery builds a catalog query from a listed playlist.
func playlistQuery(exp *expand.Expansion) string {
	title := playlistTitle(exp.Title)
	if title == "" {
		return ""
	}
	artist := expand.StripTopicSuffix(exp.Uploader)
	if artist == "" || strings.Contains(title, " - ") {
		return title
	}
	return artist + " - " + title
}

func playlistTitle(title string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(title), autoAlbumPrefix))
}
