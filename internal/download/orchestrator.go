package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/landonrogers/bippi/internal/audio"
	"github.com/landonrogers/bippi/internal/config"
	"github.com/landonrogers/bippi/internal/engine"
	ioutils "github.com/landonrogers/bippi/internal/io"
	"github.com/landonrogers/bippi/internal/model"
	"golang.org/x/sync/errgroup"
)

// stagingPrefix names the per-track working directories inside the album
// folder.
const stagingPrefix = ".bippi-"

type runConfig struct {
	workers int
	artwork []byte
}

// RunOption configures a single Run.
type RunOption func(*runConfig)

// WithWorkers sets the number of tracks downloaded in parallel. Values
// are clamped to 1..config.MaxWorkers.
func WithWorkers(n int) RunOption {
	return func(rc *runConfig) { rc.workers = n }
}

// WithArtwork embeds the given JPEG cover in every downloaded file.
func WithArtwork(data []byte) RunOption {
	return func(rc *runConfig) { rc.artwork = data }
}

// Run downloads tracks into album.Path and returns one result per track,
// in the order of tracks.
//
// A failing track never stops the run. Once ctx is cancelled no further
// track is started; tracks that were never reached are reported as
// not started.
func (m *Manager) Run(ctx context.Context, album *model.Album, tracks []model.AlignedTrack, format string, opts ...RunOption) []model.DownloadResult {
	rc := runConfig{workers: m.settings.Workers}
	for _, opt := range opts {
		opt(&rc)
	}
	rc.workers = min(max(rc.workers, 1), config.MaxWorkers)

	atomic.StoreInt32(&m.totalFiles, int32(len(tracks)))
	atomic.StoreInt32(&m.downloadedFiles, 0)
	atomic.StoreInt32(&m.failedFiles, 0)

	results := make([]model.DownloadResult, len(tracks))
	started := make([]bool, len(tracks))

	if err := ioutils.EnsureDir(album.Path); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating directory: %v", err), Level: LevelError})
		for i, track := range tracks {
			results[i] = model.Failed(track, "create directory: "+err.Error())
		}
		atomic.StoreInt32(&m.failedFiles, int32(len(tracks)))
		return results
	}

	metadataArgs := m.probeMetadataArgs(ctx)
	bases := uniqueBases(album, tracks)

	g := new(errgroup.Group)
	g.SetLimit(rc.workers)

	for i, track := range tracks {
		if ctx.Err() != nil {
			break
		}
		i, track := i, track
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			started[i] = true
			m.progress(ProgressEvent{Message: fmt.Sprintf("Downloading %d/%d: %s", i+1, len(tracks), track.TargetTitle), Level: LevelInfo})

			res := m.downloadTrack(ctx, album, track, bases[i], format, len(tracks), metadataArgs, rc.artwork)
			results[i] = res
			if res.OK() {
				atomic.AddInt32(&m.downloadedFiles, 1)
			} else {
				atomic.AddInt32(&m.failedFiles, 1)
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading %s: %s", track.TargetTitle, res.Reason), Level: LevelError})
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, track := range tracks {
		if !started[i] {
			results[i] = model.NotStarted(track)
		}
	}
	return results
}

// downloadTrack runs one engine invocation in a private staging folder
// and moves the produced file into place.
func (m *Manager) downloadTrack(ctx context.Context, album *model.Album, track model.AlignedTrack, base, format string,
	totalTracks int, metadataArgs bool, artwork []byte) model.DownloadResult {
	final := filepath.Join(album.Path, base+"."+engine.FileExtension(format))
	if m.settings.SkipExisting && ioutils.Exists(final) {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", filepath.Base(final)), Level: LevelVerbose})
		return model.Succeeded(track, final)
	}

	staging := filepath.Join(album.Path, stagingPrefix+uuid.NewString())
	if err := ioutils.EnsureDir(staging); err != nil {
		return model.Failed(track, "create staging directory: "+err.Error())
	}
	defer os.RemoveAll(staging)

	trackCtx := ctx
	if m.settings.TrackTimeout > 0 {
		var cancel context.CancelFunc
		trackCtx, cancel = context.WithTimeout(ctx, m.settings.TrackTimeout)
		defer cancel()
	}

	info := audio.NewTagInfo(track, album, totalTracks)
	req := engine.DownloadRequest{
		Locator:   track.Locator.URL,
		Format:    format,
		OutputDir: staging,
		FileBase:  base,
	}
	if metadataArgs {
		req.Metadata = engineMetadata(info)
	}

	produced, err := m.engine.Download(trackCtx, req)
	if err != nil {
		return model.Failed(track, failureReason(ctx, err))
	}

	dest := filepath.Join(album.Path, base+filepath.Ext(produced))
	if err := ioutils.MoveFile(produced, dest); err != nil {
		return model.Failed(track, err.Error())
	}
	result := model.Succeeded(track, dest)

	if !metadataArgs || m.settings.ModifyTags || len(artwork) > 0 {
		if err := m.tagger.Apply(dest, info, artwork); err != nil {
			result.TagWarning = err.Error()
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", track.TargetTitle, err), Level: LevelWarning})
		}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s", filepath.Base(dest)), Level: LevelVerbose})
	return result
}

// uniqueBases returns the file base of every track, suffixing " (n)" to
// names that collide case-insensitively within the run.
func uniqueBases(album *model.Album, tracks []model.AlignedTrack) []string {
	used := make(map[string]bool, len(tracks))
	bases := make([]string, len(tracks))
	for i, track := range tracks {
		base := track.FileBase(album)
		candidate := base
		for n := 2; used[strings.ToLower(candidate)]; n++ {
			candidate = fmt.Sprintf("%s (%d)", base, n)
		}
		used[strings.ToLower(candidate)] = true
		bases[i] = candidate
	}
	return bases
}

func engineMetadata(info audio.TagInfo) *engine.Metadata {
	return &engine.Metadata{
		Artist:      info.Artist,
		AlbumArtist: info.AlbumArtist,
		Album:       info.Album,
		Title:       info.Title,
		Track:       info.Track,
		TotalTracks: info.TotalTracks,
		Disc:        info.Disc,
		TotalDiscs:  info.TotalDiscs,
		Date:        info.Date,
	}
}

// failureReason describes err, or reports the track as interrupted when
// the run itself was cancelled.
func failureReason(ctx context.Context, err error) string {
	if ctx.Err() != nil {
		return "interrupted"
	}
	return err.Error()
}
