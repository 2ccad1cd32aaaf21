package report

import (
	"cmp"
	"slices"

	"github.com/landonrogers/bippi/internal/model"
	"github.com/samber/lo"
)

// Exit codes of a run.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// Options carries run-level facts that are not part of the results.
type Options struct {
	// Degraded is set when the run continued without catalog metadata.
	Degraded bool

	// Warnings are run-level messages, such as the degraded-mode reason.
	Warnings []string

	// Interrupted is set when the run was cancelled.
	Interrupted bool

	// PlaylistPath and ArtworkPath are set when those files were written.
	PlaylistPath string
	ArtworkPath  string
}

// Failure is a track that could not be downloaded.
type Failure struct {
	Position int
	Title    string
	Reason   string
}

// TagWarning is a downloaded track whose tags could not be completed.
type TagWarning struct {
	Position int
	Title    string
	Path     string
	Message  string
}

// Report is the summary of one run.
type Report struct {
	Kind   model.Kind
	Artist string
	Album  string
	Folder string

	Succeeded int
	Failed    int
	Skipped   int

	// Paths are the written audio files in album order.
	Paths []string

	Failures    []Failure
	TagWarnings []TagWarning

	Degraded    bool
	Warnings    []string
	Interrupted bool

	PlaylistPath string
	ArtworkPath  string
}

// Build summarizes results.
func Build(album *model.Album, results []model.DownloadResult, opts Options) *Report {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b model.DownloadResult) int {
		return cmp.Compare(a.Track.TargetPosition, b.Track.TargetPosition)
	})

	r := &Report{
		Degraded:     opts.Degraded,
		Warnings:     slices.Clone(opts.Warnings),
		Interrupted:  opts.Interrupted,
		PlaylistPath: opts.PlaylistPath,
		ArtworkPath:  opts.ArtworkPath,
	}
	if album != nil {
		r.Kind = album.Kind
		r.Artist = album.Artist
		r.Album = album.Title
		r.Folder = album.Path
	}

	for _, res := range sorted {
		switch {
		case res.OK():
			r.Succeeded++
		case res.Skipped:
			r.Skipped++
		default:
			r.Failed++
		}
	}

	r.Paths = lo.FilterMap(sorted, func(res model.DownloadResult, _ int) (string, bool) {
		return res.Path, res.OK()
	})
	r.Failures = lo.FilterMap(sorted, func(res model.DownloadResult, _ int) (Failure, bool) {
		return Failure{
			Position: res.Track.TargetPosition,
			Title:    res.Track.TargetTitle,
			Reason:   res.Reason,
		}, !res.OK() && !res.Skipped
	})
	r.TagWarnings = lo.FilterMap(sorted, func(res model.DownloadResult, _ int) (TagWarning, bool) {
		return TagWarning{
			Position: res.Track.TargetPosition,
			Title:    res.Track.TargetTitle,
			Path:     res.Path,
			Message:  res.TagWarning,
		}, res.OK() && res.TagWarning != ""
	})

	return r
}

// Total returns the number of tracks of the run.
func (r *Report) Total() int {
	return r.Succeeded + r.Failed + r.Skipped
}

// ExitCode maps the report to a process exit code: 130 when interrupted,
// 1 when no track succeeded and 0 otherwise.
func (r *Report) ExitCode() int {
	switch {
	case r.Interrupted:
		return ExitInterrupted
	case r.Succeeded == 0:
		return ExitFailure
	default:
		return ExitOK
	}
}
