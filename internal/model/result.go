package model

// DownloadResult is the outcome of one attempt to download an AlignedTrack.
//
// A result is either a success, in which case Path is set, or a failure,
// in which case Reason is set. TagWarning may accompany a success: the
// file exists but its embedded tags could not be completed.
type DownloadResult struct {
	Track AlignedTrack

	// Path is the final location of the audio file on success.
	Path string

	// Reason describes why the attempt failed. Empty on success.
	Reason string

	// TagWarning describes a non-fatal tagging problem.
	TagWarning string

	// Skipped is set for tracks that were never started because the run
	// was interrupted.
	Skipped bool
}

// Succeeded creates a successful result.
func Succeeded(track AlignedTrack, path string) DownloadResult {
	return DownloadResult{Track: track, Path: path}
}

// Failed creates a failed result.
func Failed(track AlignedTrack, reason string) DownloadResult {
	if reason == "" {
		reason = "unknown error"
	}
	return DownloadResult{Track: track, Reason: reason}
}

// NotStarted creates the result of a track the run never reached.
func NotStarted(track AlignedTrack) DownloadResult {
	return DownloadResult{Track: track, Reason: "not started", Skipped: true}
}

// OK reports whether the download succeeded.
func (r DownloadResult) OK() bool {
	return r.Reason == "" && r.Path != ""
}
