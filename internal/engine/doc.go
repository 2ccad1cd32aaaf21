// Package engine wraps the external media-download engine (yt-dlp).
//
// The pipeline only talks to the Engine interface:
//   - ListEntries: a dry, flat listing of a playlist, search or video
//   - Download: one audio download converted to a target format
//   - ProbeVersion: used to decide whether explicit tag arguments can be
//     passed to the engine's post-processor
//
// Failures of a single invocation are reported as *InvocationError with
// the exit code and the tail of the engine's diagnostics. A missing
// binary is reported as ErrNotInstalled.
//
// Example:
//
//	ytdlp := engine.NewYtDlp(settings.YtDlpPath)
//	version, err := ytdlp.ProbeVersion(ctx)
//	if errors.Is(err, engine.ErrNotInstalled) {
//	    return err
//	}
//	useTags := engine.SupportsMetadataArgs(version)
package engine
