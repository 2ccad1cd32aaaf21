package engine

import "context"

// Engine is the capability set the pipeline needs from the external
// media-download engine. The YtDlp type implements it by running the
// yt-dlp binary; tests substitute in-memory fakes.
type Engine interface {
	// ListEntries enumerates the entries behind locator without
	// downloading anything. A locator naming a single video yields a
	// one-entry listing.
	ListEntries(ctx context.Context, locator string, opts ListOptions) (*Listing, error)

	// Download fetches one locator, converts it to the requested format
	// and returns the path of the produced file.
	Download(ctx context.Context, req DownloadRequest) (string, error)

	// ProbeVersion returns the engine version string.
	ProbeVersion(ctx context.Context) (string, error)
}

// ListOptions tunes a listing.
type ListOptions struct {
	// NoPlaylist lists only the video of a watch URL that also names a
	// playlist (for example "watch?v=X&list=PL...").
	NoPlaylist bool
}

// Entry is one item of a flat listing.
type Entry struct {
	Type       string  `json:"_type"`
	IEKey      string  `json:"ie_key"`
	ID         string  `json:"id"`
	URL        string  `json:"url"`
	Title      string  `json:"title"`
	Duration   float64 `json:"duration"`
	Uploader   string  `json:"uploader"`
	Channel    string  `json:"channel"`
	PlaylistID string  `json:"playlist_id"`
}

// Author returns the uploader, falling back to the channel name.
func (e Entry) Author() string {
	if e.Uploader != "" {
		return e.Uploader
	}
	return e.Channel
}

// Listing is the result of a dry listing: a playlist with its entries in
// source order, a search result page, or a single video.
type Listing struct {
	Type       string  `json:"_type"`
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Uploader   string  `json:"uploader"`
	Channel    string  `json:"channel"`
	WebpageURL string  `json:"webpage_url"`
	Duration   float64 `json:"duration"`
	Entries    []Entry `json:"entries"`
}

// Author returns the uploader, falling back to the channel name.
func (l *Listing) Author() string {
	if l.Uploader != "" {
		return l.Uploader
	}
	return l.Channel
}

// Metadata is embedded by the engine's post-processor when the engine
// supports it. Zero values are omitted.
type Metadata struct {
	Artist      string
	AlbumArtist string
	Album       string
	Title       string
	Track       int
	TotalTracks int
	Disc        int
	TotalDiscs  int
	Date        string
}

// DownloadRequest describes one engine invocation.
type DownloadRequest struct {
	// Locator is the URL (or search expression) to download.
	Locator string

	// Format is the target audio format, e.g. "mp3" or "flac".
	Format string

	// OutputDir receives the produced file. It should be a directory
	// owned by this request so partial files never mix with finished
	// ones.
	OutputDir string

	// FileBase is the file name without extension.
	FileBase string

	// Metadata, when non-nil, is passed as explicit tag arguments.
	Metadata *Metadata
}
