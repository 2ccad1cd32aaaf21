package model

import (
	"path/filepath"
	"strings"

	ioutils "github.com/landonrogers/bippi/internal/io"
)

// UnknownArtist is used wherever no artist can be resolved.
const UnknownArtist = "Unknown Artist"

// Album describes the output set of one run and where its files go.
//
// Paths are computed once by NewAlbum from a PathConfig, using the
// placeholders {artist}, {album} and {year}.
//
// Example:
//
//	cfg := &PathConfig{
//	    Destination:  "/music",
//	    FolderFormat: "{artist}/{album}",
//	}
//	album := NewAlbum(KindAlbum, "Metallica", "Master of Puppets", "1986-03-03", cfg)
//	// album.Path = "/music/Metallica/Master of Puppets"
type Album struct {
	// Kind tells album runs from single-track runs. Single runs are not
	// numbered and are written directly into the destination.
	Kind Kind

	// Artist is the album artist.
	Artist string

	// Title is the album title.
	Title string

	// ReleaseDate is the catalog date as reported (YYYY, YYYY-MM or
	// YYYY-MM-DD). Empty when unknown.
	ReleaseDate string

	// ReleaseID is the catalog identifier, empty in degraded mode.
	ReleaseID string

	// TotalDiscs is the number of media with tracks, at least 1.
	TotalDiscs int

	// Path is the folder all track files are written into.
	Path string

	// ArtworkPath is where the cover image is saved when requested.
	ArtworkPath string

	// PlaylistPath is where the playlist file is written when requested.
	PlaylistPath string
}

// NewAlbum creates an Album with computed paths.
//
// Single-track albums ignore cfg.FolderFormat and resolve to
// cfg.Destination itself.
func NewAlbum(kind Kind, artist, title, releaseDate string, cfg *PathConfig) *Album {
	if artist == "" {
		artist = UnknownArtist
	}
	album := &Album{
		Kind:        kind,
		Artist:      artist,
		Title:       title,
		ReleaseDate: releaseDate,
		TotalDiscs:  1,
	}

	album.Path = album.parseFolderPath(cfg)
	album.PlaylistPath = album.parsePlaylistPath(cfg)
	album.ArtworkPath = album.parseArtworkPath(cfg)

	return album
}

// Year returns the four digit release year, or "" when unknown.
func (a *Album) Year() string {
	if len(a.ReleaseDate) >= 4 {
		return a.ReleaseDate[:4]
	}
	return ""
}

// MultiDisc reports whether the album spans more than one disc.
func (a *Album) MultiDisc() bool {
	return a.TotalDiscs > 1
}

// PathConfig holds path formatting settings for albums.
type PathConfig struct {
	// Destination is the base directory of all downloads.
	Destination string

	// FolderFormat is the album folder below Destination, using "/" as
	// separator. Empty writes albums directly into Destination.
	// Example: "{artist}/{album}"
	FolderFormat string

	// CoverArtFileNameFormat is the cover file name without extension.
	CoverArtFileNameFormat string

	// PlaylistFileNameFormat is the playlist file name without extension.
	PlaylistFileNameFormat string

	// PlaylistFormat determines the playlist file extension.
	PlaylistFormat PlaylistFormat
}

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS

	// PlaylistFormatWPL creates .wpl playlist files (Windows Media Player).
	PlaylistFormatWPL

	// PlaylistFormatZPL creates .zpl playlist files (Zune Media Player).
	PlaylistFormatZPL
)

// ParsePlaylistFormat maps a config value to a PlaylistFormat. Unknown
// values fall back to M3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	switch strings.ToLower(s) {
	case "pls":
		return PlaylistFormatPLS
	case "wpl":
		return PlaylistFormatWPL
	case "zpl":
		return PlaylistFormatZPL
	default:
		return PlaylistFormatM3U
	}
}

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatPLS:
		return ".pls"
	case PlaylistFormatWPL:
		return ".wpl"
	case PlaylistFormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// parseFolderPath computes the album folder from the config template.
// Each placeholder value is sanitized on its own so that a "/" in an
// album title cannot introduce a new directory level.
func (a *Album) parseFolderPath(cfg *PathConfig) string {
	if a.Kind == KindSingle || cfg.FolderFormat == "" {
		return cfg.Destination
	}

	var segments []string
	for _, segment := range strings.Split(cfg.FolderFormat, "/") {
		segment = a.expand(segment, true)
		if segment == "" {
			continue
		}
		segments = append(segments, ioutils.SanitizePathSegment(segment, "_"))
	}

	return filepath.Join(append([]string{cfg.Destination}, segments...)...)
}

// parsePlaylistPath computes the full playlist file path.
func (a *Album) parsePlaylistPath(cfg *PathConfig) string {
	format := cfg.PlaylistFileNameFormat
	if format == "" {
		format = "{album}"
	}
	name := ioutils.SanitizePathSegment(a.expand(format, false), "playlist")
	return filepath.Join(a.Path, name+cfg.PlaylistFormat.Extension())
}

// parseArtworkPath computes the cover image path. Cover art is always
// stored as JPEG.
func (a *Album) parseArtworkPath(cfg *PathConfig) string {
	format := cfg.CoverArtFileNameFormat
	if format == "" {
		format = "cover"
	}
	name := ioutils.SanitizePathSegment(a.expand(format, false), "cover")
	return filepath.Join(a.Path, name+".jpg")
}

// expand replaces placeholders in a template. With sanitize set, each
// substituted value is sanitized before insertion.
func (a *Album) expand(template string, sanitize bool) string {
	value := func(v, fallback string) string {
		if sanitize {
			return ioutils.SanitizePathSegment(v, fallback)
		}
		return v
	}

	template = strings.ReplaceAll(template, "{year}", a.Year())
	template = strings.ReplaceAll(template, "{artist}", value(a.Artist, UnknownArtist))
	template = strings.ReplaceAll(template, "{album}", value(a.Title, "Unknown Album"))
	return template
}
