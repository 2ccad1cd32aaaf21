package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
	ioutils "github.com/landonrogers/bippi/internal/io"
	"github.com/landonrogers/bippi/internal/model"
	"gopkg.in/yaml.v3"
)

// AppName is used for the config directory and the default User-Agent.
const AppName = "bippi"

// DefaultFormat is used when neither a flag nor the config names one.
const DefaultFormat = "mp3"

// MaxWorkers bounds the optional parallel download mode.
const MaxWorkers = 4

// SupportedFormats lists the audio formats the download engine can
// convert to.
var SupportedFormats = []string{"mp3", "m4a", "flac", "opus", "aac", "alac", "vorbis", "wav"}

// Settings holds all configuration options.
//
// Pointer-free optional values use the zero value for "unset":
// DefaultDestination and DefaultFormat are empty until the user sets them.
type Settings struct {
	// Download settings
	DefaultDestination string        `yaml:"default_destination,omitempty"`
	DefaultFormat      string        `yaml:"default_format,omitempty"`
	Workers            int           `yaml:"workers"`
	TrackTimeout       time.Duration `yaml:"track_timeout"`
	SkipExisting       bool          `yaml:"skip_existing"`

	// Matching
	MatchThreshold float64 `yaml:"match_threshold"`

	// File naming
	AlbumFolder            string `yaml:"album_folder"`
	CoverArtFileNameFormat string `yaml:"cover_art_file_name_format"`
	PlaylistFileNameFormat string `yaml:"playlist_file_name_format"`

	// Cover art settings
	EmbedCoverArt   bool `yaml:"embed_cover_art"`
	SaveCoverArt    bool `yaml:"save_cover_art"`
	CoverArtMaxSize int  `yaml:"cover_art_max_size"`

	// Playlist settings
	CreatePlaylist bool   `yaml:"create_playlist"`
	PlaylistFormat string `yaml:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `yaml:"m3u_extended"`

	// Tag settings
	ModifyTags bool `yaml:"modify_tags"`

	// External services
	YtDlpPath            string `yaml:"ytdlp_path"`
	MusicBrainzUserAgent string `yaml:"musicbrainz_user_agent"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Workers:      1,
		TrackTimeout: 10 * time.Minute,
		SkipExisting: true,

		MatchThreshold: 0.5,

		AlbumFolder:            "{artist}/{album}",
		CoverArtFileNameFormat: "cover",
		PlaylistFileNameFormat: "{album}",

		EmbedCoverArt:   true,
		SaveCoverArt:    false,
		CoverArtMaxSize: 500,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		ModifyTags: false,

		YtDlpPath:            "yt-dlp",
		MusicBrainzUserAgent: "bippi/0.1.0 (https://github.com/landonrogers/bippi)",
	}
}

// Load reads settings from a YAML file. A missing or empty file yields
// the defaults.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, &ConfigError{Message: "read " + path, Original: err}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return settings, nil
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, &ConfigError{Message: "parse " + path, Original: err}
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a YAML file, replacing it atomically.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return &ConfigError{Message: "encode settings", Original: err}
	}
	if err := ioutils.WriteFileAtomic(path, data, 0644); err != nil {
		return &ConfigError{Message: "write " + path, Original: err}
	}
	return nil
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	if s.DefaultFormat != "" && !IsSupportedFormat(s.DefaultFormat) {
		return &ConfigError{Message: fmt.Sprintf("unsupported default_format %q (supported: %s)",
			s.DefaultFormat, strings.Join(SupportedFormats, ", "))}
	}
	if s.Workers < 1 || s.Workers > MaxWorkers {
		return &ConfigError{Message: fmt.Sprintf("workers must be between 1 and %d, got %d", MaxWorkers, s.Workers)}
	}
	if s.MatchThreshold <= 0 || s.MatchThreshold > 1 {
		return &ConfigError{Message: fmt.Sprintf("match_threshold must be in (0, 1], got %v", s.MatchThreshold)}
	}
	if s.TrackTimeout < 0 {
		return &ConfigError{Message: "track_timeout must not be negative"}
	}
	if s.CoverArtMaxSize < 0 {
		return &ConfigError{Message: "cover_art_max_size must not be negative"}
	}
	return nil
}

// IsSupportedFormat reports whether format is a known audio format.
func IsSupportedFormat(format string) bool {
	return slices.Contains(SupportedFormats, strings.ToLower(format))
}

// Format returns the effective audio format.
func (s *Settings) Format() string {
	if s.DefaultFormat != "" {
		return strings.ToLower(s.DefaultFormat)
	}
	return DefaultFormat
}

// Destination returns the effective download directory: the configured
// default, else the user's music directory, else ~/music.
func (s *Settings) Destination() string {
	if s.DefaultDestination != "" {
		return s.DefaultDestination
	}
	if xdg.UserDirs.Music != "" {
		return xdg.UserDirs.Music
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "music")
	}
	return "."
}

// ToPathConfig converts settings to a PathConfig rooted at destination.
func (s *Settings) ToPathConfig(destination string) *model.PathConfig {
	return &model.PathConfig{
		Destination:            destination,
		FolderFormat:           s.AlbumFolder,
		CoverArtFileNameFormat: s.CoverArtFileNameFormat,
		PlaylistFileNameFormat: s.PlaylistFileNameFormat,
		PlaylistFormat:         model.ParsePlaylistFormat(s.PlaylistFormat),
	}
}

// Clone returns a copy of s.
func (s *Settings) Clone() *Settings {
	c := *s
	return &c
}
