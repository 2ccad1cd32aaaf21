package engine

import (
	"fmt"
	"path/filepath"
	"strings"
)

func listArgs(locator string, opts ListOptions) []string {
	args := []string{
		"--flat-playlist",
		"-J",
		"--no-warnings",
	}
	if opts.NoPlaylist {
		args = append(args, "--no-playlist")
	}
	return append(args, "--", locator)
}

func downloadArgs(req DownloadRequest) []string {
	args := []string{
		"-x",
		"--audio-format", strings.ToLower(req.Format),
		"--output", filepath.Join(req.OutputDir, req.FileBase+".%(ext)s"),
		"--embed-metadata",
		"--no-playlist",
		"--continue",
		"--no-warnings",
	}
	if ppa := postprocessorArgs(req.Metadata); ppa != "" {
		args = append(args, "--postprocessor-args", ppa)
	}
	return append(args, "--", req.Locator)
}

// postprocessorArgs renders md as ffmpeg -metadata arguments. yt-dlp
// splits the value shell-style, so every value is double quoted.
func postprocessorArgs(md *Metadata) string {
	if md == nil {
		return ""
	}

	var parts []string
	add := func(key, value string) {
		if value == "" {
			return
		}
		parts = append(parts, fmt.Sprintf(`-metadata %s="%s"`, key, quoteValue(value)))
	}

	add("artist", md.Artist)
	add("album", md.Album)
	add("album_artist", md.AlbumArtist)
	add("title", md.Title)
	if md.Track > 0 {
		if md.TotalTracks > 0 {
			add("track", fmt.Sprintf("%02d/%d", md.Track, md.TotalTracks))
		} else {
			add("track", fmt.Sprintf("%02d", md.Track))
		}
	}
	if md.Disc > 0 {
		if md.TotalDiscs > 1 {
			add("disc", fmt.Sprintf("%d/%d", md.Disc, md.TotalDiscs))
		} else {
			add("disc", fmt.Sprintf("%d", md.Disc))
		}
	}
	add("date", md.Date)

	if len(parts) == 0 {
		return ""
	}
	return "ffmpeg:" + strings.Join(parts, " ")
}

func quoteValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
