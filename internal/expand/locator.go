package expand

import (
	"strings"

	"github.com/landonrogers/bippi/internal/engine"
	"github.com/landonrogers/bippi/internal/model"
)

const youtubeBase = "https://www.youtube.com"

// LooksLikeURL reports whether input should be handed to the engine as
// is rather than searched for.
func LooksLikeURL(input string) bool {
	lowered := strings.ToLower(strings.TrimSpace(input))
	return strings.HasPrefix(lowered, "http://") ||
		strings.HasPrefix(lowered, "https://") ||
		strings.HasPrefix(lowered, "ytsearch") ||
		strings.HasPrefix(lowered, "www.") ||
		strings.Contains(lowered, "://")
}

// LooksLikePlaylist reports whether a URL names a playlist.
func LooksLikePlaylist(locator string) bool {
	return strings.Contains(strings.ToLower(locator), "list=")
}

// NormalizePlaylistURL turns the relative or bare playlist references
// found in search listings into absolute YouTube URLs.
//
// Example:
//
//	NormalizePlaylistURL("/playlist?list=PL1", "")  // "https://www.youtube.com/playlist?list=PL1"
//	NormalizePlaylistURL("PL1", "PL1")              // "https://www.youtube.com/playlist?list=PL1"
func NormalizePlaylistURL(url, fallbackID string) string {
	switch {
	case strings.Contains(url, "://"):
		return url
	case strings.HasPrefix(url, "/playlist?"), strings.HasPrefix(url, "/watch?"):
		return youtubeBase + url
	case strings.HasPrefix(url, "playlist?"), strings.HasPrefix(url, "watch?"):
		return youtubeBase + "/" + url
	case fallbackID != "":
		return youtubeBase + "/playlist?list=" + fallbackID
	default:
		return youtubeBase + "/playlist?list=" + url
	}
}

// playlistURLFromEntry returns the playlist URL of a search entry, or ""
// when the entry is not a playlist.
func playlistURLFromEntry(e engine.Entry) string {
	fallbackID := e.PlaylistID
	if fallbackID == "" {
		fallbackID = e.ID
	}

	if e.URL != "" {
		if strings.Contains(e.URL, "://") && strings.Contains(e.URL, "list=") {
			return e.URL
		}
		switch {
		case e.Type == "playlist",
			e.IEKey == "YoutubeTab", e.IEKey == "YoutubePlaylist", e.IEKey == "YoutubeMix":
			return NormalizePlaylistURL(e.URL, fallbackID)
		}
	}

	for _, prefix := range []string{"PL", "OL", "RD"} {
		if strings.HasPrefix(fallbackID, prefix) {
			return youtubeBase + "/playlist?list=" + fallbackID
		}
	}
	return ""
}

// entryURL returns the downloadable URL of a listing entry. Flat
// listings sometimes carry only a video id.
func entryURL(e engine.Entry) string {
	if strings.Contains(e.URL, "://") {
		return e.URL
	}
	id := e.ID
	if id == "" {
		id = e.URL
	}
	if id == "" {
		return ""
	}
	return youtubeBase + "/watch?v=" + id
}

// BuildAlbumSearch returns the engine search expression used to find an
// album playlist for free text.
func BuildAlbumSearch(query string) string {
	return "ytsearch10:" + strings.TrimSpace(query) + " album"
}

// BuildSingleSearchQuery returns the engine search expression for a
// single track. "Artist - Song" is searched as "Artist Song", and music
// videos are excluded.
//
// Example:
//
//	BuildSingleSearchQuery("Daft Punk - One More Time")
//	// ytsearch1:Daft Punk One More Time audio -"music video"
func BuildSingleSearchQuery(query string) string {
	terms := strings.TrimSpace(query)
	if artist, song, ok := model.SplitArtistTitle(terms); ok {
		terms = artist + " " + song
	}
	if !strings.Contains(strings.ToLower(terms), "audio") {
		terms += " audio"
	}
	terms += ` -"music video"`
	return "ytsearch1:" + strings.TrimSpace(terms)
}

// StripTopicSuffix removes the " - Topic" suffix YouTube appends to
// auto-generated artist channels.
func StripTopicSuffix(uploader string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(uploader), " - Topic"))
}
