package audio

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/landonrogers/bippi/internal/model"
)

// PlaylistCreator generates playlist files in various formats.
//
// PlaylistCreator takes the results of an album run and generates a
// playlist of every successfully downloaded track, in album order. The
// output is a string that can be written to a file.
//
// Formats:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
//   - ZPL: XML format, Zune/Groove Music
//
// Example:
//
//	// Create M3U playlist with extended info
//	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist(album, results)
//	os.WriteFile(album.PlaylistPath, []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:180,Artist - Song Title
//	// 01 - Song Title.mp3
type PlaylistCreator struct {
	format   model.PlaylistFormat
	extended bool // For M3U: include EXTINF lines with duration/title
}

// playlistEntry is one line of a playlist.
type playlistEntry struct {
	file     string
	title    string
	artist   string
	duration float64
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// Parameters:
//   - format: The playlist format to generate
//   - extended: For M3U format, whether to include #EXTINF lines
//     (ignored for other formats)
func NewPlaylistCreator(format model.PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist generates playlist content for the successful results
// of an album run, ordered by track position.
//
// Returns the playlist as a string, ready to be written to a file.
// Track paths in the playlist are relative (just the filename),
// assuming the playlist file is in the same directory as the tracks.
//
// Example:
//
//	content := creator.CreatePlaylist(album, results)
//	err := os.WriteFile("/music/Artist/Album/Album.m3u", []byte(content), 0644)
func (p *PlaylistCreator) CreatePlaylist(album *model.Album, results []model.DownloadResult) string {
	entries := playlistEntries(results)

	switch p.format {
	case model.PlaylistFormatPLS:
		return p.createPLS(entries)
	case model.PlaylistFormatWPL:
		return p.createWPL(album, entries)
	case model.PlaylistFormatZPL:
		return p.createZPL(album, entries)
	default:
		return p.createM3U(entries)
	}
}

func playlistEntries(results []model.DownloadResult) []playlistEntry {
	ok := make([]model.DownloadResult, 0, len(results))
	for _, r := range results {
		if r.OK() {
			ok = append(ok, r)
		}
	}
	slices.SortStableFunc(ok, func(a, b model.DownloadResult) int {
		return a.Track.TargetPosition - b.Track.TargetPosition
	})

	entries := make([]playlistEntry, len(ok))
	for i, r := range ok {
		entries[i] = playlistEntry{
			file:     filepath.Base(r.Path),
			title:    r.Track.TargetTitle,
			artist:   r.Track.TargetArtist,
			duration: r.Track.Duration,
		}
	}
	return entries
}

// createM3U generates an M3U playlist.
//
// Standard M3U format:
//
//	filename1.mp3
//	filename2.mp3
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:180,Artist - Title
//	filename1.mp3
func (p *PlaylistCreator) createM3U(entries []playlistEntry) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, e := range entries {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s - %s\n", int(e.duration), e.artist, e.title))
		}
		sb.WriteString(e.file + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
// PLS format is an INI-style text file:
//
//	[playlist]
//	File1=filename1.mp3
//	Title1=Song Title
//	Length1=180
//	NumberOfEntries=2
//	Version=2
func (p *PlaylistCreator) createPLS(entries []playlistEntry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, e := range entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, e.file))
		sb.WriteString(fmt.Sprintf("Title%d=%s - %s\n", idx, e.artist, e.title))
		sb.WriteString(fmt.Sprintf("Length%d=%d\n", idx, int(e.duration)))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
//
// WPL is an XML-based SMIL format used by Windows Media Player.
func (p *PlaylistCreator) createWPL(album *model.Album, entries []playlistEntry) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(album.Title)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(e.file)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune/Groove Music playlist.
//
// ZPL is similar to WPL but includes additional metadata attributes
// like album title, artist, and track duration.
func (p *PlaylistCreator) createZPL(album *model.Album, entries []playlistEntry) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(album.Title)))
	sb.WriteString("    <meta name=\"Generator\" content=\"bippi\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(entries)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, e := range entries {
		duration := time.Duration(e.duration * float64(time.Second))
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\" albumTitle=\"%s\" albumArtist=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\" duration=\"%d\"/>\n",
			escapeXML(e.file),
			escapeXML(album.Title),
			escapeXML(album.Artist),
			escapeXML(e.title),
			escapeXML(e.artist),
			int(duration.Milliseconds())))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
