// Package audio provides audio file manipulation services including
// tag writing and playlist generation.
//
// # Tagging
//
// Use the Tagger to write tags to downloaded files:
//
//	tagger := audio.NewTagger()
//	err := tagger.Apply(path, audio.NewTagInfo(track, album, total), coverJPEG)
//
// The tagger supports:
//   - MP3 through ID3v2 frames (TPE1, TPE2, TALB, TIT2, TRCK, TPOS, TYER, TDRC, APIC)
//   - FLAC through Vorbis comments and a picture block
//
// Any other format yields a *TagError wrapping ErrUnsupportedFormat.
// The file is never removed because tagging failed.
//
// # Playlist Generation
//
// Generate playlists in various formats:
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist(album, results)
//	os.WriteFile(album.PlaylistPath, []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
