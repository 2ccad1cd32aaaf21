package model

import (
	"path/filepath"
	"testing"
)

func testPathConfig() *PathConfig {
	return &PathConfig{
		Destination:            "/music",
		FolderFormat:           "{artist}/{album}",
		CoverArtFileNameFormat: "cover",
		PlaylistFileNameFormat: "{album}",
		PlaylistFormat:         PlaylistFormatM3U,
	}
}

func TestAlbum_PathComputation(t *testing.T) {
	album := NewAlbum(KindAlbum, "Test Artist", "Test Album", "2023-05-15", testPathConfig())

	want := filepath.Join("/music", "Test Artist", "Test Album")
	if album.Path != want {
		t.Errorf("Album.Path = %q, want %q", album.Path, want)
	}
	if got := filepath.Base(album.PlaylistPath); got != "Test Album.m3u" {
		t.Errorf("PlaylistPath base = %q, want %q", got, "Test Album.m3u")
	}
	if got := filepath.Base(album.ArtworkPath); got != "cover.jpg" {
		t.Errorf("ArtworkPath base = %q, want %q", got, "cover.jpg")
	}
	if album.Year() != "2023" {
		t.Errorf("Year() = %q, want %q", album.Year(), "2023")
	}
}

func TestAlbum_SlashInTitleStaysOneFolder(t *testing.T) {
	album := NewAlbum(KindAlbum, "AC/DC", "Live: 1991", "", testPathConfig())

	want := filepath.Join("/music", "AC_DC", "Live_ 1991")
	if album.Path != want {
		t.Errorf("Album.Path = %q, want %q", album.Path, want)
	}
}

func TestAlbum_EmptyArtist(t *testing.T) {
	album := NewAlbum(KindAlbum, "", "Mixtape", "", testPathConfig())

	if album.Artist != UnknownArtist {
		t.Errorf("Artist = %q, want %q", album.Artist, UnknownArtist)
	}
}

func TestAlbum_SingleWritesToDestination(t *testing.T) {
	album := NewAlbum(KindSingle, "Artist", "", "", testPathConfig())

	if album.Path != "/music" {
		t.Errorf("Album.Path = %q, want %q", album.Path, "/music")
	}
}

func TestAlbum_FlatFolderFormat(t *testing.T) {
	cfg := testPathConfig()
	cfg.FolderFormat = ""
	album := NewAlbum(KindAlbum, "Artist", "Album", "", cfg)

	if album.Path != "/music" {
		t.Errorf("Album.Path = %q, want %q", album.Path, "/music")
	}
}

func TestAlignedTrack_FileBase(t *testing.T) {
	album := NewAlbum(KindAlbum, "Artist", "Album", "", testPathConfig())
	multi := NewAlbum(KindAlbum, "Artist", "Album", "", testPathConfig())
	multi.TotalDiscs = 2
	single := NewAlbum(KindSingle, "Artist", "", "", testPathConfig())

	tests := []struct {
		name  string
		album *Album
		track AlignedTrack
		want  string
	}{
		{"numbered", album, AlignedTrack{TargetPosition: 3, TargetTitle: "Outro"}, "03 - Outro"},
		{"sanitized", album, AlignedTrack{TargetPosition: 12, TargetTitle: "What? / Why"}, "12 - What_ _ Why"},
		{"multi disc", multi, AlignedTrack{TargetPosition: 14, TargetTitle: "Side B", Disc: 2, DiscPosition: 5}, "02-05 - Side B"},
		{"multi disc without disc info", multi, AlignedTrack{TargetPosition: 15, TargetTitle: "Bonus"}, "15 - Bonus"},
		{"single", single, AlignedTrack{TargetPosition: 1, TargetTitle: "Song"}, "Song"},
		{"empty title", album, AlignedTrack{TargetPosition: 1, TargetTitle: "  "}, "01 - track"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.track.FileBase(tt.album); got != tt.want {
				t.Errorf("FileBase() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlaylistFormat_Extension(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"m3u", ".m3u"},
		{"PLS", ".pls"},
		{"wpl", ".wpl"},
		{"zpl", ".zpl"},
		{"unknown", ".m3u"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParsePlaylistFormat(tt.input).Extension(); got != tt.want {
				t.Errorf("Extension() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDownloadResult_OK(t *testing.T) {
	track := AlignedTrack{TargetPosition: 1}

	if !Succeeded(track, "/music/a.mp3").OK() {
		t.Error("Succeeded result should be OK")
	}
	failed := Failed(track, "")
	if failed.OK() {
		t.Error("Failed result should not be OK")
	}
	if failed.Reason == "" {
		t.Error("Failed result should always carry a reason")
	}
}

func TestSplitArtistTitle(t *testing.T) {
	tests := []struct {
		raw        string
		wantArtist string
		wantTitle  string
		wantOK     bool
	}{
		{"Metallica - Master of Puppets", "Metallica", "Master of Puppets", true},
		{"Jay-Z - The Blueprint", "Jay-Z", "The Blueprint", true},
		{"Daft Punk – Discovery", "Daft Punk", "Discovery", true},
		{"Artist-Song", "Artist", "Song", true},
		{"just a query", "", "", false},
		{"- leading", "", "", false},
		{"trailing -", "", "", false},
	}

	for _, tt := range tests {
		artist, title, ok := SplitArtistTitle(tt.raw)
		if artist != tt.wantArtist || title != tt.wantTitle || ok != tt.wantOK {
			t.Errorf("SplitArtistTitle(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.raw, artist, title, ok, tt.wantArtist, tt.wantTitle, tt.wantOK)
		}
	}
}
