package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
	"github.com/landonrogers/bippi/internal/model"
)

func testTagInfo() TagInfo {
	return TagInfo{
		Title:       "Battery",
		Artist:      "Metallica",
		AlbumArtist: "Metallica",
		Album:       "Master of Puppets",
		Track:       1,
		TotalTracks: 8,
		Date:        "1986-03-03",
	}
}

func TestTagger_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01 - Battery.opus")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tagger := NewTagger()
	if tagger.Supports(path) {
		t.Error("Supports(.opus) = true, want false")
	}

	err := tagger.Apply(path, testTagInfo(), nil)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Apply() error = %v, want ErrUnsupportedFormat", err)
	}
	var tagErr *TagError
	if !errors.As(err, &tagErr) || tagErr.Path != path {
		t.Errorf("Apply() error = %#v, want *TagError for %s", err, path)
	}
}

func TestTagger_MissingFile(t *testing.T) {
	err := NewTagger().Apply(filepath.Join(t.TempDir(), "missing.mp3"), testTagInfo(), nil)
	if err == nil || errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Apply() error = %v, want write failure", err)
	}
}

func TestTagger_MP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01 - Battery.mp3")
	// An MPEG frame header plus padding stands in for audio data.
	audioData := append([]byte{0xFF, 0xFB, 0x90, 0x00}, make([]byte, 28)...)
	if err := os.WriteFile(path, audioData, 0644); err != nil {
		t.Fatal(err)
	}

	if err := NewTagger().Apply(path, testTagInfo(), []byte{0xFF, 0xD8, 0xFF}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer tag.Close()

	if got := tag.Title(); got != "Battery" {
		t.Errorf("Title = %q, want %q", got, "Battery")
	}
	if got := tag.Artist(); got != "Metallica" {
		t.Errorf("Artist = %q, want %q", got, "Metallica")
	}
	if got := tag.Album(); got != "Master of Puppets" {
		t.Errorf("Album = %q, want %q", got, "Master of Puppets")
	}
	if got := tag.GetTextFrame("TRCK").Text; got != "1/8" {
		t.Errorf("TRCK = %q, want %q", got, "1/8")
	}
	if got := tag.GetTextFrame("TPE2").Text; got != "Metallica" {
		t.Errorf("TPE2 = %q, want %q", got, "Metallica")
	}
	if pics := tag.GetFrames(tag.CommonID("Attached picture")); len(pics) != 1 {
		t.Errorf("len(APIC) = %d, want 1", len(pics))
	}
}

func TestTagger_MP3KeepsExistingFramesForEmptyValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Song.mp3")
	audioData := append([]byte{0xFF, 0xFB, 0x90, 0x00}, make([]byte, 28)...)
	if err := os.WriteFile(path, audioData, 0644); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetAlbum("Engine Album")
	tag.SetArtist("Engine Artist")
	if err := tag.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	tag.Close()

	single := model.NewAlbum(model.KindSingle, "", "Song", "", &model.PathConfig{Destination: t.TempDir()})
	track := model.AlignedTrack{TargetPosition: 1, TargetTitle: "Song", TargetArtist: model.UnknownArtist}
	if err := NewTagger().Apply(path, NewTagInfo(track, single, 1), nil); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	tag, err = id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer tag.Close()

	if got := tag.Album(); got != "Engine Album" {
		t.Errorf("Album = %q, want %q", got, "Engine Album")
	}
	if got := tag.Artist(); got != "Engine Artist" {
		t.Errorf("Artist = %q, want %q", got, "Engine Artist")
	}
	if got := tag.Title(); got != "Song" {
		t.Errorf("Title = %q, want %q", got, "Song")
	}
}

func TestTagger_FLAC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01 - Battery.flac")

	// "fLaC" marker followed by a single, final, zeroed STREAMINFO block.
	data := append([]byte("fLaC"), 0x80, 0x00, 0x00, 0x22)
	data = append(data, make([]byte, 34)...)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if err := NewTagger().Apply(path, testTagInfo(), nil); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	f, err := flac.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	var cmt *flacvorbis.MetaDataBlockVorbisComment
	for _, block := range f.Meta {
		if block.Type == flac.VorbisComment {
			cmt, err = flacvorbis.ParseFromMetaDataBlock(*block)
			if err != nil {
				t.Fatalf("ParseFromMetaDataBlock() error = %v", err)
			}
		}
	}
	if cmt == nil {
		t.Fatal("no Vorbis comment block written")
	}

	titles, err := cmt.Get(flacvorbis.FIELD_TITLE)
	if err != nil || len(titles) != 1 || titles[0] != "Battery" {
		t.Errorf("TITLE = %v (%v), want [Battery]", titles, err)
	}
	totals, _ := cmt.Get("TOTALTRACKS")
	if len(totals) != 1 || totals[0] != "8" {
		t.Errorf("TOTALTRACKS = %v, want [8]", totals)
	}
}

func TestNewTagInfo(t *testing.T) {
	album := model.NewAlbum(model.KindAlbum, "Band", "Double", "2001-05-01", &model.PathConfig{Destination: "/music"})
	album.TotalDiscs = 2
	track := model.AlignedTrack{TargetPosition: 12, TargetTitle: "Song", TargetArtist: "Band feat. Guest", Disc: 2, DiscPosition: 3}

	info := NewTagInfo(track, album, 20)
	if info.Track != 12 || info.TotalTracks != 20 || info.Disc != 2 || info.TotalDiscs != 2 {
		t.Errorf("NewTagInfo() = %+v", info)
	}
	if info.Artist != "Band feat. Guest" || info.AlbumArtist != "Band" {
		t.Errorf("artists = %q, %q", info.Artist, info.AlbumArtist)
	}

	single := model.NewAlbum(model.KindSingle, "Band", "Song", "", &model.PathConfig{Destination: "/music"})
	if info := NewTagInfo(track, single, 1); info.Track != 0 || info.Album != "" {
		t.Errorf("single NewTagInfo() = %+v, want no track number or album", info)
	}
}
