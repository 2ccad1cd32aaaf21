package audio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
	"github.com/landonrogers/bippi/internal/model"
)

// ErrUnsupportedFormat is returned for audio formats the Tagger cannot
// write.
var ErrUnsupportedFormat = errors.New("tagging not supported for this format")

// TagError reports a failed tag pass on one file. The file itself is
// left in place.
type TagError struct {
	Path     string
	Err      error
	Original error
}

func (e *TagError) Error() string {
	msg := fmt.Sprintf("tag %s: %v", filepath.Base(e.Path), e.Err)
	if e.Original != nil {
		msg += ": " + e.Original.Error()
	}
	return msg
}

func (e *TagError) Unwrap() []error {
	if e.Original == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Original}
}

// errWriteFailed is the TagError kind for I/O and parse failures.
var errWriteFailed = errors.New("could not write tags")

// TagInfo is the metadata written to one file.
type TagInfo struct {
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Track       int
	TotalTracks int
	Disc        int
	TotalDiscs  int

	// Date is the release date as YYYY, YYYY-MM or YYYY-MM-DD.
	Date string
}

// NewTagInfo builds the tags of an aligned track of album. Single runs
// only carry title, artist and date.
func NewTagInfo(track model.AlignedTrack, album *model.Album, totalTracks int) TagInfo {
	info := TagInfo{
		Title:  track.TargetTitle,
		Artist: track.TargetArtist,
		Date:   album.ReleaseDate,
	}
	if info.Artist == model.UnknownArtist {
		info.Artist = ""
	}
	if album.Kind == model.KindAlbum {
		info.AlbumArtist = album.Artist
		info.Album = album.Title
		info.Track = track.TargetPosition
		info.TotalTracks = totalTracks
		if album.MultiDisc() && track.Disc > 0 {
			info.Disc = track.Disc
			info.TotalDiscs = album.TotalDiscs
		}
	}
	return info
}

// Tagger writes tags to downloaded files. MP3 files get ID3v2 frames,
// FLAC files get Vorbis comments.
//
// Example:
//
//	tagger := NewTagger()
//	err := tagger.Apply(path, NewTagInfo(track, album, total), coverJPEG)
//	if errors.Is(err, ErrUnsupportedFormat) {
//	    // keep the file, report the warning
//	}
type Tagger struct{}

// NewTagger creates a new Tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// Supports reports whether path has a format the Tagger can write.
func (t *Tagger) Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".flac":
		return true
	}
	return false
}

// Apply writes info and, when artwork is non-nil, a front cover image to
// the file at path.
func (t *Tagger) Apply(path string, info TagInfo, artwork []byte) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		err = t.applyID3(path, info, artwork)
	case ".flac":
		err = t.applyVorbis(path, info, artwork)
	default:
		return &TagError{Path: path, Err: ErrUnsupportedFormat}
	}
	if err != nil {
		return &TagError{Path: path, Err: errWriteFailed, Original: err}
	}
	return nil
}

func (t *Tagger) applyID3(path string, info TagInfo, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	// Artist (TPE1)
	setTextFrame(tag, "TPE1", info.Artist)

	// Album (TALB)
	setTextFrame(tag, "TALB", info.Album)

	// Track Title (TIT2)
	setTextFrame(tag, "TIT2", info.Title)

	// Album Artist (TPE2)
	setTextFrame(tag, "TPE2", info.AlbumArtist)

	// Track Number (TRCK)
	setTextFrame(tag, "TRCK", numberOf(info.Track, info.TotalTracks))

	// Disc Number (TPOS)
	setTextFrame(tag, "TPOS", numberOf(info.Disc, info.TotalDiscs))

	// Year (TYER) for ID3v2.3 readers, date (TDRC) for ID3v2.4
	if len(info.Date) >= 4 {
		setTextFrame(tag, "TYER", info.Date[:4])
	}
	setTextFrame(tag, "TDRC", info.Date)

	if artwork != nil {
		// Remove any existing cover pictures
		tag.DeleteFrames(tag.CommonID("Attached picture"))
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     artwork,
		})
	}

	return tag.Save()
}

// setTextFrame replaces frame id with value. An empty value leaves any
// existing frame untouched.
func setTextFrame(tag *id3v2.Tag, id, value string) {
	if value == "" {
		return
	}
	tag.DeleteFrames(id)
	tag.AddTextFrame(id, id3v2.EncodingUTF8, value)
}

func numberOf(n, total int) string {
	switch {
	case n <= 0:
		return ""
	case total > 0:
		return fmt.Sprintf("%d/%d", n, total)
	default:
		return strconv.Itoa(n)
	}
}

func (t *Tagger) applyVorbis(path string, info TagInfo, artwork []byte) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse FLAC file: %w", err)
	}

	cmtIdx := -1
	var existing *flacvorbis.MetaDataBlockVorbisComment
	for idx, block := range f.Meta {
		if block.Type == flac.VorbisComment {
			cmtIdx = idx
			existing, _ = flacvorbis.ParseFromMetaDataBlock(*block)
			break
		}
	}

	fields := vorbisFields(info)

	cmt := flacvorbis.New()
	if existing != nil {
		// Keep comments we do not overwrite, such as encoder or genre.
		for _, comment := range existing.Comments {
			key, value, ok := strings.Cut(comment, "=")
			if !ok {
				continue
			}
			if fields[strings.ToUpper(key)] != "" {
				continue
			}
			_ = cmt.Add(key, value)
		}
	}
	for _, key := range vorbisFieldOrder {
		if value := fields[key]; value != "" {
			_ = cmt.Add(key, value)
		}
	}

	cmtBlock := cmt.Marshal()
	if cmtIdx < 0 {
		f.Meta = append(f.Meta, &cmtBlock)
	} else {
		f.Meta[cmtIdx] = &cmtBlock
	}

	if artwork != nil {
		picture, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Cover", artwork, "image/jpeg")
		if err != nil {
			return fmt.Errorf("create picture block: %w", err)
		}
		pictureBlock := picture.Marshal()

		for i := len(f.Meta) - 1; i >= 0; i-- {
			if f.Meta[i].Type == flac.Picture {
				f.Meta = append(f.Meta[:i], f.Meta[i+1:]...)
			}
		}
		f.Meta = append(f.Meta, &pictureBlock)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save FLAC file: %w", err)
	}
	return nil
}

var vorbisFieldOrder = []string{
	flacvorbis.FIELD_TITLE,
	flacvorbis.FIELD_ARTIST,
	"ALBUMARTIST",
	flacvorbis.FIELD_ALBUM,
	flacvorbis.FIELD_TRACKNUMBER,
	"TOTALTRACKS",
	"DISCNUMBER",
	"TOTALDISCS",
	flacvorbis.FIELD_DATE,
}

// vorbisFields maps info to Vorbis comment fields. Empty values leave
// existing comments of that key in place.
func vorbisFields(info TagInfo) map[string]string {
	itoa := func(n int) string {
		if n <= 0 {
			return ""
		}
		return strconv.Itoa(n)
	}
	return map[string]string{
		flacvorbis.FIELD_TITLE:       info.Title,
		flacvorbis.FIELD_ARTIST:      info.Artist,
		"ALBUMARTIST":                info.AlbumArtist,
		flacvorbis.FIELD_ALBUM:       info.Album,
		flacvorbis.FIELD_TRACKNUMBER: itoa(info.Track),
		"TOTALTRACKS":                itoa(info.TotalTracks),
		"DISCNUMBER":                 itoa(info.Disc),
		"TOTALDISCS":                 itoa(info.TotalDiscs),
		flacvorbis.FIELD_DATE:        info.Date,
	}
}
