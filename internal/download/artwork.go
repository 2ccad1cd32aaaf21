package download

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/landonrogers/bippi/internal/audio"
	ioutils "github.com/landonrogers/bippi/internal/io"
	"github.com/landonrogers/bippi/internal/model"
	"github.com/samber/lo"
)

// coverArt downloads the release's front cover. It returns the image to
// embed (nil when embedding is off) and the saved file path, if any.
// Failures are reported as warnings.
func (m *Manager) coverArt(ctx context.Context, album *model.Album) (embed []byte, saved string) {
	if album.ReleaseID == "" || (!m.settings.EmbedCoverArt && !m.settings.SaveCoverArt) {
		return nil, ""
	}

	data, err := m.catalog.FetchCoverArt(ctx, album.ReleaseID)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading artwork for %s: %v", album.Title, err), Level: LevelWarning})
		return nil, ""
	}

	cover, err := m.imageService.PrepareCover(ctx, data, m.settings.CoverArtMaxSize)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error preparing artwork for %s: %v", album.Title, err), Level: LevelWarning})
		return nil, ""
	}

	if m.settings.SaveCoverArt {
		if err := ioutils.WriteFileAtomic(album.ArtworkPath, cover, 0644); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving artwork: %v", err), Level: LevelWarning})
		} else {
			saved = album.ArtworkPath
		}
	}
	if m.settings.EmbedCoverArt {
		embed = cover
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded artwork for %s", album.Title), Level: LevelVerbose})
	return embed, saved
}

// writePlaylist writes the album playlist when requested and at least
// one track was downloaded. It returns the written path.
func (m *Manager) writePlaylist(album *model.Album, results []model.DownloadResult, requested bool) string {
	if album.Kind != model.KindAlbum || !(requested || m.settings.CreatePlaylist) {
		return ""
	}
	if !lo.ContainsBy(results, func(r model.DownloadResult) bool { return r.OK() }) {
		return ""
	}

	creator := audio.NewPlaylistCreator(model.ParsePlaylistFormat(m.settings.PlaylistFormat), m.settings.M3UExtended)
	content := creator.CreatePlaylist(album, results)
	if err := ioutils.WriteFileAtomic(album.PlaylistPath, []byte(content), 0644); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return ""
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", filepath.Base(album.PlaylistPath)), Level: LevelSuccess})
	return album.PlaylistPath
}
