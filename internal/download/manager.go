package download

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/landonrogers/bippi/internal/audio"
	"github.com/landonrogers/bippi/internal/catalog"
	"github.com/landonrogers/bippi/internal/config"
	"github.com/landonrogers/bippi/internal/engine"
	"github.com/landonrogers/bippi/internal/expand"
	ioutils "github.com/landonrogers/bippi/internal/io"
	"github.com/landonrogers/bippi/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Catalog is the metadata source used to reconcile album requests.
// *catalog.Client implements it.
type Catalog interface {
	FetchAlbumMetadata(ctx context.Context, query string) (*model.Release, error)
	FetchRelease(ctx context.Context, releaseID string) (*model.Release, error)
	FetchCoverArt(ctx context.Context, releaseID string) ([]byte, error)
}

// AliasResolver looks up saved aliases. *alias.Store implements it.
type AliasResolver interface {
	Resolve(token string) (model.Alias, bool)
}

// Dependencies are the collaborators of a Manager. Nil fields are
// replaced by the production implementations built from the settings.
type Dependencies struct {
	Engine  engine.Engine
	Catalog Catalog
	Aliases AliasResolver
}

// Manager runs single and album requests end to end.
type Manager struct {
	settings     *config.Settings
	engine       engine.Engine
	catalog      Catalog
	aliases      AliasResolver
	expander     *expand.Expander
	tagger       *audio.Tagger
	imageService *ioutils.ImageService

	totalFiles      int32
	downloadedFiles int32
	failedFiles     int32

	probeOnce    sync.Once
	metadataArgs bool

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, deps Dependencies, onProgress func(ProgressEvent)) *Manager {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if deps.Engine == nil {
		deps.Engine = engine.NewYtDlp(settings.YtDlpPath)
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.NewClient(settings.MusicBrainzUserAgent)
	}

	return &Manager{
		settings:     settings,
		engine:       deps.Engine,
		catalog:      deps.Catalog,
		aliases:      deps.Aliases,
		expander:     expand.New(deps.Engine),
		tagger:       audio.NewTagger(),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
}

// GetProgress returns the progress of the current run.
func (m *Manager) GetProgress() (completed, failed, total int32) {
	return atomic.LoadInt32(&m.downloadedFiles), atomic.LoadInt32(&m.failedFiles),
		atomic.LoadInt32(&m.totalFiles)
}

// resolve expands an alias token. The boolean reports whether the token
// was an alias.
func (m *Manager) resolve(token string) (model.Alias, bool) {
	if m.aliases == nil {
		return model.Alias{}, false
	}
	a, ok := m.aliases.Resolve(token)
	if ok {
		m.progress(ProgressEvent{Message: "Using alias '" + a.Name + "' -> " + a.Locator, Level: LevelInfo})
	}
	return a, ok
}

// probeMetadataArgs asks the engine for its version once per Manager.
func (m *Manager) probeMetadataArgs(ctx context.Context) bool {
	m.probeOnce.Do(func() {
		version, err := m.engine.ProbeVersion(ctx)
		if err != nil {
			m.progress(ProgressEvent{Message: "Could not determine yt-dlp version, tags will be written after download", Level: LevelVerbose})
			return
		}
		m.metadataArgs = engine.SupportsMetadataArgs(version)
		m.progress(ProgressEvent{Message: "Using yt-dlp " + version, Level: LevelVerbose})
	})
	return m.metadataArgs
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onProgress(event)
}
