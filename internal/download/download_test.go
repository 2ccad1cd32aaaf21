package download

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/landonrogers/bippi/internal/catalog"
	"github.com/landonrogers/bippi/internal/config"
	"github.com/landonrogers/bippi/internal/engine"
	"github.com/landonrogers/bippi/internal/expand"
	"github.com/landonrogers/bippi/internal/model"
)

type fakeEngine struct {
	mu       sync.Mutex
	listings map[string]*engine.Listing
	listErr  error
	fail     map[string]error
	requests []engine.DownloadRequest

	// onDownload runs before the file is produced.
	onDownload func(req engine.DownloadRequest)
}

func (f *fakeEngine) ListEntries(_ context.Context, locator string, _ engine.ListOptions) (*engine.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	if l, ok := f.listings[locator]; ok {
		return l, nil
	}
	return &engine.Listing{}, nil
}

func (f *fakeEngine) Download(_ context.Context, req engine.DownloadRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	err := f.fail[req.Locator]
	hook := f.onDownload
	f.mu.Unlock()

	if hook != nil {
		hook(req)
	}
	if err != nil {
		return "", err
	}

	path := filepath.Join(req.OutputDir, req.FileBase+"."+engine.FileExtension(req.Format))
	if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (f *fakeEngine) ProbeVersion(context.Context) (string, error) {
	return "2024.08.06", nil
}

func (f *fakeEngine) downloads() []engine.DownloadRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]engine.DownloadRequest(nil), f.requests...)
}

type fakeCatalog struct {
	mu       sync.Mutex
	release  *model.Release
	err      error
	queries  []string
	released []string
}

func (f *fakeCatalog) FetchAlbumMetadata(_ context.Context, query string) (*model.Release, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.release, f.err
}

func (f *fakeCatalog) FetchRelease(_ context.Context, id string) (*model.Release, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, id)
	return f.release, f.err
}

func (f *fakeCatalog) FetchCoverArt(context.Context, string) ([]byte, error) {
	return nil, &catalog.MetadataError{Err: catalog.ErrNoMatch}
}

type fakeAliases map[string]model.Alias

func (f fakeAliases) Resolve(token string) (model.Alias, bool) {
	a, ok := f[token]
	return a, ok
}

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	s := config.DefaultSettings()
	s.DefaultDestination = t.TempDir()
	s.EmbedCoverArt = false
	return s
}

func testTracks(n int) []model.AlignedTrack {
	titles := []string{"One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight"}
	tracks := make([]model.AlignedTrack, n)
	for i := range tracks {
		tracks[i] = model.AlignedTrack{
			Locator:        model.RawLocator{URL: "https://example.com/" + titles[i], Position: i + 1},
			TargetPosition: i + 1,
			TargetTitle:    titles[i],
			TargetArtist:   "Band",
			AlbumTitle:     "Record",
		}
	}
	return tracks
}

func testAlbum(s *config.Settings) *model.Album {
	return model.NewAlbum(model.KindAlbum, "Band", "Record", "2020", s.ToPathConfig(s.DefaultDestination))
}

func TestRun_FailingTrackDoesNotStopRun(t *testing.T) {
	settings := testSettings(t)
	fe := &fakeEngine{fail: map[string]error{
		"https://example.com/Three": &engine.InvocationError{Locator: "https://example.com/Three", ExitCode: 1, Diagnostic: "ERROR: Video unavailable"},
	}}
	m := NewManager(settings, Dependencies{Engine: fe, Catalog: &fakeCatalog{}}, nil)
	album := testAlbum(settings)

	results := m.Run(context.Background(), album, testTracks(5), "mp3")

	if len(results) != 5 {
		t.Fatalf("len(results) = %d, want 5", len(results))
	}
	for i, r := range results {
		wantOK := i != 2
		if r.OK() != wantOK {
			t.Errorf("results[%d].OK() = %v, want %v (reason %q)", i, r.OK(), wantOK, r.Reason)
		}
	}
	if !strings.Contains(results[2].Reason, "Video unavailable") {
		t.Errorf("results[2].Reason = %q, want engine diagnostic", results[2].Reason)
	}
	if got := len(fe.downloads()); got != 5 {
		t.Errorf("engine invoked %d times, want 5", got)
	}

	want := filepath.Join(album.Path, "05 - Five.mp3")
	if results[4].Path != want {
		t.Errorf("results[4].Path = %q, want %q", results[4].Path, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("file not written: %v", err)
	}

	completed, failed, total := m.GetProgress()
	if completed != 4 || failed != 1 || total != 5 {
		t.Errorf("GetProgress() = %d, %d, %d, want 4, 1, 5", completed, failed, total)
	}
}

func TestRun_ParallelResultsKeepTrackOrder(t *testing.T) {
	settings := testSettings(t)
	fe := &fakeEngine{onDownload: func(engine.DownloadRequest) {
		time.Sleep(time.Duration(rand.Intn(20)) * time.Millisecond)
	}}
	m := NewManager(settings, Dependencies{Engine: fe, Catalog: &fakeCatalog{}}, nil)

	results := m.Run(context.Background(), testAlbum(settings), testTracks(8), "mp3", WithWorkers(4))

	for i, r := range results {
		if r.Track.TargetPosition != i+1 {
			t.Errorf("results[%d].Track.TargetPosition = %d, want %d", i, r.Track.TargetPosition, i+1)
		}
		if !r.OK() {
			t.Errorf("results[%d] failed: %s", i, r.Reason)
		}
	}
}

func TestRun_CancelStopsIssuingTracks(t *testing.T) {
	settings := testSettings(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fe := &fakeEngine{onDownload: func(engine.DownloadRequest) { cancel() }}
	m := NewManager(settings, Dependencies{Engine: fe, Catalog: &fakeCatalog{}}, nil)

	results := m.Run(ctx, testAlbum(settings), testTracks(4), "mp3")

	if got := len(fe.downloads()); got != 1 {
		t.Errorf("engine invoked %d times, want 1", got)
	}
	for i, r := range results[1:] {
		if !r.Skipped {
			t.Errorf("results[%d].Skipped = false, want true", i+1)
		}
	}
}

func TestRun_SkipExisting(t *testing.T) {
	settings := testSettings(t)
	album := testAlbum(settings)
	existing := filepath.Join(album.Path, "01 - One.mp3")
	if err := os.MkdirAll(album.Path, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(existing, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	fe := &fakeEngine{}
	m := NewManager(settings, Dependencies{Engine: fe, Catalog: &fakeCatalog{}}, nil)
	results := m.Run(context.Background(), album, testTracks(2), "mp3")

	if !results[0].OK() || results[0].Path != existing {
		t.Errorf("results[0] = %+v, want success at %q", results[0], existing)
	}
	reqs := fe.downloads()
	if len(reqs) != 1 || reqs[0].Locator != "https://example.com/Two" {
		t.Errorf("engine requests = %+v, want only track 2", reqs)
	}
}

func TestRun_RemovesStagingFolders(t *testing.T) {
	settings := testSettings(t)
	fe := &fakeEngine{fail: map[string]error{"https://example.com/Two": errors.New("boom")}}
	m := NewManager(settings, Dependencies{Engine: fe, Catalog: &fakeCatalog{}}, nil)
	album := testAlbum(settings)

	m.Run(context.Background(), album, testTracks(3), "flac")

	entries, err := os.ReadDir(album.Path)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), stagingPrefix) {
			t.Errorf("staging folder %s left behind", e.Name())
		}
	}
	if len(entries) != 2 {
		t.Errorf("album folder has %d entries, want 2", len(entries))
	}
}

func TestRun_PassesMetadata(t *testing.T) {
	settings := testSettings(t)
	fe := &fakeEngine{}
	m := NewManager(settings, Dependencies{Engine: fe, Catalog: &fakeCatalog{}}, nil)

	m.Run(context.Background(), testAlbum(settings), testTracks(2), "mp3")

	reqs := fe.downloads()
	if len(reqs) != 2 {
		t.Fatalf("len(requests) = %d, want 2", len(reqs))
	}
	md := reqs[1].Metadata
	if md == nil {
		t.Fatal("Metadata = nil, want explicit tags")
	}
	if md.Album != "Record" || md.AlbumArtist != "Band" || md.Title != "Two" || md.Track != 2 || md.TotalTracks != 2 || md.Date != "2020" {
		t.Errorf("Metadata = %+v", md)
	}
	if reqs[1].FileBase != "02 - Two" {
		t.Errorf("FileBase = %q, want %q", reqs[1].FileBase, "02 - Two")
	}
}

func TestUniqueBases(t *testing.T) {
	album := model.NewAlbum(model.KindSingle, "", "x", "", &model.PathConfig{Destination: "/music"})
	tracks := []model.AlignedTrack{
		{TargetTitle: "Song"},
		{TargetTitle: "song"},
		{TargetTitle: "Song"},
		{TargetTitle: "Other"},
	}

	got := uniqueBases(album, tracks)
	want := []string{"Song", "song (2)", "Song (3)", "Other"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("uniqueBases()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

const playlistURL = "https://www.youtube.com/playlist?list=PL1"

func albumEngine(query string) *fakeEngine {
	return &fakeEngine{listings: map[string]*engine.Listing{
		expand.BuildAlbumSearch(query): {
			Entries: []engine.Entry{
				{Type: "url", ID: "v0", URL: "https://www.youtube.com/watch?v=v0", Title: "Some video"},
				{Type: "playlist", ID: "PL1", URL: playlistURL, Title: "Record"},
			},
		},
		playlistURL: {
			Type:     "playlist",
			Title:    "Album - Record",
			Uploader: "Band - Topic",
			Entries: []engine.Entry{
				{ID: "a", URL: "https://www.youtube.com/watch?v=a", Title: "Band - First (Official Audio)"},
				{ID: "b", URL: "https://www.youtube.com/watch?v=b", Title: "Second"},
			},
		},
	}}
}

func TestAlbum_DegradedOnNoMatch(t *testing.T) {
	settings := testSettings(t)
	fe := albumEngine("Band - Record")
	fc := &fakeCatalog{err: &catalog.MetadataError{Err: catalog.ErrNoMatch, Query: "Band - Record"}}

	var events []ProgressEvent
	m := NewManager(settings, Dependencies{Engine: fe, Catalog: fc}, func(e ProgressEvent) {
		events = append(events, e)
	})

	r, err := m.Album(context.Background(), Request{Target: "Band - Record"})
	if err != nil {
		t.Fatalf("Album() error = %v", err)
	}
	if !r.Degraded || len(r.Warnings) == 0 {
		t.Errorf("Degraded, Warnings = %v, %v, want degraded with a warning", r.Degraded, r.Warnings)
	}
	if r.Succeeded != 2 || r.ExitCode() != 0 {
		t.Errorf("Succeeded, ExitCode = %d, %d, want 2, 0", r.Succeeded, r.ExitCode())
	}

	folder := filepath.Join(settings.DefaultDestination, "Band", "Record")
	if r.Folder != folder {
		t.Errorf("Folder = %q, want %q", r.Folder, folder)
	}
	if _, err := os.Stat(filepath.Join(folder, "02 - Second.mp3")); err != nil {
		t.Errorf("track 2 not written: %v", err)
	}

	var warned bool
	for _, e := range events {
		if e.Level == LevelWarning && strings.Contains(e.Message, "Metadata lookup failed") {
			warned = true
		}
	}
	if !warned {
		t.Error("no degraded-mode warning event emitted")
	}
}

func TestAlbum_DegradedOnServiceUnavailable(t *testing.T) {
	settings := testSettings(t)
	fe := albumEngine("Band - Record")
	fc := &fakeCatalog{err: &catalog.MetadataError{
		Err:      catalog.ErrServiceUnavailable,
		Query:    "Band - Record",
		Original: errors.New("HTTP 503 Service Unavailable"),
	}}
	m := NewManager(settings, Dependencies{Engine: fe, Catalog: fc}, nil)

	r, err := m.Album(context.Background(), Request{Target: "Band - Record"})
	if err != nil {
		t.Fatalf("Album() error = %v", err)
	}
	if !r.Degraded {
		t.Error("Degraded = false, want true")
	}
	if len(r.Warnings) == 0 || !strings.Contains(r.Warnings[0], "Metadata lookup failed") {
		t.Errorf("Warnings = %q, want a metadata lookup warning", r.Warnings)
	}
	if r.Succeeded != 2 || r.ExitCode() != 0 {
		t.Errorf("Succeeded, ExitCode = %d, %d, want 2, 0", r.Succeeded, r.ExitCode())
	}
}

func TestAlbum_UsesReleaseMetadata(t *testing.T) {
	settings := testSettings(t)
	fe := albumEngine("band record")
	fc := &fakeCatalog{release: &model.Release{
		ID:         "0b3f2c4e-2b9a-4b44-8d0a-5f5b2b9c6f11",
		Title:      "The Record",
		Artist:     "The Band",
		Date:       "1999-04-01",
		TotalDiscs: 1,
		Tracks: []model.CatalogTrack{
			{Position: 1, Title: "First", Artist: "The Band", Duration: 200},
			{Position: 2, Title: "Second Song", Artist: "The Band", Duration: 180},
		},
	}}
	m := NewManager(settings, Dependencies{Engine: fe, Catalog: fc}, nil)

	r, err := m.Album(context.Background(), Request{Target: "band record", Format: "flac", Playlist: true})
	if err != nil {
		t.Fatalf("Album() error = %v", err)
	}
	if r.Degraded {
		t.Errorf("Degraded = true, want false (warnings %v)", r.Warnings)
	}

	folder := filepath.Join(settings.DefaultDestination, "The Band", "The Record")
	want := []string{
		filepath.Join(folder, "01 - First.flac"),
		filepath.Join(folder, "02 - Second Song.flac"),
	}
	if len(r.Paths) != len(want) {
		t.Fatalf("Paths = %v, want %v", r.Paths, want)
	}
	for i := range want {
		if r.Paths[i] != want[i] {
			t.Errorf("Paths[%d] = %q, want %q", i, r.Paths[i], want[i])
		}
	}
	if r.PlaylistPath == "" {
		t.Error("PlaylistPath empty, want playlist written")
	} else if _, err := os.Stat(r.PlaylistPath); err != nil {
		t.Errorf("playlist not written: %v", err)
	}

	fc.mu.Lock()
	queries := fc.queries
	fc.mu.Unlock()
	if len(queries) != 1 || queries[0] != "band record" {
		t.Errorf("catalog queries = %v, want [band record]", queries)
	}
}

func TestAlbum_URLQueriesCatalogWithPlaylistTitle(t *testing.T) {
	settings := testSettings(t)
	fe := albumEngine("")
	fc := &fakeCatalog{err: &catalog.MetadataError{Err: catalog.ErrServiceUnavailable}}
	m := NewManager(settings, Dependencies{Engine: fe, Catalog: fc}, nil)

	r, err := m.Album(context.Background(), Request{Target: playlistURL})
	if err != nil {
		t.Fatalf("Album() error = %v", err)
	}
	if len(fc.queries) != 1 || fc.queries[0] != "Band - Record" {
		t.Errorf("catalog queries = %v, want [Band - Record]", fc.queries)
	}
	if r.Artist != "Band" || r.Album != "Record" {
		t.Errorf("Artist, Album = %q, %q, want Band, Record", r.Artist, r.Album)
	}
}

func TestAlbum_ReleaseIDPinsRelease(t *testing.T) {
	settings := testSettings(t)
	fe := albumEngine("")
	fc := &fakeCatalog{err: &catalog.MetadataError{Err: catalog.ErrNoMatch}}
	m := NewManager(settings, Dependencies{Engine: fe, Catalog: fc}, nil)

	if _, err := m.Album(context.Background(), Request{Target: playlistURL, ReleaseID: "mbid"}); err != nil {
		t.Fatalf("Album() error = %v", err)
	}
	if len(fc.released) != 1 || fc.released[0] != "mbid" || len(fc.queries) != 0 {
		t.Errorf("FetchRelease calls = %v, searches = %v", fc.released, fc.queries)
	}
}

func TestAlbum_ExpansionFailureIsFatal(t *testing.T) {
	settings := testSettings(t)
	fe := &fakeEngine{listErr: engine.ErrNotInstalled}
	m := NewManager(settings, Dependencies{Engine: fe, Catalog: &fakeCatalog{err: &catalog.MetadataError{Err: catalog.ErrNoMatch}}}, nil)

	_, err := m.Album(context.Background(), Request{Target: "Band - Record"})
	if !errors.Is(err, expand.ErrEngineFailure) || !errors.Is(err, engine.ErrNotInstalled) {
		t.Errorf("Album() error = %v, want engine failure wrapping ErrNotInstalled", err)
	}
}

func TestAlbum_RejectsUnknownFormat(t *testing.T) {
	m := NewManager(testSettings(t), Dependencies{Engine: &fakeEngine{}, Catalog: &fakeCatalog{}}, nil)

	_, err := m.Album(context.Background(), Request{Target: "x", Format: "ape"})
	var cfgErr *config.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Album() error = %v, want *config.ConfigError", err)
	}
}

func TestSingle(t *testing.T) {
	settings := testSettings(t)
	fe := &fakeEngine{listings: map[string]*engine.Listing{
		expand.BuildSingleSearchQuery("Band - Song"): {
			Entries: []engine.Entry{
				{ID: "s", URL: "https://www.youtube.com/watch?v=s", Title: "Song: Live", Uploader: "Band - Topic"},
			},
		},
	}}
	m := NewManager(settings, Dependencies{Engine: fe, Catalog: &fakeCatalog{}}, nil)

	r, err := m.Single(context.Background(), Request{Target: "Band - Song"})
	if err != nil {
		t.Fatalf("Single() error = %v", err)
	}
	want := filepath.Join(settings.DefaultDestination, "Song_ Live.mp3")
	if len(r.Paths) != 1 || r.Paths[0] != want {
		t.Errorf("Paths = %v, want [%s]", r.Paths, want)
	}

	reqs := fe.downloads()
	if len(reqs) != 1 {
		t.Fatalf("len(requests) = %d, want 1", len(reqs))
	}
	if md := reqs[0].Metadata; md == nil || md.Artist != "Band" || md.Album != "" || md.Track != 0 {
		t.Errorf("Metadata = %+v, want artist only", md)
	}
}

func TestSingle_AlbumAliasDownloadsAlbum(t *testing.T) {
	settings := testSettings(t)
	fe := albumEngine("")
	aliases := fakeAliases{"rec": {Name: "rec", Locator: playlistURL, Kind: model.KindAlbum}}
	m := NewManager(settings, Dependencies{
		Engine:  fe,
		Catalog: &fakeCatalog{err: &catalog.MetadataError{Err: catalog.ErrNoMatch}},
		Aliases: aliases,
	}, nil)

	r, err := m.Single(context.Background(), Request{Target: "rec"})
	if err != nil {
		t.Fatalf("Single() error = %v", err)
	}
	if r.Kind != model.KindAlbum || r.Succeeded != 2 {
		t.Errorf("Kind, Succeeded = %v, %d, want album, 2", r.Kind, r.Succeeded)
	}
}
