package expand

import (
	"context"
	"strings"

	"github.com/landonrogers/bippi/internal/engine"
	"github.com/landonrogers/bippi/internal/model"
	"github.com/samber/lo"
)

// Expansion is the ordered list of downloadable entries for a request.
type Expansion struct {
	// Source is the locator that was finally listed: the request itself,
	// or the playlist a search led to.
	Source string

	// Title and Uploader describe the listed playlist or video.
	Title    string
	Uploader string

	// Locators are in source order, unique by URL, numbered from 1.
	Locators []model.RawLocator
}

// Expander turns requests into per-track locators using the engine's
// listing capability.
//
// Example usage:
//
//	x := expand.New(engine.NewYtDlp(""))
//	exp, err := x.Expand(ctx, "Daft Punk - Discovery")
//	for _, loc := range exp.Locators {
//	    fmt.Println(loc.Position, loc.HintTitle, loc.URL)
//	}
type Expander struct {
	engine engine.Engine
}

// New creates an Expander.
func New(e engine.Engine) *Expander {
	return &Expander{engine: e}
}

// Expand resolves an album request.
//
// URLs are listed directly. Free text is searched; the first playlist
// among the results is listed, and when there is none the top result is
// treated as a one-track album.
func (x *Expander) Expand(ctx context.Context, locator string) (*Expansion, error) {
	locator = strings.TrimSpace(locator)
	if LooksLikeURL(locator) {
		return x.list(ctx, locator)
	}

	search, err := x.engine.ListEntries(ctx, BuildAlbumSearch(locator), engine.ListOptions{})
	if err != nil {
		return nil, &ExpansionError{Err: ErrEngineFailure, Locator: locator, Original: err}
	}

	for _, entry := range search.Entries {
		if playlistURL := playlistURLFromEntry(entry); playlistURL != "" {
			return x.list(ctx, playlistURL)
		}
	}

	for _, entry := range search.Entries {
		if url := entryURL(entry); url != "" {
			return &Expansion{
				Source:   url,
				Title:    entry.Title,
				Uploader: entry.Author(),
				Locators: toLocators([]engine.Entry{entry}),
			}, nil
		}
	}

	return nil, &ExpansionError{Err: ErrNoResults, Locator: locator}
}

// ExpandSingle resolves a single-track request to exactly one locator.
// Free text is searched for the best audio match. A watch URL that also
// names a playlist resolves to its video, not the playlist's first entry.
func (x *Expander) ExpandSingle(ctx context.Context, locator string) (*Expansion, error) {
	locator = strings.TrimSpace(locator)
	target := locator
	opts := engine.ListOptions{NoPlaylist: true}
	if !LooksLikeURL(locator) {
		target = BuildSingleSearchQuery(locator)
		opts = engine.ListOptions{}
	}

	listing, err := x.engine.ListEntries(ctx, target, opts)
	if err != nil {
		return nil, &ExpansionError{Err: ErrEngineFailure, Locator: target, Original: err}
	}

	entry, ok := lo.Find(listing.Entries, func(e engine.Entry) bool {
		return entryURL(e) != ""
	})
	if !ok {
		return nil, &ExpansionError{Err: ErrNoResults, Locator: locator}
	}

	author := entry.Author()
	if author == "" {
		author = listing.Author()
	}
	return &Expansion{
		Source:   target,
		Title:    entry.Title,
		Uploader: author,
		Locators: toLocators([]engine.Entry{entry}),
	}, nil
}

func (x *Expander) list(ctx context.Context, locator string) (*Expansion, error) {
	listing, err := x.engine.ListEntries(ctx, locator, engine.ListOptions{})
	if err != nil {
		return nil, &ExpansionError{Err: ErrEngineFailure, Locator: locator, Original: err}
	}

	locators := toLocators(listing.Entries)
	if len(locators) == 0 {
		return nil, &ExpansionError{Err: ErrNoResults, Locator: locator}
	}

	return &Expansion{
		Source:   locator,
		Title:    listing.Title,
		Uploader: uploaderOf(listing),
		Locators: locators,
	}, nil
}

// uploaderOf returns the playlist author, or the author of the first
// entry for search results and auto-generated playlists without one.
func uploaderOf(listing *engine.Listing) string {
	if author := listing.Author(); author != "" {
		return author
	}
	if len(listing.Entries) > 0 {
		return listing.Entries[0].Author()
	}
	return ""
}

// toLocators maps entries to RawLocators, dropping entries without a URL
// and duplicate URLs (first occurrence wins).
func toLocators(entries []engine.Entry) []model.RawLocator {
	locators := lo.FilterMap(entries, func(e engine.Entry, _ int) (model.RawLocator, bool) {
		url := entryURL(e)
		return model.RawLocator{
			URL:       url,
			HintTitle: strings.TrimSpace(e.Title),
			Duration:  e.Duration,
		}, url != ""
	})

	locators = lo.UniqBy(locators, func(l model.RawLocator) string {
		return l.URL
	})

	for i := range locators {
		locators[i].Position = i + 1
	}
	return locators
}
