package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/landonrogers/bippi/internal/http"
	"github.com/landonrogers/bippi/internal/model"
)

const (
	// DefaultBaseURL is the MusicBrainz web service root.
	DefaultBaseURL = "https://musicbrainz.org/ws/2"

	// DefaultCoverArtURL is the Cover Art Archive root.
	DefaultCoverArtURL = "https://coverartarchive.org"

	// DefaultUserAgent identifies the application to MusicBrainz.
	DefaultUserAgent = "bippi/0.1.0 (https://github.com/landonrogers/bippi)"

	// searchLimit is how many candidates a search considers.
	searchLimit = 10

	requestTimeout = 15 * time.Second
)

var releaseIDPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// Client queries MusicBrainz for authoritative release track listings.
//
// Example usage:
//
//	client := catalog.NewClient(catalog.DefaultUserAgent)
//	release, err := client.FetchAlbumMetadata(ctx, "Metallica - Master of Puppets")
//	if errors.Is(err, catalog.ErrNoMatch) {
//	    // degraded mode
//	}
type Client struct {
	http        *http.Client
	baseURL     string
	coverArtURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another MusicBrainz instance.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithCoverArtURL points the client at another Cover Art Archive.
func WithCoverArtURL(u string) Option {
	return func(c *Client) { c.coverArtURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the rate limited default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a client that identifies itself with userAgent and
// stays within the MusicBrainz limit of one request per second.
func NewClient(userAgent string, opts ...Option) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	c := &Client{
		http: http.NewClient(userAgent, requestTimeout,
			http.WithRateLimit(1, time.Second),
			http.WithRetries(2, 2*time.Second)),
		baseURL:     DefaultBaseURL,
		coverArtURL: DefaultCoverArtURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAlbumMetadata searches the catalog for query ("Artist - Album" or
// free text) and returns the best matching release with its tracks.
func (c *Client) FetchAlbumMetadata(ctx context.Context, query string) (*model.Release, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, noMatch(query, errors.New("empty query"))
	}

	searchURL := fmt.Sprintf("%s/release/?query=%s&fmt=json&limit=%d",
		c.baseURL, url.QueryEscape(BuildSearchQuery(query)), searchLimit)

	var resp searchResponse
	if err := c.http.GetJSON(ctx, searchURL, &resp); err != nil {
		return nil, c.classify(query, err)
	}

	best, ok := selectRelease(query, resp.Releases)
	if !ok {
		return nil, noMatch(query, nil)
	}

	return c.fetchDetail(ctx, query, best.ID)
}

// FetchRelease fetches a release by MBID. A MusicBrainz release URL is
// accepted as well.
func (c *Client) FetchRelease(ctx context.Context, releaseID string) (*model.Release, error) {
	id := ParseReleaseID(releaseID)
	if id == "" {
		return nil, noMatch(releaseID, errors.New("not a release id"))
	}
	return c.fetchDetail(ctx, releaseID, id)
}

// FetchCoverArt downloads the front cover of a release from the Cover
// Art Archive.
func (c *Client) FetchCoverArt(ctx context.Context, releaseID string) ([]byte, error) {
	coverURL := fmt.Sprintf("%s/release/%s/front-500", c.coverArtURL, url.PathEscape(releaseID))
	data, err := c.http.DownloadBytes(ctx, coverURL)
	if err != nil {
		return nil, c.classify(releaseID, err)
	}
	return data, nil
}

func (c *Client) fetchDetail(ctx context.Context, query, id string) (*model.Release, error) {
	detailURL := fmt.Sprintf("%s/release/%s?inc=recordings+artist-credits&fmt=json",
		c.baseURL, url.PathEscape(id))

	var detail releaseDetail
	if err := c.http.GetJSON(ctx, detailURL, &detail); err != nil {
		return nil, c.classify(query, err)
	}
	if detail.ID == "" {
		detail.ID = id
	}

	release, err := convertRelease(&detail)
	if err != nil {
		return nil, noMatch(query, err)
	}
	return release, nil
}

// classify maps transport errors to the two catalog failure kinds.
func (c *Client) classify(query string, err error) error {
	var statusErr *http.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
		return noMatch(query, err)
	}
	return unavailable(query, err)
}

// ParseReleaseID extracts a release MBID from an id or a MusicBrainz
// release URL. It returns "" when s holds no MBID.
func ParseReleaseID(s string) string {
	return strings.ToLower(releaseIDPattern.FindString(s))
}
