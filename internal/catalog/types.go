package catalog

// searchResponse is the raw response of a MusicBrainz release search.
type searchResponse struct {
	Releases []releaseResult `json:"releases"`
}

// releaseResult is a single release from search results.
type releaseResult struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Score        int            `json:"score"`
	Date         string         `json:"date"`
	ArtistCredit []artistCredit `json:"artist-credit"`
}

// artistCredit represents an artist contribution.
type artistCredit struct {
	Name       string `json:"name"`
	JoinPhrase string `json:"joinphrase"`
	Artist     struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artist"`
}

// releaseDetail is the response when fetching a single release with
// recordings and artist credits.
type releaseDetail struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Date         string         `json:"date"`
	ArtistCredit []artistCredit `json:"artist-credit"`
	Media        []medium       `json:"media"`
}

// medium represents a disc of a release.
type medium struct {
	Position int     `json:"position"`
	Format   string  `json:"format"`
	Tracks   []track `json:"tracks"`
}

// track is a raw track from the API. Length is in milliseconds.
type track struct {
	Position     int            `json:"position"`
	Number       string         `json:"number"`
	Title        string         `json:"title"`
	Length       int            `json:"length"`
	ArtistCredit []artistCredit `json:"artist-credit"`
	Recording    *struct {
		Title  string `json:"title"`
		Length int    `json:"length"`
	} `json:"recording"`
}
