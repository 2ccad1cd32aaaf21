// Package http provides the HTTP client used to talk to the metadata
// catalog and to fetch cover art.
//
// The Client adds:
//   - A fixed User-Agent (MusicBrainz rejects anonymous clients)
//   - A request timeout
//   - Retries with exponential backoff for transport errors, 429 and 5xx
//   - An optional sliding window rate limit
//
// Example:
//
//	client := http.NewClient(userAgent, 15*time.Second, http.WithRateLimit(1, time.Second))
//
//	var out searchResponse
//	if err := client.GetJSON(ctx, url, &out); err != nil {
//	    var statusErr *http.StatusError
//	    if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
//	        // not found
//	    }
//	}
package http
