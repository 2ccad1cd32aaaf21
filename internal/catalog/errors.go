package catalog

import "errors"

var (
	// ErrNoMatch is returned when the catalog has no usable release for
	// a query.
	ErrNoMatch = errors.New("no matching release")

	// ErrServiceUnavailable is returned when the catalog cannot be
	// reached or answers with something unusable.
	ErrServiceUnavailable = errors.New("metadata service unavailable")
)

// MetadataError is returned by every failed catalog lookup. It wraps
// ErrNoMatch or ErrServiceUnavailable and, when present, the underlying
// cause.
//
//	if errors.Is(err, catalog.ErrNoMatch) {
//	    // continue without catalog metadata
//	}
type MetadataError struct {
	Err      error
	Query    string
	Original error
}

func (e *MetadataError) Error() string {
	msg := e.Err.Error()
	if e.Query != "" {
		msg += " for " + `"` + e.Query + `"`
	}
	if e.Original != nil {
		msg += ": " + e.Original.Error()
	}
	return msg
}

func (e *MetadataError) Unwrap() []error {
	if e.Original == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Original}
}

func noMatch(query string, original error) error {
	return &MetadataError{Err: ErrNoMatch, Query: query, Original: original}
}

func unavailable(query string, original error) error {
	return &MetadataError{Err: ErrServiceUnavailable, Query: query, Original: original}
}
