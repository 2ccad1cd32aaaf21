package expand

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResults is returned when a listing or search yields nothing to
	// download.
	ErrNoResults = errors.New("no results")

	// ErrEngineFailure is returned when the engine could not list the
	// locator.
	ErrEngineFailure = errors.New("engine failure")
)

// ExpansionError is returned when a request cannot be turned into a
// track list. It is fatal to the request.
type ExpansionError struct {
	Err      error
	Locator  string
	Original error
}

func (e *ExpansionError) Error() string {
	switch {
	case errors.Is(e.Err, ErrNoResults):
		return fmt.Sprintf("nothing to download for %q", e.Locator)
	case e.Original != nil:
		return fmt.Sprintf("could not list %q: %v", e.Locator, e.Original)
	default:
		return fmt.Sprintf("could not list %q: %v", e.Locator, e.Err)
	}
}

func (e *ExpansionError) Unwrap() []error {
	if e.Original == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Original}
}
