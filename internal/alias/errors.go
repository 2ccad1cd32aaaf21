package alias

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an alias name is not registered.
	ErrNotFound = errors.New("alias not found")

	// ErrInvalidName is returned for empty or whitespace-only names.
	ErrInvalidName = errors.New("invalid alias name")

	// ErrInvalidLocator is returned when an alias would point nowhere.
	ErrInvalidLocator = errors.New("invalid alias locator")
)

// AliasError describes a failed alias operation.
type AliasError struct {
	Name string
	Err  error
}

func (e *AliasError) Error() string {
	return fmt.Sprintf("alias '%s': %v", e.Name, e.Err)
}

func (e *AliasError) Unwrap() error {
	return e.Err
}
