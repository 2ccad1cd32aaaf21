package alias

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	ioutils "github.com/landonrogers/bippi/internal/io"
	"github.com/landonrogers/bippi/internal/model"
)

// entry is the persisted form of an alias.
type entry struct {
	URL   string `json:"url"`
	Album bool   `json:"album"`
}

// Store is the durable alias table.
//
// The table is read once by Load and written back by Flush. Every
// Flush replaces the file atomically so a crash never leaves a
// truncated store behind.
type Store struct {
	path    string
	entries map[string]entry
	dirty   bool
}

// NewStore returns an empty in-memory store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path, entries: make(map[string]entry)}
}

// Load reads the store at path. A missing or empty file is an empty store.
func Load(path string) (*Store, error) {
	s := NewStore(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read aliases: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("parse aliases %s: %w", path, err)
	}
	if s.entries == nil {
		s.entries = make(map[string]entry)
	}
	return s, nil
}

// Resolve looks up token. It reports false when token is not an alias,
// in which case the caller treats token as a literal query or URL.
func (s *Store) Resolve(token string) (model.Alias, bool) {
	return s.Get(strings.TrimSpace(token))
}

// Get returns the alias registered under name.
func (s *Store) Get(name string) (model.Alias, bool) {
	e, ok := s.entries[name]
	if !ok {
		return model.Alias{}, false
	}
	return toAlias(name, e), true
}

// Add creates or replaces an alias. It reports whether the alias is new.
func (s *Store) Add(name, locator string, kind model.Kind) (bool, error) {
	name = strings.TrimSpace(name)
	locator = strings.TrimSpace(locator)
	if name == "" {
		return false, &AliasError{Name: name, Err: ErrInvalidName}
	}
	if locator == "" {
		return false, &AliasError{Name: name, Err: ErrInvalidLocator}
	}

	_, existed := s.entries[name]
	s.entries[name] = entry{URL: locator, Album: kind == model.KindAlbum}
	s.dirty = true
	return !existed, nil
}

// Remove deletes an alias.
func (s *Store) Remove(name string) error {
	if _, ok := s.entries[name]; !ok {
		return &AliasError{Name: name, Err: ErrNotFound}
	}
	delete(s.entries, name)
	s.dirty = true
	return nil
}

// List returns all aliases sorted by name.
func (s *Store) List() []model.Alias {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	aliases := make([]model.Alias, 0, len(names))
	for _, name := range names {
		aliases = append(aliases, toAlias(name, s.entries[name]))
	}
	return aliases
}

// Len returns the number of aliases.
func (s *Store) Len() int {
	return len(s.entries)
}

// Flush writes pending changes to disk.
func (s *Store) Flush() error {
	if !s.dirty {
		return nil
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	if err := ioutils.WriteFileAtomic(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write aliases: %w", err)
	}

	s.dirty = false
	return nil
}

func toAlias(name string, e entry) model.Alias {
	kind := model.KindSingle
	if e.Album {
		kind = model.KindAlbum
	}
	return model.Alias{Name: name, Locator: e.URL, Kind: kind}
}
