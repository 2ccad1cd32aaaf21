package ioutils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidChars    = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f\x7f]`)
	multiWhitespace = regexp.MustCompile(`\s+`)
)

// SanitizeFileName replaces characters that are invalid in file names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) → underscore
//   - Multiple whitespace → single space
//   - Leading/trailing whitespace and dots → removed
//   - Empty result → "track"
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
//	SanitizeFileName("...")            // Returns "track"
func SanitizeFileName(name string) string {
	return SanitizePathSegment(name, "track")
}

// SanitizePathSegment is SanitizeFileName with a custom fallback for
// names that end up empty.
func SanitizePathSegment(name, fallback string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = multiWhitespace.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	name = strings.Trim(name, ".")
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	return name
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// WriteFileAtomic replaces path with data so that readers observe either
// the previous content or the new content, never a partial write.
//
// The data is written to a temporary file in the same directory, synced,
// and renamed over path.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename has succeeded.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// MoveFile moves src to dst. When a rename is not possible (for example
// across file systems) the file is copied and the source removed.
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := CopyFile(src, dst); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("move %s: %w", filepath.Base(src), err)
	}
	return os.Remove(src)
}

// CopyFile copies a file from source to destination.
//
// The destination file is created with mode 0644 if it doesn't exist,
// or truncated if it does.
func CopyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return err
	}
	return destFile.Close()
}

// Exists reports whether path exists. Errors other than "not exist" are
// treated as existing so callers never overwrite a file they cannot stat.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}
