// Package catalog reconciles album requests against MusicBrainz.
//
// A lookup searches releases by "Artist - Album" (or free text), selects
// one candidate deterministically and fetches its full track listing:
//
//   - An exact case-insensitive artist and title match wins
//   - Otherwise the highest token overlap with the query wins
//   - Ties go to the earliest release date, then to search order
//
// Failures are *MetadataError values wrapping ErrNoMatch or
// ErrServiceUnavailable. Callers treat both as a reason to continue
// without catalog metadata rather than to abort.
//
// Cover art for a release comes from the Cover Art Archive.
package catalog
