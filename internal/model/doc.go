// Package model defines the core data structures shared by the album
// acquisition pipeline.
//
// # Pipeline types
//
// Data flows through the pipeline in this order:
//
//	RawLocator     entries listed by the download engine, in source order
//	CatalogTrack   authoritative tracks from the metadata catalog
//	AlignedTrack   a locator paired with its target number/title/artist
//	DownloadResult the outcome of one download attempt
//
// # Album
//
// Album holds the computed output paths of a run:
//
//	album := model.NewAlbum(model.KindAlbum, "Artist", "Title", "2020-01-31", pathConfig)
//	fmt.Println(album.Path)         // Where track files go
//	fmt.Println(album.PlaylistPath) // Where the playlist goes
//
// Track file names are derived from the aligned track:
//
//	track.FileBase(album) // "01 - Intro", or "02-01 - Intro" on multi-disc albums
//
// Available placeholders: {artist}, {album}, {year}
package model
