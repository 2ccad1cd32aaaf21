// Package ioutils provides file system and image processing utilities.
//
// # File Operations
//
//	// Replace a file without ever exposing a partial write
//	err := ioutils.WriteFileAtomic("/path/to/aliases.json", data, 0644)
//
//	// Move a finished download out of its staging directory
//	err := ioutils.MoveFile(staged, "/music/Artist/Album/01 - Intro.mp3")
//
// # Filename Sanitization
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
//
// # Image Processing
//
// The ImageService prepares cover art:
//
//	svc := ioutils.NewImageService()
//	cover, _ := svc.PrepareCover(ctx, imageData, 500) // JPEG, at most 500x500
package ioutils
