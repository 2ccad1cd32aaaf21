// Package download runs single and album requests end to end.
//
// # Manager
//
// The Manager coordinates the whole pipeline:
//
//  1. Resolve aliases
//  2. Expand the request into per-track locators with the engine
//  3. Reconcile the album against MusicBrainz (concurrently with step 2
//     for text requests)
//  4. Align locators with the catalog track list
//  5. Download cover art
//  6. Download tracks, sequentially or with a bounded worker pool
//  7. Tag files that the engine could not tag itself
//  8. Generate a playlist (optional) and build the report
//
// # Basic Usage
//
//	manager := download.NewManager(settings, download.Dependencies{Aliases: aliases},
//	    func(event download.ProgressEvent) {
//	        fmt.Println(event.Message)
//	    })
//
//	r, err := manager.Album(ctx, download.Request{Target: "Daft Punk - Discovery"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Exit(r.ExitCode())
//
// # Failure Handling
//
// A request fails as a whole only when it cannot be expanded into any
// track. Catalog failures switch the run to degraded mode with source
// titles. A failing track is recorded and the run continues with the
// next one; there is no automatic retry.
//
// # Cancellation
//
// When the context is cancelled no further track is started. The
// in-flight engine process receives an interrupt and its staging folder
// is removed. Tracks that never started are reported as not started.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// GetProgress returns counters suitable for polling from a UI.
package download
