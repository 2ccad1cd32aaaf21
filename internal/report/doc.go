// Package report summarizes a finished run.
//
// Build is pure: it takes the album and the per-track results in any
// order and returns a Report sorted by target position, so output is
// identical for sequential and parallel runs.
//
//	r := report.Build(album, results, report.Options{Degraded: true})
//	_ = r.Render(os.Stdout)
//	os.Exit(r.ExitCode())
package report
