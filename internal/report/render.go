package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/landonrogers/bippi/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// Render writes a human readable summary to w.
func (r *Report) Render(w io.Writer) error {
	var b strings.Builder

	heading := r.Album
	if r.Kind == model.KindAlbum && r.Artist != "" {
		heading = r.Artist + " - " + r.Album
	}
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")
	if r.Folder != "" {
		b.WriteString(dimStyle.Render(r.Folder))
		b.WriteString("\n")
	}

	for _, warning := range r.Warnings {
		b.WriteString(warningStyle.Render("! " + warning))
		b.WriteString("\n")
	}

	summary := fmt.Sprintf("%d/%d tracks downloaded", r.Succeeded, r.Total())
	switch {
	case r.Succeeded == 0:
		b.WriteString(errorStyle.Render("✗ " + summary))
	case r.Failed > 0 || r.Skipped > 0:
		b.WriteString(warningStyle.Render("! " + summary))
	default:
		b.WriteString(successStyle.Render("✓ " + summary))
	}
	b.WriteString("\n")

	for _, f := range r.Failures {
		b.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ %02d %s: %s", f.Position, f.Title, f.Reason)))
		b.WriteString("\n")
	}
	for _, tw := range r.TagWarnings {
		b.WriteString(warningStyle.Render(fmt.Sprintf("  ! %02d %s: %s", tw.Position, tw.Title, tw.Message)))
		b.WriteString("\n")
	}
	if r.Skipped > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d track(s) not started", r.Skipped)))
		b.WriteString("\n")
	}

	if r.PlaylistPath != "" {
		b.WriteString(dimStyle.Render("playlist: " + r.PlaylistPath))
		b.WriteString("\n")
	}
	if r.ArtworkPath != "" {
		b.WriteString(dimStyle.Render("cover: " + r.ArtworkPath))
		b.WriteString("\n")
	}
	if r.Interrupted {
		b.WriteString(warningStyle.Render("interrupted"))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
