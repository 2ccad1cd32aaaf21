package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/landonrogers/bippi/internal/config"
	"github.com/landonrogers/bippi/internal/download"
	"github.com/landonrogers/bippi/internal/model"
	"github.com/landonrogers/bippi/internal/report"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
)

type downloadFlags struct {
	dest     string
	format   string
	release  string
	workers  int
	playlist bool
}

func cmdSingle(a *app) *cobra.Command {
	var flags downloadFlags
	cmd := &cobra.Command{
		Use:   "single <target...>",
		Short: "Download one track",
		Long: "Download one track. The target is an alias, a URL or a search query;\n" +
			"a query is searched and the first match is downloaded.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDownload(cmd, model.KindSingle, args, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.dest, "dest", "d", "", "destination directory (overrides config)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "audio format: "+strings.Join(config.SupportedFormats, ", "))
	return cmd
}

func cmdAlbum(a *app) *cobra.Command {
	var flags downloadFlags
	cmd := &cobra.Command{
		Use:   "album <target...>",
		Short: "Download a whole album",
		Long: "Download a whole album. The target is an alias, a playlist URL or\n" +
			"\"Artist - Album\". Track names, order and tags come from MusicBrainz\n" +
			"when a matching release is found.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.workers < 0 || flags.workers > config.MaxWorkers {
				return fmt.Errorf("--workers must be between 1 and %d", config.MaxWorkers)
			}
			return a.runDownload(cmd, model.KindAlbum, args, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.dest, "dest", "d", "", "destination directory (overrides config)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "audio format: "+strings.Join(config.SupportedFormats, ", "))
	cmd.Flags().StringVar(&flags.release, "release", "", "MusicBrainz release id or URL to use instead of searching")
	cmd.Flags().IntVarP(&flags.workers, "workers", "j", 0, fmt.Sprintf("parallel downloads, 1 to %d (overrides config)", config.MaxWorkers))
	cmd.Flags().BoolVar(&flags.playlist, "playlist", false, "create a playlist file")
	return cmd
}

func (a *app) runDownload(cmd *cobra.Command, kind model.Kind, args []string, flags downloadFlags) error {
	settings, err := a.store.Settings().ApplyEnv()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	manager := download.NewManager(settings, download.Dependencies{Aliases: a.aliases}, func(event download.ProgressEvent) {
		printEvent(out, event, a.verbose)
	})

	req := download.Request{
		Target:      strings.Join(args, " "),
		Format:      flags.format,
		Destination: flags.dest,
		ReleaseID:   flags.release,
		Workers:     flags.workers,
		Playlist:    flags.playlist,
	}

	var r *report.Report
	if kind == model.KindAlbum {
		r, err = manager.Album(cmd.Context(), req)
	} else {
		r, err = manager.Single(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	if err := r.Render(out); err != nil {
		return err
	}

	switch code := r.ExitCode(); code {
	case report.ExitOK:
		return nil
	case report.ExitInterrupted:
		return &exitError{code: code, msg: "interrupted"}
	default:
		return &exitError{code: code, msg: "no track was downloaded"}
	}
}

func printEvent(w io.Writer, event download.ProgressEvent, verbose bool) {
	if event.Level == download.LevelVerbose && !verbose {
		return
	}

	var line string
	switch event.Level {
	case download.LevelError:
		line = errorStyle.Render("✗ " + event.Message)
	case download.LevelWarning:
		line = warningStyle.Render("! " + event.Message)
	case download.LevelSuccess:
		line = successStyle.Render("✓ " + event.Message)
	case download.LevelInfo:
		line = infoStyle.Render("› " + event.Message)
	default:
		line = dimStyle.Render("  " + event.Message)
	}
	fmt.Fprintln(w, line)
}
