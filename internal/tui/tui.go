// Package tui provides a Bubble Tea terminal user interface for bippi.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/landonrogers/bippi/internal/config"
	"github.com/landonrogers/bippi/internal/download"
	"github.com/landonrogers/bippi/internal/report"
)

// maxLogs is how many progress events stay on screen.
const maxLogs = 10

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	aliases   download.AliasResolver
	logs      []LogEntry
	report    *report.Report
	err       error

	// Download context
	ctx    context.Context
	cancel context.CancelFunc

	// Download manager reference and its event stream
	manager *download.Manager
	events  chan download.ProgressEvent

	// Download progress
	completed int32
	failed    int32
	total     int32

	// Options
	album    bool
	playlist bool
	verbose  bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings, aliases download.AliasResolver) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "Artist - Album, a URL or an alias"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		aliases:   aliases,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		album:     true,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when the manager reports progress.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// DownloadDoneMsg is sent when the request completes.
	DownloadDoneMsg struct {
		Report *report.Report
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateDownloading {
				// The run finishes the in-flight track and reports the rest
				// as not started.
				m.cancel()
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateDownloading
				m.events = make(chan download.ProgressEvent, 64)
				m.manager = m.newManager()
				return m, tea.Batch(m.startDownload(), m.waitForEvent(), m.tickProgress(), m.spinner.Tick)
			}

		case "tab":
			if m.state == StateInput {
				m.album = !m.album
				return m, nil
			}

		case "ctrl+p":
			if m.state == StateInput {
				m.playlist = !m.playlist
				return m, nil
			}

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for new download
				m.state = StateInput
				m.logs = nil
				m.report = nil
				m.err = nil
				m.completed, m.failed, m.total = 0, 0, 0
				m.manager = nil
				m.events = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level != download.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{
				Message: msg.Event.Message,
				Level:   msg.Event.Level,
			})
			if len(m.logs) > maxLogs {
				m.logs = m.logs[len(m.logs)-maxLogs:]
			}
		}
		if m.state == StateDownloading {
			cmds = append(cmds, m.waitForEvent())
		}

	case DownloadDoneMsg:
		if m.manager != nil {
			m.completed, m.failed, m.total = m.manager.GetProgress()
		}
		switch {
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		case msg.Report.Interrupted:
			m.state = StateError
			m.report = msg.Report
			m.err = fmt.Errorf("cancelled by user")
		default:
			m.state = StateComplete
			m.report = msg.Report
		}

	case TickMsg:
		if m.manager != nil && m.state == StateDownloading {
			m.completed, m.failed, m.total = m.manager.GetProgress()
			var percent float64
			if m.total > 0 {
				percent = float64(m.completed+m.failed) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent delivers the next progress event of the running request.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♪ bippi"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download tagged albums and tracks"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("What should be downloaded?"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Whole album (tab)\n", checkbox(m.album)))
	b.WriteString(fmt.Sprintf("  %s Create playlist (ctrl+p)\n", checkbox(m.playlist)))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (ctrl+v)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Download path: %s (%s)", m.settings.Destination(), m.settings.Format())))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(m.textInput.Value()))
	b.WriteString("\n\n")

	if m.total > 0 {
		percent := float64(m.completed+m.failed) / float64(m.total)
		b.WriteString(m.progress.ViewAs(percent))
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf("Tracks: %d/%d | Failed: %d", m.completed, m.total, m.failed)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	r := m.report
	summary := fmt.Sprintf("Download Complete!\n\n%s\nTracks: %d/%d", r.Album, r.Succeeded, r.Total())
	if r.Failed > 0 {
		summary += fmt.Sprintf("\nFailed: %d", r.Failed)
	}
	if r.Degraded {
		summary += "\nMetadata: source titles"
	}
	if r.Folder != "" {
		summary += "\n" + r.Folder
	}
	b.WriteString(boxStyle.Render(summary))
	b.WriteString("\n")

	for _, f := range r.Failures {
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ %02d %s: %s", f.Position, f.Title, f.Reason)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n")
	}
	if m.report != nil {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d tracks downloaded before stopping", m.report.Succeeded, m.report.Total())))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • tab: album/single • ctrl+p: playlist • ctrl+v: verbose • esc: quit"
	case StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download • q: quit"
	}
	return ""
}

func checkbox(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

// newManager creates a manager that forwards its events to m.events.
// Events are dropped rather than blocking a download when the UI falls
// behind.
func (m Model) newManager() *download.Manager {
	events := m.events
	return download.NewManager(m.settings, download.Dependencies{Aliases: m.aliases}, func(event download.ProgressEvent) {
		select {
		case events <- event:
		default:
		}
	})
}

// startDownload runs the request in the background.
func (m Model) startDownload() tea.Cmd {
	manager := m.manager
	ctx := m.ctx
	events := m.events
	req := download.Request{
		Target:   strings.TrimSpace(m.textInput.Value()),
		Playlist: m.playlist,
	}
	album := m.album

	return func() tea.Msg {
		defer close(events)

		var (
			r   *report.Report
			err error
		)
		if album {
			r, err = manager.Album(ctx, req)
		} else {
			r, err = manager.Single(ctx, req)
		}
		return DownloadDoneMsg{Report: r, Err: err}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings, aliases download.AliasResolver) error {
	p := tea.NewProgram(NewModel(settings, aliases), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
