// Package tui provides a Bubble Tea terminal user interface for genius-lyrics.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/genius-lyrics/internal/batch"
	"github.com/handiism/genius-lyrics/internal/config"
	"github.com/handiism/genius-lyrics/internal/genius"
	ioutils "github.com/handiism/genius-lyrics/internal/io"
	"github.com/handiism/genius-lyrics/internal/logging"
	"github.com/handiism/genius-lyrics/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFF64")).
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

	lyricsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// previewLines is how many lyrics lines the result box shows.
const previewLines = 8

// debugLogFile receives diagnostics when the TUI runs verbose.
const debugLogFile = "lyrics-tui.log"

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateFetching
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   batch.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state   State
	title   textinput.Model
	artist  textinput.Model
	spinner spinner.Model
	logs    []LogEntry
	result  batch.Single
	err     error

	// Fetch context
	ctx    context.Context
	cancel context.CancelFunc

	// fetchID identifies the latest lookup; results of older ones are dropped.
	fetchID int

	fetcher batch.Fetcher
	saver   batch.Saver
	logger  *slog.Logger
	outDir  string

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model that looks songs up with fetcher and
// writes them with store.
func NewModel(fetcher batch.Fetcher, store *ioutils.Store, logger *slog.Logger, verbose bool) Model {
	title := textinput.New()
	title.Placeholder = "Hey Jude"
	title.Prompt = "Title:  "
	title.Focus()
	title.CharLimit = 200
	title.Width = 50

	artist := textinput.New()
	artist.Placeholder = "The Beatles (optional)"
	artist.Prompt = "Artist: "
	artist.CharLimit = 200
	artist.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF64"))

	if logger == nil {
		logger = logging.Discard()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:   StateInput,
		title:   title,
		artist:  artist,
		spinner: sp,
		logs:    make([]LogEntry, 0),
		ctx:     ctx,
		cancel:  cancel,
		fetcher: fetcher,
		saver:   store,
		logger:  logger,
		outDir:  store.Dir(),
		verbose: verbose,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// FetchDoneMsg is sent when a lookup finishes.
type FetchDoneMsg struct {
	ID     int
	Result batch.Single
	Events []batch.ProgressEvent
	Err    error
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateInput, StateComplete, StateError:
				return m, tea.Quit
			case StateFetching:
				m.cancel()
				m.state = StateError
				m.err = errors.New("cancelled by user")
				return m, nil
			}

		case "tab", "shift+tab", "up", "down":
			if m.state == StateInput {
				m.toggleFocus()
				return m, textinput.Blink
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.title.Value()) != "" {
				m.state = StateFetching
				m.logs = nil
				m.fetchID++
				return m, tea.Batch(m.fetchSong(), m.spinner.Tick)
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for another song
				m.state = StateInput
				m.logs = nil
				m.result = batch.Single{}
				m.err = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.title.SetValue("")
				m.artist.SetValue("")
				m.artist.Blur()
				return m, m.title.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case FetchDoneMsg:
		if m.state != StateFetching || msg.ID != m.fetchID {
			// cancelled, or superseded by a newer lookup
			return m, nil
		}
		for _, event := range msg.Events {
			m.addLog(event)
		}
		m.result = msg.Result
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateComplete
		}
	}

	// Update text inputs
	if m.state == StateInput {
		var cmd tea.Cmd
		m.title, cmd = m.title.Update(msg)
		cmds = append(cmds, cmd)
		m.artist, cmd = m.artist.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) toggleFocus() {
	if m.title.Focused() {
		m.title.Blur()
		m.artist.Focus()
		return
	}
	m.artist.Blur()
	m.title.Focus()
}

func (m *Model) addLog(event batch.ProgressEvent) {
	// Filter verbose messages if not in verbose mode
	if event.Level == batch.LevelVerbose && !m.verbose {
		return
	}
	m.logs = append(m.logs, LogEntry{
		Message: strings.TrimSpace(event.Message),
		Level:   event.Level,
	})
	// Keep only last 10 logs
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎤 Genius Lyrics"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Fetch song lyrics from Genius"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateFetching:
		b.WriteString(m.viewFetching())
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

	b.WriteString(subtitleStyle.Render("Enter a song:"))
	b.WriteString("\n\n")
	b.WriteString(m.title.View())
	b.WriteString("\n")
	b.WriteString(m.artist.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output directory: %s", m.outDir)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewFetching() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Searching for %s...", m.request())))
	b.WriteString("\n\n")

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	if !m.result.Found() {
		b.WriteString(warningStyle.Render(fmt.Sprintf("No lyrics found for %s", m.request())))
		b.WriteString("\n\n")
		b.WriteString(m.renderLogs())
		return b.String()
	}

	lyrics := m.result.Lyrics
	heading := lyrics.Title
	if lyrics.Artist != "" {
		heading = fmt.Sprintf("%s by %s", lyrics.Title, lyrics.Artist)
	}

	box := boxStyle.Render(
		successStyle.Render("✨ "+heading) + "\n\n" +
			lyricsStyle.Render(preview(lyrics.Text, previewLines)) + "\n\n" +
			infoStyle.Render("Saved to "+m.result.Path),
	)
	b.WriteString(box)
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case batch.LevelError:
			style = errorStyle
			prefix = "✗"
		case batch.LevelWarning:
			style = warningStyle
			prefix = "!"
		case batch.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case batch.LevelInfo:
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
		return "enter: fetch • tab: switch field • esc: quit"
	case StateFetching:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: fetch another • q/esc: quit"
	}
	return ""
}

func (m Model) request() model.SongRequest {
	return model.SongRequest{
		Title:  strings.TrimSpace(m.title.Value()),
		Artist: strings.TrimSpace(m.artist.Value()),
	}
}

// fetchSong looks the song up in the background and reports every progress
// event with the result.
func (m Model) fetchSong() tea.Cmd {
	ctx := m.ctx
	id := m.fetchID
	req := m.request()
	fetcher, saver, logger := m.fetcher, m.saver, m.logger

	return func() tea.Msg {
		var events []batch.ProgressEvent
		runner := batch.NewRunner(fetcher, saver,
			batch.WithLogger(logger),
			batch.WithProgress(func(e batch.ProgressEvent) {
				events = append(events, e)
			}),
		)

		single, err := runner.FetchOne(ctx, req)
		return FetchDoneMsg{ID: id, Result: single, Events: events, Err: err}
	}
}

// preview returns the first n lines of text.
func preview(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return text
	}
	return strings.Join(lines[:n], "\n") + "\n…"
}

// Run starts the TUI application using settings and the Genius token.
func Run(settings *config.Settings, token string, verbose bool) error {
	// the alt screen owns the terminal; diagnostics go to a file when verbose
	logger := logging.Discard()
	if verbose {
		f, err := tea.LogToFile(debugLogFile, "")
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", debugLogFile, err)
		}
		defer f.Close()
		logger = logging.Setup("debug", settings.LogFormat, f)
	}

	client := genius.NewClientFromSettings(token, settings, logger)
	store := ioutils.NewStore(settings.OutputDir)

	p := tea.NewProgram(NewModel(client, store, logger, verbose), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
