package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// maxRuns is the number of runs loaded into the table.
const maxRuns = 100

// RunOrder selects which runs the stats table lists.
type RunOrder int

const (
	OrderBest   RunOrder = iota // Most lines first
	OrderRecent                 // Newest first
)

// String returns the table heading for the order.
func (o RunOrder) String() string {
	if o == OrderRecent {
		return "Recent runs"
	}
	return "Best runs"
}

// StatsKeyMap defines the key bindings for the run statistics view.
type StatsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Back, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "best/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunStatsModel is the Bubble Tea model listing recorded runs of one game.
type RunStatsModel struct {
	store     *storage.Store
	gameID    string
	title     string
	order     RunOrder
	runs      []storage.Run
	summary   *storage.GameStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      StatsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewRunStatsModel creates a stats view for gameID. store may be nil.
func NewRunStatsModel(store *storage.Store, gameID, title string, width, height int) RunStatsModel {
	m := RunStatsModel{
		store:  store,
		gameID: gameID,
		title:  title,
		keys:   DefaultStatsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *RunStatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Lines", Width: 7},
		{Title: "Pieces", Width: 8},
		{Title: "Time", Width: 9},
		{Title: "Seed", Width: 20},
		{Title: "Date", Width: 14},
	}

	// Narrow terminals drop the seed column first
	if m.width > 0 && m.width < 76 {
		columns = append(columns[:4], columns[5])
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Title, summary, help and borders
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the summary and runs for the current order.
func (m *RunStatsModel) load() {
	m.runs, m.summary, m.loadErr = nil, nil, nil
	if m.store != nil {
		if m.summary, m.loadErr = m.store.GameStats(m.gameID); m.loadErr == nil {
			if m.order == OrderRecent {
				m.runs, m.loadErr = m.store.RecentRuns(m.gameID, maxRuns)
			} else {
				m.runs, m.loadErr = m.store.TopRuns(m.gameID, maxRuns)
			}
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded runs.
func (m *RunStatsModel) updateTableRows() {
	wide := len(m.table.Columns()) == 6

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		row := table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Lines),
			fmt.Sprintf("%d", r.Pieces),
			formatDuration(r.Duration),
		}
		if wide {
			row = append(row, fmt.Sprintf("%d", r.Seed))
		}
		row = append(row, r.CreatedAt.Local().Format("Jan 02 15:04"))
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatDuration renders a run length as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the stats model.
func (m RunStatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats view.
func (m RunStatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			if m.order == OrderBest {
				m.order = OrderRecent
			} else {
				m.order = OrderBest
			}
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.updateTableRows()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats view.
func (m RunStatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText(strings.ToUpper(m.title)+" - "+m.order.String(), m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.summaryLine(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summaryLine renders the aggregated statistics.
func (m RunStatsModel) summaryLine() string {
	if m.summary == nil || m.summary.Runs == 0 {
		return "No runs yet"
	}
	s := m.summary
	return fmt.Sprintf("Runs: %d  Best: %d lines  Avg: %.1f  Total: %d lines  Played: %s",
		s.Runs, s.BestLines, s.AvgLines, s.TotalLines, formatDuration(s.PlayTime))
}

// renderTableContent renders the table or an explanatory message.
func (m RunStatsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Run statistics are unavailable.\nThe database could not be opened.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load runs:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nFinish a game to see it here!")
	}
	return m.table.View()
}

// Runs returns the runs currently listed.
func (m RunStatsModel) Runs() []storage.Run {
	return m.runs
}

// Order returns the current listing order.
func (m RunStatsModel) Order() RunOrder {
	return m.order
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunStatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunStatsModel) IsQuitting() bool {
	return m.quitting
}

// RunStats runs the interactive statistics screen for one game.
func RunStats(store *storage.Store, gameID, title string, width, height int) error {
	model := NewRunStatsModel(store, gameID, title, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
