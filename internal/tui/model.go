package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/redactyl/piiredact/internal/tabular"
)

var (
	detailPaneBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(1, 4)

	piiStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	cleanStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

const defaultStatus = "q: quit | ?: help | /: search | p: PII only | c: copy JSON | i: copy id"

// Model is the state of the result browser.
type Model struct {
	table    table.Model
	viewport viewport.Model
	search   textinput.Model

	results []tabular.Result
	visible []int // indices into results after filters
	source  string
	prefs   Prefs
	persist bool

	searchMode    bool
	searchQuery   string
	showHelp      bool
	ready         bool
	quitting      bool
	width         int
	height        int
	statusMessage string
	statusTimeout *time.Time
}

// NewModel builds a browser over results. source names the file for the title.
func NewModel(results []tabular.Result, source string, prefs Prefs) Model {
	columns := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Record", Width: 16},
		{Title: "PII", Width: 6},
		{Title: "Data", Width: 60},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true)
	s.Cell = lipgloss.NewStyle().Padding(0, 1)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "Search record id or data..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.Prompt = "/ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := Model{
		table:         t,
		search:        ti,
		results:       results,
		source:        source,
		prefs:         prefs,
		statusMessage: defaultStatus,
	}
	m.applyFilters()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// applyFilters recomputes the visible rows and refreshes the table.
func (m *Model) applyFilters() {
	q := strings.ToLower(m.searchQuery)
	m.visible = nil
	for i, r := range m.results {
		if m.prefs.SensitiveOnly && !r.Sensitive {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(r.ID), q) && !strings.Contains(strings.ToLower(r.Data), q) {
			continue
		}
		m.visible = append(m.visible, i)
	}

	rows := make([]table.Row, len(m.visible))
	for i, idx := range m.visible {
		r := m.results[idx]
		rows[i] = table.Row{strconv.Itoa(idx + 1), r.ID, piiText(r.Sensitive), r.Data}
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
	m.updateViewportContent()
}

// piiText is plain so the table can truncate it.
func piiText(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// selected returns the result under the cursor.
func (m Model) selected() (tabular.Result, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.visible) {
		return tabular.Result{}, false
	}
	return m.results[m.visible[c]], true
}

func (m *Model) updateViewportContent() {
	r, ok := m.selected()
	if !ok {
		m.viewport.SetContent("No rows match the current filter")
		return
	}
	body := PrettyJSON(r.Data)
	if m.prefs.Highlight {
		body = HighlightJSON(body)
	}
	verdict := cleanStyle.Render("clean")
	if r.Sensitive {
		verdict = piiStyle.Render("PII")
	}
	m.viewport.SetContent(fmt.Sprintf("record %s  %s\n\n%s", r.ID, verdict, body))
	m.viewport.GotoTop()
}

func (m *Model) setStatus(s string) {
	m.statusMessage = s
	timeout := time.Now().Add(3 * time.Second)
	m.statusTimeout = &timeout
}

type statusMsg string

func (m Model) copySelected(idOnly bool) tea.Cmd {
	r, ok := m.selected()
	if !ok {
		return nil
	}
	text, what := r.Data, "redacted JSON"
	if idOnly {
		text, what = r.ID, "record id"
	}
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return statusMsg("Clipboard unavailable: " + err.Error())
		}
		return statusMsg("Copied " + what + " to clipboard")
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case statusMsg:
		m.setStatus(string(msg))
		return m, nil

	case tea.KeyMsg:
		if m.statusTimeout != nil && time.Now().After(*m.statusTimeout) {
			m.statusMessage, m.statusTimeout = defaultStatus, nil
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.searchMode {
			switch msg.String() {
			case "enter":
				m.searchMode = false
				m.search.Blur()
			case "esc":
				m.searchMode = false
				m.search.Blur()
				m.search.SetValue("")
				m.searchQuery = ""
				m.applyFilters()
			default:
				m.search, cmd = m.search.Update(msg)
				m.searchQuery = m.search.Value()
				m.applyFilters()
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "/":
			m.searchMode = true
			m.search.Focus()
			return m, textinput.Blink
		case "esc":
			if m.searchQuery != "" {
				m.searchQuery = ""
				m.search.SetValue("")
				m.applyFilters()
			}
			return m, nil
		case "p":
			m.prefs.SensitiveOnly = !m.prefs.SensitiveOnly
			m.applyFilters()
			m.savePrefs()
			if m.prefs.SensitiveOnly {
				m.setStatus("Showing PII rows only")
			} else {
				m.setStatus("Showing all rows")
			}
			return m, nil
		case "h":
			m.prefs.Highlight = !m.prefs.Highlight
			m.updateViewportContent()
			m.savePrefs()
			return m, nil
		case "c":
			return m, m.copySelected(false)
		case "i":
			return m, m.copySelected(true)
		case "ctrl+d", "pgdown":
			m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height/2)
			return m, nil
		case "ctrl+u", "pgup":
			m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height/2)
			return m, nil
		}
		before := m.table.Cursor()
		m.table, cmd = m.table.Update(msg)
		if m.table.Cursor() != before {
			m.updateViewportContent()
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true

		cols := m.table.Columns()
		dataWidth := m.width - cols[0].Width - cols[1].Width - cols[2].Width - 10
		if dataWidth < 20 {
			dataWidth = 20
		}
		cols[3].Width = dataWidth
		m.table.SetColumns(cols)

		available := m.height - 2
		tableHeight := available * 45 / 100
		viewportHeight := available - tableHeight - detailPaneBorderStyle.GetVerticalFrameSize() - 1
		if viewportHeight < 3 {
			viewportHeight = 3
		}
		m.table.SetWidth(m.width)
		m.table.SetHeight(tableHeight)
		m.viewport = viewport.New(m.width-detailPaneBorderStyle.GetHorizontalFrameSize(), viewportHeight)
		m.updateViewportContent()
		return m, nil
	}
	return m, nil
}

func (m *Model) savePrefs() {
	if !m.persist {
		return
	}
	if err := SavePrefs(m.prefs); err != nil {
		m.setStatus("Could not save preferences: " + err.Error())
	}
}

func (m Model) counts() (total, pii int) {
	for _, idx := range m.visible {
		if m.results[idx].Sensitive {
			pii++
		}
	}
	return len(m.visible), pii
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		help := strings.Join([]string{
			"j/k, up/down   move",
			"/              search record id and data",
			"esc            clear search",
			"p              toggle PII rows only",
			"h              toggle highlighting",
			"c              copy redacted JSON",
			"i              copy record id",
			"pgup/pgdown    scroll detail",
			"q              quit",
		}, "\n")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popupStyle.Render(help))
	}

	shown, pii := m.counts()
	stats := fmt.Sprintf("%s  rows %d/%d  |  %s %d  |  %s %d",
		titleStyle.Render(m.source), shown, len(m.results),
		piiStyle.Render("PII:"), pii, cleanStyle.Render("clean:"), shown-pii)
	if m.prefs.SensitiveOnly {
		stats += "  [PII only]"
	}
	if m.searchQuery != "" {
		stats += fmt.Sprintf("  [search: %q]", m.searchQuery)
	}

	bottom := statusStyle.Width(m.width).Render(m.statusMessage)
	if m.searchMode {
		bottom = m.search.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		stats,
		m.table.View(),
		detailPaneBorderStyle.Render(m.viewport.View()),
		bottom,
	)
}
