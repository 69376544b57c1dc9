package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"pms/console"
	"pms/list"
	"pms/media"
)

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// block joins lines into exactly height rows.
func block(lines []string, width, height int) string {
	if height <= 0 || width <= 0 {
		return ""
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines[:height], "\n")
}

type searchModel struct {
	width, height int
	textInput     textinput.Model
	searching     bool
	fuzzy         bool
}

func (m searchModel) Init() tea.Cmd { return nil }
func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = max(msg.Width-3, 1)
	}
	return m, nil
}

// prompt marks fuzzy searches with a tilde.
func (m searchModel) prompt() string {
	if m.fuzzy {
		return "~/"
	}
	return "/"
}

func (m searchModel) View() string {
	var line string
	switch {
	case m.searching:
		m.textInput.Prompt = m.prompt()
		line = m.textInput.View()
	case m.textInput.Value() != "":
		line = mutedStyle.Render(fit(m.prompt()+m.textInput.Value(), m.width))
	case m.fuzzy:
		line = mutedStyle.Render(fit("~/ fuzzy search • F exact search • tab next list • q quit", m.width))
	default:
		line = mutedStyle.Render(fit("/ search • F fuzzy search • tab next list • q quit", m.width))
	}
	return block([]string{line}, m.width, m.height)
}

type listModel struct {
	width, height int
	lists         []*list.List
	current       *list.List
}

func (m listModel) Init() tea.Cmd { return nil }
func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// one row for the title
		for _, l := range m.lists {
			l.SetHeight(max(msg.Height-1, 0))
			l.AdjustViewportToCursor()
		}
	}
	return m, nil
}
func (m listModel) View() string {
	if m.height <= 0 || m.width <= 0 || m.current == nil {
		return ""
	}
	l := m.current

	title := l.Title()
	if n := l.SelectionLen(); n > 0 {
		title = fmt.Sprintf("%s (%d/%d selected)", title, n, l.Size())
	} else {
		title = fmt.Sprintf("%s (%d)", title, l.Size())
	}
	lines := []string{titleStyle.Render(fit(title, m.width))}

	if l.Size() == 0 {
		lines = append(lines, mutedStyle.Render(fit("  (empty)", m.width)))
	}
	for i := l.TopPosition(); i <= l.BottomPosition(); i++ {
		line := row(l.Item(i), m.width-2)
		switch {
		case i == l.Cursor():
			lines = append(lines, cursorStyle.Render(marker(l, i)+line))
		case l.Selected(i):
			lines = append(lines, selectedItemStyle.Render(marker(l, i)+line))
		default:
			lines = append(lines, marker(l, i)+line)
		}
	}
	return block(lines, m.width, m.height)
}

func marker(l *list.List, i int) string {
	if l.Selected(i) {
		return "* "
	}
	return "  "
}

// row renders an item in width cells.
func row(item list.Item, width int) string {
	switch item := item.(type) {
	case *media.Song:
		length := item.Length()
		if width <= len(length)+1 {
			return fit(item.String(), width)
		}
		return fit(item.String(), width-len(length)-1) + " " + length
	case *media.Binding:
		keys := fit(strings.Join(item.Keys, ", "), 16)
		return fit(keys+" "+item.Help, width)
	case fmt.Stringer:
		return fit(item.String(), width)
	}
	return fit(fmt.Sprint(item), width)
}

type consoleModel struct {
	width, height int
	console       *console.Console
}

func (m consoleModel) Init() tea.Cmd { return nil }
func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.console.SetHeight(max(msg.Height-1, 0))
	}
	return m, nil
}
func (m consoleModel) View() string {
	if m.height <= 0 || m.width <= 0 {
		return ""
	}
	lines := []string{titleStyle.Render(fit("Console", m.width))}
	for _, line := range m.console.Visible() {
		lines = append(lines, fit(line.String(), m.width))
	}
	return block(lines, m.width, m.height)
}

type statusModel struct {
	width     int
	connected bool
	addr      string
	state     string
	song      string
	message   string
	isError   bool
}

func (m statusModel) Init() tea.Cmd { return nil }
func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}
// nowPlaying describes the player, or returns "" when nothing is known.
func (m statusModel) nowPlaying() string {
	switch m.state {
	case "play":
		return "playing " + m.song
	case "pause":
		return "paused " + m.song
	case "stop":
		return "stopped"
	}
	return ""
}

func (m statusModel) View() string {
	parts := []string{"[disconnected]"}
	if m.connected {
		parts[0] = "[connected to " + m.addr + "]"
		if playing := m.nowPlaying(); playing != "" {
			parts = append(parts, playing)
		}
	}
	if m.message != "" {
		parts = append(parts, m.message)
	}
	text := fit(strings.Join(parts, " • "), m.width)
	if m.isError {
		return errorStyle.Render(text)
	}
	return statusStyle.Render(text)
}
