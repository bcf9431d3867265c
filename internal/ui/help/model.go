package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/festpack/internal/keys"
	"github.com/nhle/festpack/internal/model"
	"github.com/nhle/festpack/internal/theme"
	"github.com/nhle/festpack/internal/ui/command"
)

var sectionStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(theme.ColorWhite).
	MarginTop(1)

// Model is the help overlay: keybindings, palette commands and the
// category legend.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.ShowAll = true
	h.Width = width - 4
	return Model{keys: keys, help: h, width: width, height: height}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(tea.Msg) (Model, tea.Cmd) { return m, nil }

func (m Model) View() string {
	sections := []string{
		theme.HeaderStyle.Render("festpack help"),
		sectionStyle.Render("Keys"),
		m.help.View(m.keys),
		sectionStyle.Render("Commands"),
		commandLines(),
		sectionStyle.Render("Categories"),
		legend(),
	}
	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func commandLines() string {
	width := 0
	for _, c := range command.Commands {
		width = max(width, len(c.Usage))
	}
	lines := make([]string, 0, len(command.Commands))
	for _, c := range command.Commands {
		lines = append(lines, fmt.Sprintf(":%-*s  %s", width, c.Usage, theme.MutedStyle.Render(c.Help)))
	}
	return strings.Join(lines, "\n")
}

func legend() string {
	names := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		names = append(names, theme.CategoryStyle(c.ID).Render(c.Name))
	}
	return strings.Join(names, "  ")
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
