package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/festpack/internal/theme"
)

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// Entry documents a palette command.
type Entry struct {
	Name  string
	Usage string
	Help  string
}

// Commands lists the palette commands in display order.
var Commands = []Entry{
	{Name: "export", Usage: "export [file]", Help: "copy the checklist, or write it to file"},
	{Name: "import", Usage: "import [file]", Help: "paste a checklist, or read it from file"},
	{Name: "templates", Usage: "templates", Help: "browse festival templates"},
	{Name: "history", Usage: "history", Help: "recently viewed templates"},
	{Name: "apply", Usage: "apply <template-id>", Help: "add a template's items"},
	{Name: "event", Usage: "event", Help: "edit event details"},
	{Name: "reset", Usage: "reset", Help: "restore the base checklist"},
	{Name: "quit", Usage: "quit", Help: "exit festpack"},
}

// Parse splits a command line into its name and arguments. The name is
// lower-cased; arguments keep their case.
func Parse(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.Focus()
	ti.Width = width - 6

	names := make([]string, len(Commands))
	for i, c := range Commands {
		names[i] = c.Name
	}
	ti.SetSuggestions(names)

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			cmd := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if cmd != "" {
				return m, func() tea.Msg {
					return CommandMsg(cmd)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Command Palette")
	input := m.input.View()

	usageStyle := lipgloss.NewStyle().Foreground(theme.ColorBlue).Width(22)
	lines := make([]string, len(Commands))
	for i, c := range Commands {
		lines[i] = usageStyle.Render(c.Usage) + theme.HelpStyle.Render(c.Help)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, input, "", strings.Join(lines, "\n"))

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
