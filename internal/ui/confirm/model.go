package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmedMsg is dispatched when the user accepts the prompt.
type ConfirmedMsg struct {
	Action string
}

// CancelledMsg is dispatched when the user declines or aborts the prompt.
type CancelledMsg struct {
	Action string
}

// Prompt describes a yes/no question guarding a destructive action.
type Prompt struct {
	Action      string
	Title       string
	Description string
	Affirmative string
}

type formBindings struct {
	confirm bool
}

// Model wraps a huh confirm field.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	action string
	width  int
	height int
}

// New creates a confirm model.
func New(width, height int) Model {
	return Model{fb: &formBindings{}, width: width, height: height}
}

// Start shows p, defaulting to the negative answer.
func (m *Model) Start(p Prompt) tea.Cmd {
	m.action = p.Action
	m.fb.confirm = false

	affirmative := p.Affirmative
	if affirmative == "" {
		affirmative = "Yes"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(p.Title).
				Description(p.Description).
				Affirmative(affirmative).
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
	return m.form.Init()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	action := m.action
	switch m.form.State {
	case huh.StateCompleted:
		if m.fb.confirm {
			return m, func() tea.Msg { return ConfirmedMsg{Action: action} }
		}
		return m, func() tea.Msg { return CancelledMsg{Action: action} }
	case huh.StateAborted:
		return m, func() tea.Msg { return CancelledMsg{Action: action} }
	}
	return m, cmd
}

// View renders the prompt.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 6 {
		h = 6
	}
	return h
}
