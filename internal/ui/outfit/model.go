package outfit

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/festpack/internal/keys"
	"github.com/nhle/festpack/internal/model"
	"github.com/nhle/festpack/internal/theme"
	"github.com/nhle/festpack/internal/ui/itemform"
)

// CloseMsg signals the parent to close the outfit view.
type CloseMsg struct{}

// Messages emitted for the parent to act on the selected piece.
type (
	TogglePieceMsg struct{ OutfitID, PieceID string }
	EditPieceMsg   struct{ OutfitID, PieceID string }
	DeletePieceMsg struct{ OutfitID, PieceID string }
	NewPieceMsg    struct{ OutfitID string }
)

// Model shows the pieces of a single outfit.
type Model struct {
	outfit      model.ChecklistItem
	keys        *keys.KeyMap
	selectedIdx int
	width       int
	height      int
}

// New creates an outfit view.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{keys: k, width: width, height: height}
}

// SetOutfit replaces the displayed outfit, keeping the cursor in range.
func (m *Model) SetOutfit(item model.ChecklistItem) {
	if item.ID != m.outfit.ID {
		m.selectedIdx = 0
	}
	m.outfit = item
	if m.selectedIdx >= len(item.OutfitItems) && m.selectedIdx > 0 {
		m.selectedIdx = len(item.OutfitItems) - 1
	}
}

// OutfitID returns the id of the displayed outfit.
func (m Model) OutfitID() string { return m.outfit.ID }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	pieces := m.outfit.OutfitItems
	id := m.outfit.ID

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(keyMsg, m.keys.Down):
		if len(pieces) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(pieces)
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Up):
		if len(pieces) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(pieces) - 1
			}
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.New):
		return m, func() tea.Msg { return NewPieceMsg{OutfitID: id} }
	}

	if len(pieces) == 0 {
		return m, nil
	}
	piece := pieces[m.selectedIdx].ID

	switch {
	case key.Matches(keyMsg, m.keys.Toggle), key.Matches(keyMsg, m.keys.Select):
		return m, func() tea.Msg { return TogglePieceMsg{OutfitID: id, PieceID: piece} }
	case key.Matches(keyMsg, m.keys.Edit):
		return m, func() tea.Msg { return EditPieceMsg{OutfitID: id, PieceID: piece} }
	case key.Matches(keyMsg, m.keys.Delete):
		return m, func() tea.Msg { return DeletePieceMsg{OutfitID: id, PieceID: piece} }
	}
	return m, nil
}

// View renders the outfit and its pieces.
func (m Model) View() string {
	var b strings.Builder

	done, total := m.outfit.SubItemProgress()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	b.WriteString(titleStyle.Render(m.outfit.Text))
	b.WriteString(theme.MutedStyle.Render(fmt.Sprintf("  %d/%d pieces packed", done, total)))
	b.WriteString("\n\n")

	if total == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)
		b.WriteString(emptyStyle.Render("No pieces yet. Press 'n' to add shoes, a top, a bottom or accessories."))
	}

	for i, piece := range m.outfit.OutfitItems {
		box := "[ ]"
		text := piece.Text
		if piece.IsCompleted {
			box = "[x]"
			text = theme.DimmedStyle.Render(text)
		}
		label := fmt.Sprintf("%s %-12s %s", box, itemform.PieceLabel(piece.Type), text)

		if i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(label))
		} else {
			b.WriteString(theme.ListItemStyle.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGray).Render(
		"space check | n new piece | e rename | d remove | esc back",
	))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
