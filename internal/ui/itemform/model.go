package itemform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/festpack/internal/model"
	"github.com/nhle/festpack/internal/theme"
)

// ItemCreatedMsg is dispatched when a new checklist item is submitted.
type ItemCreatedMsg struct {
	Text     string
	Category string
	Outfit   bool
}

// ItemUpdatedMsg is dispatched when an existing item is edited. The parent
// applies only the fields that differ from the item.
type ItemUpdatedMsg struct {
	ID       string
	Text     string
	Category string
}

// PieceCreatedMsg is dispatched when a piece is added to an outfit.
type PieceCreatedMsg struct {
	OutfitID string
	Type     model.SubItemType
	Text     string
}

// PieceUpdatedMsg is dispatched when an outfit piece is renamed.
type PieceUpdatedMsg struct {
	OutfitID string
	PieceID  string
	Text     string
}

// FormCancelMsg is dispatched when the user cancels the form.
type FormCancelMsg struct{}

type mode int

const (
	modeNewItem mode = iota
	modeEditItem
	modeNewPiece
	modeEditPiece
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	text      string
	category  string
	outfit    bool
	pieceType model.SubItemType
}

// Model is the Bubble Tea model for the item and outfit piece forms.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	mode    mode
	itemID  string
	pieceID string
	heading string
	width   int
	height  int
}

// New creates a new item form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{category: model.CategoryMisc, pieceType: model.SubItemAccessories},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for adding a checklist item.
func (m *Model) StartCreate() tea.Cmd {
	m.mode = modeNewItem
	m.itemID = ""
	m.heading = "New Item"
	m.fb.text = ""
	m.fb.category = model.CategoryMisc
	m.fb.outfit = false
	m.form = m.buildForm(
		m.textField("Item", "What do you need to pack?"),
		m.categoryField(),
		huh.NewConfirm().
			Title("Outfit?").
			Description("Outfits are packed piece by piece").
			Value(&m.fb.outfit),
	)
	return m.form.Init()
}

// StartEdit initializes the form for editing an item.
func (m *Model) StartEdit(item model.ChecklistItem) tea.Cmd {
	m.mode = modeEditItem
	m.itemID = item.ID
	m.heading = "Edit Item"
	m.fb.text = item.Text
	m.fb.category = item.Category
	m.form = m.buildForm(
		m.textField("Item", "What do you need to pack?"),
		m.categoryField(),
	)
	return m.form.Init()
}

// StartCreatePiece initializes the form for adding a piece to an outfit.
func (m *Model) StartCreatePiece(outfit model.ChecklistItem) tea.Cmd {
	m.mode = modeNewPiece
	m.itemID = outfit.ID
	m.heading = "New piece for " + outfit.Text
	m.fb.text = ""
	m.fb.pieceType = model.SubItemAccessories
	m.form = m.buildForm(
		m.pieceTypeField(),
		m.textField("Piece", "e.g. Denim shorts"),
	)
	return m.form.Init()
}

// StartEditPiece initializes the form for renaming an outfit piece.
func (m *Model) StartEditPiece(outfit model.ChecklistItem, piece model.OutfitSubItem) tea.Cmd {
	m.mode = modeEditPiece
	m.itemID = outfit.ID
	m.pieceID = piece.ID
	m.heading = "Edit piece of " + outfit.Text
	m.fb.text = piece.Text
	m.form = m.buildForm(m.textField("Piece", "e.g. Denim shorts"))
	return m.form.Init()
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return FormCancelMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(m.heading) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm(fields ...huh.Field) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) textField(title, placeholder string) huh.Field {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&m.fb.text).
		Validate(validateRequired(title))
}

// categoryField lists the registry categories. An item whose category is
// not in the registry keeps it as an extra option.
func (m *Model) categoryField() huh.Field {
	opts := make([]huh.Option[string], 0, len(model.Categories)+1)
	for _, c := range model.Categories {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}
	if !model.IsKnownCategory(m.fb.category) {
		opts = append(opts, huh.NewOption(m.fb.category, m.fb.category))
	}
	return huh.NewSelect[string]().
		Title("Category").
		Options(opts...).
		Value(&m.fb.category)
}

func (m *Model) pieceTypeField() huh.Field {
	opts := make([]huh.Option[model.SubItemType], len(model.SubItemTypes))
	for i, t := range model.SubItemTypes {
		opts[i] = huh.NewOption(PieceLabel(t), t)
	}
	return huh.NewSelect[model.SubItemType]().
		Title("Type").
		Options(opts...).
		Value(&m.fb.pieceType)
}

// PieceLabel returns the display name of an outfit piece type.
func PieceLabel(t model.SubItemType) string {
	switch t {
	case model.SubItemShoes:
		return "Shoes"
	case model.SubItemTop:
		return "Top"
	case model.SubItemBottom:
		return "Bottom"
	case model.SubItemAccessories:
		return "Accessories"
	default:
		return string(t)
	}
}

func (m Model) handleSubmit() tea.Cmd {
	text := strings.TrimSpace(m.fb.text)
	var msg tea.Msg
	switch m.mode {
	case modeNewItem:
		msg = ItemCreatedMsg{Text: text, Category: m.fb.category, Outfit: m.fb.outfit}
	case modeEditItem:
		msg = ItemUpdatedMsg{ID: m.itemID, Text: text, Category: m.fb.category}
	case modeNewPiece:
		msg = PieceCreatedMsg{OutfitID: m.itemID, Type: m.fb.pieceType, Text: text}
	case modeEditPiece:
		msg = PieceUpdatedMsg{OutfitID: m.itemID, PieceID: m.pieceID, Text: text}
	}
	return func() tea.Msg { return msg }
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
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
