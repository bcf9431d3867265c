package checklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	festlist "github.com/nhle/festpack/internal/checklist"
	"github.com/nhle/festpack/internal/keys"
	"github.com/nhle/festpack/internal/model"
	"github.com/nhle/festpack/internal/theme"
)

// Source provides the checklist to display.
type Source interface {
	Items() []model.ChecklistItem
}

// ItemsLoadedMsg is sent when the checklist has been read from the source.
type ItemsLoadedMsg struct {
	Items []model.ChecklistItem
}

// Messages emitted for the parent to act on. Each carries the id of the
// selected item.
type (
	ToggleMsg     struct{ ID string }
	FavoriteMsg   struct{ ID string }
	EditMsg       struct{ ID string }
	DeleteMsg     struct{ ID string }
	OpenOutfitMsg struct{ ID string }
	NewItemMsg    struct{}
)

// CategoryMsg asks the parent to move an item to Category.
type CategoryMsg struct {
	ID       string
	Category string
}

// Model is the main checklist view component.
type Model struct {
	list        list.Model
	source      Source
	keys        *keys.KeyMap
	all         []model.ChecklistItem
	query       string
	searchMode  bool
	searchInput textinput.Model
	bar         progress.Model
	width       int
	height      int
}

// New creates a new checklist view.
func New(src Source, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-3)
	l.Title = "Checklist"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search items..."
	si.Prompt = "/ "
	si.Width = width - 4

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = barWidth(width)

	return Model{
		list:        l,
		source:      src,
		keys:        k,
		searchInput: si,
		bar:         bar,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the checklist.
func (m Model) Init() tea.Cmd {
	return m.LoadItems()
}

// Update handles messages for the checklist view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ItemsLoadedMsg:
		m.all = msg.Items
		return m, m.refresh()

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query = strings.TrimSpace(m.searchInput.Value())
		return m, m.refresh()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.query = ""
		return m, m.refresh()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.New) {
		return m, emit(NewItemMsg{})
	}
	if key.Matches(msg, m.keys.Search) {
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()
	}

	item, ok := m.Selected()
	if ok {
		switch {
		case key.Matches(msg, m.keys.Toggle):
			return m, emit(ToggleMsg{ID: item.ID})
		case key.Matches(msg, m.keys.Select):
			if item.IsOutfit {
				return m, emit(OpenOutfitMsg{ID: item.ID})
			}
			return m, emit(ToggleMsg{ID: item.ID})
		case key.Matches(msg, m.keys.Favorite):
			return m, emit(FavoriteMsg{ID: item.ID})
		case key.Matches(msg, m.keys.Edit):
			return m, emit(EditMsg{ID: item.ID})
		case key.Matches(msg, m.keys.Delete):
			return m, emit(DeleteMsg{ID: item.ID})
		case key.Matches(msg, m.keys.Category):
			return m, emit(CategoryMsg{ID: item.ID, Category: NextCategory(item.Category)})
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// refresh rebuilds the visible rows from the full list and the query.
func (m *Model) refresh() tea.Cmd {
	sorted := festlist.SortForDisplay(m.all)
	items := make([]list.Item, 0, len(sorted))
	for _, it := range sorted {
		if matches(it, m.query) {
			items = append(items, Item{Item: it})
		}
	}
	return m.list.SetItems(items)
}

func matches(item model.ChecklistItem, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(item.Text), q) ||
		strings.Contains(strings.ToLower(model.CategoryName(item.Category)), q) {
		return true
	}
	for _, sub := range item.OutfitItems {
		if strings.Contains(strings.ToLower(sub.Text), q) {
			return true
		}
	}
	return false
}

// NextCategory returns the registry category after id, wrapping around.
// Unrecognized categories move to the first registry entry.
func NextCategory(id string) string {
	for i, c := range model.Categories {
		if c.ID == id {
			return model.Categories[(i+1)%len(model.Categories)].ID
		}
	}
	return model.Categories[0].ID
}

// Selected returns the item under the cursor.
func (m Model) Selected() (model.ChecklistItem, bool) {
	it, ok := m.list.SelectedItem().(Item)
	if !ok {
		return model.ChecklistItem{}, false
	}
	return it.Item, true
}

// Query returns the active search query.
func (m Model) Query() string { return m.query }

// Searching reports whether the search input has focus.
func (m Model) Searching() bool { return m.searchMode }

// View renders the checklist view.
func (m Model) View() string {
	summary := m.renderProgress()

	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, summary, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, summary, m.renderEmptyState())
	}

	return lipgloss.JoinVertical(lipgloss.Left, summary, m.list.View())
}

func (m Model) renderProgress() string {
	pct := festlist.Progress(m.all)
	label := lipgloss.NewStyle().
		Foreground(theme.ProgressColor(pct)).
		Bold(true).
		Render(fmt.Sprintf(" %3d%% packed", pct))
	return lipgloss.JoinHorizontal(lipgloss.Center, " ", m.bar.ViewAs(float64(pct)/100), label)
}

// renderEmptyState shows guidance text when no items are visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-1).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.query != "" {
		return style.Render(fmt.Sprintf("No items match %q.\nPress / then esc to clear the search.", m.query))
	}

	return style.Render(
		"Your checklist is empty.\n\n" +
			"Press n to add an item or t to pick a festival template.",
	)
}

// LoadItems returns a tea.Cmd that reads the checklist from the source.
func (m Model) LoadItems() tea.Cmd {
	src := m.source
	return func() tea.Msg {
		return ItemsLoadedMsg{Items: src.Items()}
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
	m.searchInput.Width = width - 4
	m.bar.Width = barWidth(width)
}

func barWidth(width int) int {
	w := width - 20
	if w > 60 {
		w = 60
	}
	if w < 10 {
		w = 10
	}
	return w
}
