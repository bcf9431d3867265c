package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/festpack/internal/catalog"
	"github.com/nhle/festpack/internal/keys"
	"github.com/nhle/festpack/internal/model"
	"github.com/nhle/festpack/internal/theme"
)

// CloseMsg signals the parent to close the template picker.
type CloseMsg struct{}

// ViewTemplateMsg asks the parent to record a view and show the preview.
type ViewTemplateMsg struct{ ID string }

// ApplyTemplateMsg asks the parent to apply a template to the checklist.
type ApplyTemplateMsg struct{ ID string }

// Catalog lists the templates on offer.
type Catalog interface {
	Upcoming(now time.Time) []model.Template
	Lookup(id string) (model.Template, bool)
}

type pickerMode int

const (
	modeUpcoming pickerMode = iota
	modeHistory
	modePreview
)

// row is a selectable line in either list.
type row struct {
	id    string
	label string
	past  bool
}

// Model is the template picker.
type Model struct {
	mode        pickerMode
	returnMode  pickerMode
	catalog     Catalog
	keys        *keys.KeyMap
	now         func() time.Time
	history     []model.HistoryEntry
	selectedIdx int
	preview     model.Template
	viewport    viewport.Model
	width       int
	height      int
}

// New creates a template picker.
func New(cat Catalog, k *keys.KeyMap, now func() time.Time, width, height int) Model {
	if now == nil {
		now = time.Now
	}
	vp := viewport.New(width, height-4)
	return Model{
		catalog:  cat,
		keys:     k,
		now:      now,
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// Open resets the picker to the upcoming list.
func (m *Model) Open(history []model.HistoryEntry) {
	m.mode = modeUpcoming
	m.selectedIdx = 0
	m.history = history
}

// OpenHistory resets the picker to the recently viewed list.
func (m *Model) OpenHistory(history []model.HistoryEntry) {
	m.Open(history)
	m.mode = modeHistory
}

// SetHistory updates the recently viewed list.
func (m *Model) SetHistory(history []model.HistoryEntry) {
	m.history = history
}

// ShowPreview switches to the detail view of tpl.
func (m *Model) ShowPreview(tpl model.Template) {
	if m.mode != modePreview {
		m.returnMode = m.mode
	}
	m.mode = modePreview
	m.preview = tpl
	m.viewport.SetContent(m.renderPreview())
	m.viewport.GotoTop()
}

func (m Model) rows() []row {
	now := m.now()
	if m.mode == modeHistory {
		out := make([]row, 0, len(m.history))
		for _, h := range m.history {
			tpl, ok := m.catalog.Lookup(h.ID)
			label := h.Name
			if ok {
				label = fmt.Sprintf("%-28s %s", tpl.Name, model.FormatDateRange(tpl.Event.StartDate, tpl.Event.EndDate))
			}
			viewed := time.UnixMilli(h.Timestamp).Format("Jan 2 15:04")
			out = append(out, row{
				id:    h.ID,
				label: label + theme.MutedStyle.Render("  viewed "+viewed),
				past:  ok && catalog.IsPast(tpl, now),
			})
		}
		return out
	}

	tpls := m.catalog.Upcoming(now)
	out := make([]row, len(tpls))
	for i, tpl := range tpls {
		out[i] = row{
			id:    tpl.ID,
			label: fmt.Sprintf("%-28s %s", tpl.Name, model.FormatDateRange(tpl.Event.StartDate, tpl.Event.EndDate)),
			past:  catalog.IsPast(tpl, now),
		}
	}
	return out
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode == modePreview {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.mode == modePreview {
		return m.handlePreviewKey(keyMsg)
	}
	return m.handleListKey(keyMsg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	rows := m.rows()

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.History):
		if m.mode == modeHistory {
			m.mode = modeUpcoming
		} else {
			m.mode = modeHistory
		}
		m.selectedIdx = 0
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if len(rows) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(rows)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(rows) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(rows) - 1
			}
		}
		return m, nil
	}

	if m.selectedIdx >= len(rows) {
		return m, nil
	}
	id := rows[m.selectedIdx].id

	switch {
	case key.Matches(msg, m.keys.Select):
		return m, func() tea.Msg { return ViewTemplateMsg{ID: id} }
	case key.Matches(msg, m.keys.Apply):
		return m, func() tea.Msg { return ApplyTemplateMsg{ID: id} }
	}
	return m, nil
}

func (m Model) handlePreviewKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = m.returnMode
		return m, nil
	case key.Matches(msg, m.keys.Apply):
		id := m.preview.ID
		return m, func() tea.Msg { return ApplyTemplateMsg{ID: id} }
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m Model) View() string {
	if m.mode == modePreview {
		hints := lipgloss.NewStyle().Foreground(theme.ColorGray).Render("a apply | j/k scroll | esc back")
		return lipgloss.NewStyle().Padding(0, 1).Render(
			lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), "", hints),
		)
	}

	var b strings.Builder
	title := "Festival Templates"
	if m.mode == modeHistory {
		title = "Recently Viewed"
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	rows := m.rows()
	if len(rows) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)
		if m.mode == modeHistory {
			b.WriteString(emptyStyle.Render("No templates viewed yet."))
		} else {
			b.WriteString(emptyStyle.Render("No templates available."))
		}
	}

	for i, r := range rows {
		label := r.label
		if r.past {
			label = theme.DimmedStyle.Render(label) + theme.MutedStyle.Render(" (past)")
		}
		if i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(label))
		} else {
			b.WriteString(theme.ListItemStyle.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGray).Render(
		"enter preview | a apply | tab upcoming/recent | esc back",
	))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

func (m Model) renderPreview() string {
	tpl := m.preview
	var b strings.Builder

	b.WriteString(theme.HeaderStyle.Render(tpl.Name))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).Width(12)
	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	field("When", model.FormatDateRange(tpl.Event.StartDate, tpl.Event.EndDate))
	field("Where", tpl.Event.Location)
	field("Gates", tpl.Event.StartTime)
	link := tpl.Event.ProhibitedItemsLink
	if link == "" {
		link = tpl.ProhibitedItemsLink
	}
	field("Prohibited", link)
	b.WriteString("\n")

	for _, c := range model.Categories {
		var lines []string
		for _, item := range tpl.Items {
			if item.Category != c.ID {
				continue
			}
			line := "  • " + item.Text
			if item.IsOutfit {
				line += theme.MutedStyle.Render(fmt.Sprintf(" (%d pieces)", len(item.OutfitItems)))
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			continue
		}
		b.WriteString(theme.CategoryStyle(c.ID).Render(c.Name))
		b.WriteString("\n")
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n\n")
	}

	return b.String()
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 2
	m.viewport.Height = height - 4
	if m.mode == modePreview {
		m.viewport.SetContent(m.renderPreview())
	}
}
