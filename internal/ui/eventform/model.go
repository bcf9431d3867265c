package eventform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/festpack/internal/model"
	"github.com/nhle/festpack/internal/theme"
)

const dateLayout = "2006-01-02"

// EventSubmittedMsg is dispatched when the event details are saved.
type EventSubmittedMsg struct {
	Event model.EventInfo
}

// EventFormCancelMsg is dispatched when the user cancels the form.
type EventFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name      string
	date      string
	location  string
	startTime string
	startDate string
	endDate   string
	link      string
}

// Model is the Bubble Tea model for the event details form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new event form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form with the current event details.
func (m *Model) Start(event model.EventInfo) tea.Cmd {
	m.fb.name = event.Name
	m.fb.date = event.Date
	m.fb.location = event.Location
	m.fb.startTime = event.StartTime
	m.fb.startDate = formatDate(event.StartDate)
	m.fb.endDate = formatDate(event.EndDate)
	m.fb.link = event.ProhibitedItemsLink

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Event").
				Value(&m.fb.name).
				Validate(validateRequired("Event")),
			huh.NewInput().
				Title("Dates").
				Placeholder("April 11-13, 2025").
				Value(&m.fb.date),
			huh.NewInput().
				Title("Location").
				Value(&m.fb.location),
			huh.NewInput().
				Title("Gates open").
				Placeholder("12:00 PM").
				Value(&m.fb.startTime),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Placeholder("YYYY-MM-DD (optional)").
				Value(&m.fb.startDate).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("End date").
				Placeholder("YYYY-MM-DD (optional)").
				Value(&m.fb.endDate).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Prohibited items link").
				Placeholder("https://...").
				Value(&m.fb.link),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())

	return m.form.Init()
}

// Update handles messages for the event form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		event := m.Event()
		return m, func() tea.Msg { return EventSubmittedMsg{Event: event} }
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return EventFormCancelMsg{} }
	}

	return m, cmd
}

// Event builds the event from the current field values.
func (m Model) Event() model.EventInfo {
	return model.EventInfo{
		Name:                strings.TrimSpace(m.fb.name),
		Date:                strings.TrimSpace(m.fb.date),
		Location:            strings.TrimSpace(m.fb.location),
		StartTime:           strings.TrimSpace(m.fb.startTime),
		StartDate:           parseDate(m.fb.startDate),
		EndDate:             parseDate(m.fb.endDate),
		ProhibitedItemsLink: strings.TrimSpace(m.fb.link),
	}
}

// View renders the event form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Event Details") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
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
	if h < 10 {
		h = 10
	}
	return h
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
