package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	festlist "github.com/nhle/festpack/internal/checklist"
	"github.com/nhle/festpack/internal/clipboard"
	"github.com/nhle/festpack/internal/keys"
	"github.com/nhle/festpack/internal/model"
	"github.com/nhle/festpack/internal/session"
	"github.com/nhle/festpack/internal/theme"
	"github.com/nhle/festpack/internal/ui"
	"github.com/nhle/festpack/internal/ui/checklist"
	"github.com/nhle/festpack/internal/ui/command"
	"github.com/nhle/festpack/internal/ui/confirm"
	"github.com/nhle/festpack/internal/ui/eventform"
	helpview "github.com/nhle/festpack/internal/ui/help"
	"github.com/nhle/festpack/internal/ui/itemform"
	"github.com/nhle/festpack/internal/ui/outfit"
	"github.com/nhle/festpack/internal/ui/templates"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewOutfit
	ViewTemplates
	ViewHelp
	ViewCommand
	ViewItemForm
	ViewEventForm
	ViewConfirm
)

const defaultNoticeTTL = 5 * time.Second

// noticeExpiredMsg clears the notice it was scheduled for, unless a newer
// one replaced it.
type noticeExpiredMsg struct{ seq int }

// Confirm actions.
const (
	actionDelete = "delete"
	actionReset  = "reset"
	actionImport = "import"
)

var resetPrompt = confirm.Prompt{
	Action:      actionReset,
	Title:       "Reset checklist?",
	Description: "Your checklist goes back to the base template with every item unchecked.",
	Affirmative: "Yes, reset",
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the session.
type Model struct {
	currentView  ViewState
	previousView ViewState
	formReturn   ViewState
	layout       ui.Layout
	session      *session.Session
	gateway      *clipboard.Gateway
	keys         *keys.KeyMap
	now          func() time.Time

	checklistView checklist.Model
	outfitView    outfit.Model
	templatesView templates.Model
	helpView      helpview.Model
	commandView   command.Model
	itemForm      itemform.Model
	eventForm     eventform.Model
	confirmView   confirm.Model

	notice        *session.Notice
	noticeSeq     int
	noticeTTL     time.Duration
	pendingDelete string
	pendingImport *clipboard.ImportOutcome
	ready         bool
}

// Option configures the root model.
type Option func(*Model)

// WithNoticeTimeout sets how long an operation notice stays in the status
// bar. Zero keeps notices until the next key press.
func WithNoticeTimeout(d time.Duration) Option {
	return func(m *Model) { m.noticeTTL = d }
}

// WithClock sets the clock used to decide which templates are past.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// New creates the root application model.
func New(s *session.Session, gw *clipboard.Gateway, opts ...Option) Model {
	k := keys.DefaultKeyMap()
	m := Model{
		currentView: ViewList,
		session:     s,
		gateway:     gw,
		keys:        k,
		now:         time.Now,
		noticeTTL:   defaultNoticeTTL,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.checklistView = checklist.New(s, k, 80, 24)
	m.outfitView = outfit.New(k, 80, 24)
	m.templatesView = templates.New(s.Catalog(), k, m.now, 80, 24)
	m.helpView = helpview.New(k, 80, 24)
	m.commandView = command.New(80, 24)
	m.itemForm = itemform.New(80, 24)
	m.eventForm = eventform.New(80, 24)
	m.confirmView = confirm.New(80, 24)
	return m
}

// Init returns the initial command to load the checklist.
func (m Model) Init() tea.Cmd {
	return m.checklistView.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.checklistView.SetSize(contentWidth, contentHeight)
		m.outfitView.SetSize(contentWidth, contentHeight)
		m.templatesView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.itemForm.SetSize(contentWidth, contentHeight)
		m.eventForm.SetSize(contentWidth, contentHeight)
		m.confirmView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case checklist.ItemsLoadedMsg:
		m.syncOutfit(msg.Items)
		var cmd tea.Cmd
		m.checklistView, cmd = m.checklistView.Update(msg)
		return m, cmd

	case noticeMsg:
		n := msg.notice
		expire := m.setNotice(&n)
		return m, tea.Batch(m.checklistView.LoadItems(), expire)

	case exportedMsg:
		cmd := m.setNotice(exportNotice(msg))
		return m, cmd

	case importedMsg:
		return m.handleImported(msg)

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil

	case templateViewedMsg:
		m.templatesView.SetHistory(msg.history)
		if !msg.ok {
			cmd := m.setNotice(&session.Notice{Title: "Template not found", Description: msg.id, Level: session.LevelWarning})
			return m, cmd
		}
		m.templatesView.ShowPreview(msg.template)
		return m, nil

	// Checklist requests.
	case checklist.ToggleMsg:
		return m, m.toggleItem(msg.ID)

	case checklist.FavoriteMsg:
		return m, m.toggleFavorite(msg.ID)

	case checklist.CategoryMsg:
		return m, m.changeCategory(msg.ID, msg.Category)

	case checklist.NewItemMsg:
		return m.openItemForm(m.itemForm.StartCreate())

	case checklist.EditMsg:
		item, ok := festlist.Find(m.session.Items(), msg.ID)
		if !ok {
			return m, nil
		}
		return m.openItemForm(m.itemForm.StartEdit(item))

	case checklist.DeleteMsg:
		item, ok := festlist.Find(m.session.Items(), msg.ID)
		if !ok {
			return m, nil
		}
		m.pendingDelete = item.ID
		return m.openConfirm(confirm.Prompt{
			Action:      actionDelete,
			Title:       fmt.Sprintf("Remove %q?", item.Text),
			Description: "The item is removed from your checklist.",
			Affirmative: "Yes, remove",
		})

	case checklist.OpenOutfitMsg:
		item, ok := festlist.Find(m.session.Items(), msg.ID)
		if !ok {
			return m, nil
		}
		m.outfitView.SetOutfit(item)
		m.currentView = ViewOutfit
		return m, nil

	// Outfit requests.
	case outfit.CloseMsg:
		m.currentView = ViewList
		return m, nil

	case outfit.TogglePieceMsg:
		return m, m.togglePiece(msg.OutfitID, msg.PieceID)

	case outfit.DeletePieceMsg:
		return m, m.removePiece(msg.OutfitID, msg.PieceID)

	case outfit.NewPieceMsg:
		item, ok := festlist.Find(m.session.Items(), msg.OutfitID)
		if !ok {
			return m, nil
		}
		return m.openItemForm(m.itemForm.StartCreatePiece(item))

	case outfit.EditPieceMsg:
		item, ok := festlist.Find(m.session.Items(), msg.OutfitID)
		if !ok {
			return m, nil
		}
		for _, piece := range item.OutfitItems {
			if piece.ID == msg.PieceID {
				return m.openItemForm(m.itemForm.StartEditPiece(item, piece))
			}
		}
		return m, nil

	// Form results.
	case itemform.ItemCreatedMsg:
		m.currentView = m.formReturn
		return m, m.addItem(msg.Text, msg.Category, msg.Outfit)

	case itemform.ItemUpdatedMsg:
		m.currentView = m.formReturn
		return m, m.updateItem(msg.ID, msg.Text, msg.Category)

	case itemform.PieceCreatedMsg:
		m.currentView = m.formReturn
		return m, m.addPiece(msg.OutfitID, msg.Type, msg.Text)

	case itemform.PieceUpdatedMsg:
		m.currentView = m.formReturn
		return m, m.editPiece(msg.OutfitID, msg.PieceID, msg.Text)

	case itemform.FormCancelMsg:
		m.currentView = m.formReturn
		return m, nil

	case eventform.EventSubmittedMsg:
		m.currentView = ViewList
		return m, m.setEvent(msg.Event)

	case eventform.EventFormCancelMsg:
		m.currentView = ViewList
		return m, nil

	// Templates.
	case templates.CloseMsg:
		m.currentView = ViewList
		return m, nil

	case templates.ViewTemplateMsg:
		return m, m.viewTemplate(msg.ID)

	case templates.ApplyTemplateMsg:
		m.currentView = ViewList
		return m, m.applyTemplate(msg.ID)

	// Confirmations.
	case confirm.ConfirmedMsg:
		m.currentView = ViewList
		cmd := m.runConfirmed(msg.Action)
		return m, cmd

	case confirm.CancelledMsg:
		m.currentView = ViewList
		m.pendingDelete = ""
		m.pendingImport = nil
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		cmd := m.executeCommand(string(msg))
		return m, cmd

	case tea.KeyMsg:
		m.notice = nil

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.capturesInput() {
			break
		}

		switch msg.String() {
		case "q":
			if m.currentView == ViewList {
				return m, tea.Quit
			}

		case "?":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case ":":
			m.previousView = m.currentView
			m.currentView = ViewCommand
			cmd := m.commandView.Focus()
			return m, cmd

		case "esc":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
		}

		if m.currentView == ViewList {
			if cmd, handled := m.handleListKey(msg); handled {
				return m, cmd
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// capturesInput reports whether the active view consumes raw text, in which
// case global shortcuts are disabled.
func (m Model) capturesInput() bool {
	switch m.currentView {
	case ViewCommand, ViewItemForm, ViewEventForm, ViewConfirm:
		return true
	case ViewList:
		return m.checklistView.Searching()
	}
	return false
}

// handleListKey handles checklist-wide shortcuts on the main list.
func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Templates):
		m.templatesView.Open(m.session.History())
		m.currentView = ViewTemplates
		return nil, true

	case key.Matches(msg, k.Event):
		m.currentView = ViewEventForm
		return m.eventForm.Start(m.session.Event()), true

	case key.Matches(msg, k.Export):
		return m.exportClipboard(), true

	case key.Matches(msg, k.Import):
		return m.importClipboard(), true

	case key.Matches(msg, k.Reset):
		_, cmd := m.openConfirm(resetPrompt)
		return cmd, true
	}
	return nil, false
}

// setNotice shows n and returns the command that expires it.
func (m *Model) setNotice(n *session.Notice) tea.Cmd {
	m.notice = n
	m.noticeSeq++
	if m.noticeTTL <= 0 {
		return nil
	}
	seq := m.noticeSeq
	return tea.Tick(m.noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (m *Model) openItemForm(init tea.Cmd) (tea.Model, tea.Cmd) {
	m.formReturn = m.currentView
	m.currentView = ViewItemForm
	return *m, init
}

func (m *Model) openConfirm(p confirm.Prompt) (tea.Model, tea.Cmd) {
	m.currentView = ViewConfirm
	cmd := m.confirmView.Start(p)
	return *m, cmd
}

// syncOutfit refreshes the open outfit view from a freshly loaded list and
// leaves it when the outfit is gone.
func (m *Model) syncOutfit(items []model.ChecklistItem) {
	id := m.outfitView.OutfitID()
	if id == "" {
		return
	}
	item, ok := festlist.Find(items, id)
	if ok && item.IsOutfit {
		m.outfitView.SetOutfit(item)
		return
	}
	if m.currentView == ViewOutfit {
		m.currentView = ViewList
	}
}

func (m Model) handleImported(msg importedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		cmd := m.setNotice(&session.Notice{Title: "Import failed", Description: msg.err.Error(), Level: session.LevelError})
		return m, cmd
	}

	out := msg.outcome
	switch out.Status {
	case clipboard.StatusNoData:
		cmd := m.setNotice(&session.Notice{Title: "Nothing to import", Description: "Copy a checklist first, then try again", Level: session.LevelInfo})
		return m, cmd
	case clipboard.StatusInvalid:
		cmd := m.setNotice(&session.Notice{Title: "Import failed", Description: out.Err.Error(), Level: session.LevelError})
		return m, cmd
	}

	m.pendingImport = &out
	return m.openConfirm(confirm.Prompt{
		Action:      actionImport,
		Title:       fmt.Sprintf("Import %q?", out.Name),
		Description: fmt.Sprintf("Your checklist is replaced by %d imported items.", len(out.Items)),
		Affirmative: "Yes, import",
	})
}

func (m *Model) runConfirmed(action string) tea.Cmd {
	switch action {
	case actionDelete:
		id := m.pendingDelete
		m.pendingDelete = ""
		if id == "" {
			return nil
		}
		return m.removeItem(id)
	case actionReset:
		return m.reset()
	case actionImport:
		out := m.pendingImport
		m.pendingImport = nil
		if out == nil {
			return nil
		}
		return m.replaceItems(out.Items, out.Name)
	}
	return nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.checklistView, cmd = m.checklistView.Update(msg)
	case ViewOutfit:
		m.outfitView, cmd = m.outfitView.Update(msg)
	case ViewTemplates:
		m.templatesView, cmd = m.templatesView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			m.currentView = m.previousView
			return m, nil
		}
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewItemForm:
		m.itemForm, cmd = m.itemForm.Update(msg)
	case ViewEventForm:
		m.eventForm, cmd = m.eventForm.Update(msg)
	case ViewConfirm:
		m.confirmView, cmd = m.confirmView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.headerTitle(), m.headerSummary())
	content := m.renderContent()

	var statusBar string
	if m.notice != nil {
		statusBar = m.layout.RenderStatusBarStyled(noticeText(*m.notice), theme.NoticeStyle(noticeLevel(m.notice.Level)))
	} else {
		statusBar = m.layout.RenderStatusBar(m.keyHints())
	}

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.checklistView.View()
	case ViewOutfit:
		return m.outfitView.View()
	case ViewTemplates:
		return m.templatesView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewItemForm:
		return m.itemForm.View()
	case ViewEventForm:
		return m.eventForm.View()
	case ViewConfirm:
		return m.confirmView.View()
	default:
		return ""
	}
}

func (m Model) headerTitle() string {
	return "festpack · " + m.session.Event().Name
}

// headerSummary shows when and where the event is and how much is packed.
func (m Model) headerSummary() string {
	event := m.session.Event()

	when := event.Date
	if event.StartDate != nil {
		when = model.FormatDateRange(event.StartDate, event.EndDate)
	}

	parts := make([]string, 0, 4)
	for _, p := range []string{when, event.Location} {
		if p != "" && p != "TBD" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, fmt.Sprintf("%d%% packed", m.session.Progress()))
	if m.session.HasChanges() {
		parts = append(parts, "customized")
	}
	return strings.Join(parts, " · ")
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewOutfit:
		return "space check | n new piece | e rename | d remove | esc back"
	case ViewTemplates:
		return "enter preview | a apply | tab recent | esc back"
	case ViewItemForm, ViewEventForm:
		return "enter submit | esc cancel"
	case ViewConfirm:
		return "←/→ choose | enter confirm | esc cancel"
	default:
		if q := m.checklistView.Query(); q != "" {
			return fmt.Sprintf("filter: %q | / esc clear", q)
		}
		hints := "q quit | ? help | space check | n new | t templates | y copy | p paste"
		if tpl, ok := m.session.LastViewedTemplate(); ok {
			hints += " | last viewed: " + tpl.Name
		}
		return hints
	}
}

func noticeText(n session.Notice) string {
	if n.Description == "" {
		return n.Title
	}
	return n.Title + ": " + n.Description
}

func noticeLevel(l session.Level) theme.NoticeLevel {
	switch l {
	case session.LevelSuccess:
		return theme.NoticeSuccess
	case session.LevelWarning:
		return theme.NoticeWarning
	case session.LevelError:
		return theme.NoticeError
	default:
		return theme.NoticeInfo
	}
}
