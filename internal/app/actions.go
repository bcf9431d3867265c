package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/festpack/internal/clipboard"
	"github.com/nhle/festpack/internal/model"
	"github.com/nhle/festpack/internal/session"
)

// clipboardTimeout bounds a single clipboard read or write.
const clipboardTimeout = 3 * time.Second

// noticeMsg carries the outcome of a session operation.
type noticeMsg struct{ notice session.Notice }

// exportedMsg is sent after a checklist export. path is empty for
// clipboard exports.
type exportedMsg struct {
	ok   bool
	path string
	err  error
}

// importedMsg is sent after the clipboard or a file has been parsed.
type importedMsg struct {
	outcome clipboard.ImportOutcome
	err     error
}

// templateViewedMsg is sent after a template view has been recorded.
type templateViewedMsg struct {
	id       string
	template model.Template
	ok       bool
	history  []model.HistoryEntry
}

// sessionCmd runs fn against the session and reports its notice.
func (m *Model) sessionCmd(fn func(ctx context.Context, s *session.Session) session.Notice) tea.Cmd {
	s := m.session
	return func() tea.Msg {
		return noticeMsg{notice: fn(context.Background(), s)}
	}
}

func (m *Model) toggleItem(id string) tea.Cmd {
	return m.sessionCmd(func(ctx context.Context, s *session.Session) session.Notice {
		return s.Toggle(ctx, id)
	})
}

func (m *Model) toggleFavorite(id string) tea.Cmd {
	return m.sessionCmd(func(ctx context.Context, s *session.Session) session.Notice {
		return s.ToggleFavorite(ctx, id)
	})
}

func (m *Model) changeCategory(id, category string) tea.Cmd {
	return m.sessionCmd(func(ctx context.Context, s *session.Session) session.Notice {
		return s.ChangeCategory(ctx, id, category)
	})
}

func (m *Model) addItem(text, category string, outfit bool) tea.Cmd {
	return m.sessionCmd(func(ctx context.Context, s *session.Session) session.Notice {
		return s.Add(ctx, text, category, outfit)
	})
}

// updateItem applies a text and category edit as one change.
func (m *Model) updateItem(id, text, category string) tea.Cmd {
	return m.sessionCmd(func(ctx context.Context, s *session.Session) session.Notice {
		return s.UpdateItem(ctx, id, text, category)
	})
}

func (m *Model) removeItem(id string) tea.Cmd {
	return m.sessionCmd(func(ctx context.Context, s *session.Session) session.Notice {
		return s.Remove(ctx, id)
	})
}

func (m *Model) togglePiece(outfitID, pieceID string) tea.Cmd {
	return m.sessionCmd(func(ctx context.Context, s *session.Session) session.Notice {
		return s.ToggleSubItem(ctx, outfitID, pieceID)
	})
}

func (m *Model) removePiece(outfitID, pieceID string) tea.Cmd {
	return m.sessionCmd(func(ctx context.Context, s *session.Session) session.Notice {
		return s.RemoveSubItem(ctx, outfitID, pieceID)
	})
}

func (m *Model) addPiece(outfitID string, typ model.SubItemType, text string) tea.Cmd {
	return m.sessionCmd(func(ctx context.Context, s *session.Session) session.Notice {
		return s.AddSubItem(ctx, outfitID, typ, text)
	})
}

func (m *Model) editPiece(outfitID, pieceID, text string) tea.Cmd {
	return m.sessionCmd(func(ctx context.Context, s *session.Session) session.Notice {
		return s.EditSubItem(ctx, outfitID, pieceID, text)
	})
}

func (m *Model) setEvent(event model.EventInfo) tea.Cmd {
	return m.sessionCmd(func(ctx context.Context, s *session.Session) session.Notice {
		return s.SetEvent(ctx, event)
	})
}

func (m *Model) applyTemplate(id string) tea.Cmd {
	return m.sessionCmd(func(ctx context.Context, s *session.Session) session.Notice {
		return s.ApplyTemplate(ctx, id, session.ApplyOptions{})
	})
}

func (m *Model) reset() tea.Cmd {
	return m.sessionCmd(func(ctx context.Context, s *session.Session) session.Notice {
		return s.Reset(ctx)
	})
}

func (m *Model) replaceItems(items []model.ChecklistItem, name string) tea.Cmd {
	return m.sessionCmd(func(ctx context.Context, s *session.Session) session.Notice {
		return s.ReplaceItems(ctx, items, name)
	})
}

func (m *Model) viewTemplate(id string) tea.Cmd {
	s := m.session
	return func() tea.Msg {
		tpl, ok := s.ViewTemplate(context.Background(), id)
		return templateViewedMsg{id: id, template: tpl, ok: ok, history: s.History()}
	}
}

func (m *Model) exportClipboard() tea.Cmd {
	s, gw := m.session, m.gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), clipboardTimeout)
		defer cancel()
		return exportedMsg{ok: gw.Export(ctx, s.Items(), s.Event())}
	}
}

func (m *Model) exportFile(path string) tea.Cmd {
	s, gw := m.session, m.gateway
	return func() tea.Msg {
		err := gw.ExportFile(path, s.Items(), s.Event())
		return exportedMsg{ok: err == nil, path: path, err: err}
	}
}

func (m *Model) importClipboard() tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), clipboardTimeout)
		defer cancel()
		return importedMsg{outcome: gw.Import(ctx, nil)}
	}
}

func (m *Model) importFile(path string) tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		out, err := gw.ImportFile(path)
		return importedMsg{outcome: out, err: err}
	}
}

func exportNotice(msg exportedMsg) *session.Notice {
	switch {
	case msg.ok && msg.path != "":
		return &session.Notice{Title: "Checklist exported", Description: "Saved to " + msg.path, Level: session.LevelSuccess}
	case msg.ok:
		return &session.Notice{Title: "Checklist exported", Description: "Your checklist has been copied to the clipboard", Level: session.LevelSuccess}
	case msg.err != nil:
		return &session.Notice{Title: "Export failed", Description: msg.err.Error(), Level: session.LevelError}
	default:
		return &session.Notice{Title: "Export failed", Description: "Could not copy the checklist to the clipboard", Level: session.LevelError}
	}
}
