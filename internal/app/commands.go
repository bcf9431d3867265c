package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/festpack/internal/session"
	"github.com/nhle/festpack/internal/ui/command"
)

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(line string) tea.Cmd {
	name, args := command.Parse(line)
	arg := strings.Join(args, " ")

	switch name {
	case "export":
		if arg != "" {
			return m.exportFile(arg)
		}
		return m.exportClipboard()
	case "import":
		if arg != "" {
			return m.importFile(arg)
		}
		return m.importClipboard()
	case "templates":
		m.templatesView.Open(m.session.History())
		m.currentView = ViewTemplates
		return nil
	case "history":
		m.templatesView.OpenHistory(m.session.History())
		m.currentView = ViewTemplates
		return nil
	case "apply":
		if arg == "" {
			return m.setNotice(&session.Notice{Title: "Missing template", Description: "usage: apply <template-id>", Level: session.LevelWarning})
		}
		m.currentView = ViewList
		return m.applyTemplate(arg)
	case "event":
		m.currentView = ViewEventForm
		return m.eventForm.Start(m.session.Event())
	case "reset":
		_, cmd := m.openConfirm(resetPrompt)
		return cmd
	case "quit", "q":
		return tea.Quit
	default:
		return m.setNotice(&session.Notice{Title: "Unknown command", Description: fmt.Sprintf("%q", line), Level: session.LevelWarning})
	}
}
