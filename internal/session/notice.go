package session

import (
	"errors"

	"github.com/nhle/festpack/internal/checklist"
)

// Level is the severity of a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// Notice is the user-facing report of an operation. Changed is false when
// nothing was modified.
type Notice struct {
	Title       string
	Description string
	Changed     bool
	Level       Level
}

func changedNotice(title, description string) Notice {
	return Notice{Title: title, Description: description, Changed: true, Level: LevelSuccess}
}

// unchangedNotice falls back to the generic no-op wording for empty fields.
func unchangedNotice(title, description string) Notice {
	if title == "" {
		title = "No changes made"
	}
	if description == "" {
		description = "Item remains unchanged"
	}
	return Notice{Title: title, Description: description, Level: LevelInfo}
}

func warningNotice(title, description string) Notice {
	return Notice{Title: title, Description: description, Level: LevelWarning}
}

func errorNotice(err error) Notice {
	return Notice{Title: "Error", Description: describeError(err), Level: LevelError}
}

func describeError(err error) string {
	switch {
	case errors.Is(err, checklist.ErrEmptyText):
		return "Item text cannot be empty"
	case errors.Is(err, checklist.ErrUnknownCategory):
		return "Unknown category"
	case errors.Is(err, checklist.ErrItemNotFound):
		return "Item no longer exists"
	case errors.Is(err, checklist.ErrSubItemNotFound):
		return "Outfit piece no longer exists"
	case errors.Is(err, checklist.ErrNotOutfit):
		return "Item is not an outfit"
	case errors.Is(err, checklist.ErrInvalidSubItemType):
		return "Unknown outfit piece type"
	default:
		return err.Error()
	}
}
