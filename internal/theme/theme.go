package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/festpack/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Theme names accepted by Apply.
const (
	ThemeDefault = "default"
	ThemeMono    = "mono"
)

var mono bool

// Apply selects the named theme. Unknown names fall back to the default.
// The mono theme drops category colors but keeps bold/dim emphasis.
func Apply(name string) {
	mono = name == ThemeMono
}

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the detail view content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// DimmedStyle renders packed items and past templates.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// MutedStyle is secondary text such as dates and counters.
var MutedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// FavoriteStyle marks pinned items.
var FavoriteStyle = lipgloss.NewStyle().
	Foreground(ColorYellow).
	Bold(true)

// CategoryStyle returns the badge style for a category id. Unknown
// categories render in gray.
func CategoryStyle(id string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if mono {
		return base
	}
	if c, ok := model.LookupCategory(id); ok {
		return base.Foreground(lipgloss.Color(c.Color))
	}
	return base.Foreground(ColorGray)
}

// NoticeLevel mirrors the severity levels reported by checklist operations.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

// NoticeStyle returns the status bar style for a notice of the given level.
func NoticeStyle(level NoticeLevel) lipgloss.Style {
	base := StatusBarStyle.Bold(true)
	if mono {
		return base
	}

	switch level {
	case NoticeSuccess:
		return base.Foreground(ColorGreen)
	case NoticeWarning:
		return base.Foreground(ColorOrange)
	case NoticeError:
		return base.Foreground(ColorRed)
	default:
		return base
	}
}

// ProgressColor returns the accent for a completion percentage.
func ProgressColor(percent int) lipgloss.TerminalColor {
	switch {
	case mono:
		return ColorWhite
	case percent >= 100:
		return ColorGreen
	case percent >= 50:
		return ColorYellow
	default:
		return ColorOrange
	}
}
