package checklist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/festpack/internal/model"
	"github.com/nhle/festpack/internal/theme"
)

// Item wraps a model.ChecklistItem so it can be used in a bubbles/list.
type Item struct {
	Item model.ChecklistItem
}

// FilterValue returns the string used for filtering.
func (i Item) FilterValue() string { return i.Item.Text }

// Title returns the item text for the list.
func (i Item) Title() string { return i.Item.Text }

// Description returns the category and, for outfits, piece progress.
func (i Item) Description() string {
	desc := model.CategoryName(i.Item.Category)
	if i.Item.IsOutfit {
		done, total := i.Item.SubItemProgress()
		desc += fmt.Sprintf(" | %d/%d pieces", done, total)
	}
	return desc
}

// ItemDelegate implements list.ItemDelegate for checklist rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single checklist row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(Item)
	if !ok {
		return
	}
	fmt.Fprint(w, renderRow(it.Item, index == m.Index()))
}

func renderRow(item model.ChecklistItem, selected bool) string {
	box := "[ ]"
	if item.Done() {
		box = "[x]"
	}

	star := " "
	if item.IsFavorite {
		star = theme.FavoriteStyle.Render("★")
	}

	text := item.Text
	if item.Done() {
		text = theme.DimmedStyle.Render(text)
	}

	badge := theme.CategoryStyle(item.Category).Render(model.CategoryName(item.Category))

	pieces := ""
	if item.IsOutfit {
		done, total := item.SubItemProgress()
		pieces = theme.MutedStyle.Render(fmt.Sprintf(" outfit %d/%d", done, total))
	}

	line := fmt.Sprintf("%s %s %s %s%s", box, star, text, badge, pieces)
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}
