// Package checklist implements whole-list item mutations. Every operation
// takes the current list and returns a new one; inputs are never modified.
package checklist

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/nhle/festpack/internal/model"
)

var (
	ErrEmptyText          = errors.New("checklist: text must not be empty")
	ErrUnknownCategory    = errors.New("checklist: unknown category")
	ErrItemNotFound       = errors.New("checklist: item not found")
	ErrSubItemNotFound    = errors.New("checklist: outfit sub-item not found")
	ErrNotOutfit          = errors.New("checklist: item is not an outfit")
	ErrInvalidSubItemType = errors.New("checklist: invalid outfit sub-item type")
)

// Change describes the effect of a mutation. Applied is false when the
// operation left the list as it was.
type Change struct {
	Applied bool

	// Item is the affected item after the change (before it, for removals).
	Item model.ChecklistItem
}

// Editor applies mutations, stamping edits with its clock.
type Editor struct {
	now func() time.Time
}

// NewEditor returns an Editor using the wall clock.
func NewEditor() *Editor {
	return &Editor{now: time.Now}
}

// NewEditorWithClock returns an Editor using now for edit timestamps.
func NewEditorWithClock(now func() time.Time) *Editor {
	return &Editor{now: now}
}

func (e *Editor) stamp() int64 {
	return e.now().UnixMilli()
}

// AddOptions customizes a new item.
type AddOptions struct {
	Outfit bool
}

// Add appends a new item.
func (e *Editor) Add(items []model.ChecklistItem, text, category string, opts AddOptions) ([]model.ChecklistItem, Change, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return items, Change{}, ErrEmptyText
	}
	if !model.IsKnownCategory(category) {
		return items, Change{}, ErrUnknownCategory
	}

	item := model.ChecklistItem{
		ID:         model.NewItemID(),
		Text:       text,
		Category:   category,
		IsOutfit:   opts.Outfit,
		LastEdited: e.stamp(),
	}.Normalize()

	out := model.CloneItems(items)
	out = append(out, item)
	return out, Change{Applied: true, Item: item}, nil
}

// Remove deletes the item with the given id.
func (e *Editor) Remove(items []model.ChecklistItem, id string) ([]model.ChecklistItem, Change, error) {
	idx := indexOf(items, id)
	if idx < 0 {
		return items, Change{}, ErrItemNotFound
	}
	removed := items[idx].Clone()

	out := make([]model.ChecklistItem, 0, len(items)-1)
	for i, item := range items {
		if i != idx {
			out = append(out, item.Clone())
		}
	}
	return out, Change{Applied: true, Item: removed}, nil
}

// Toggle flips an item's completion. Outfits with sub-items move every
// sub-item to the negation of "all were complete".
func (e *Editor) Toggle(items []model.ChecklistItem, id string) ([]model.ChecklistItem, Change, error) {
	return e.update(items, id, func(item *model.ChecklistItem) (bool, error) {
		target := !item.Done()
		item.IsCompleted = target
		for i := range item.OutfitItems {
			item.OutfitItems[i].IsCompleted = target
		}
		return true, nil
	})
}

// EditText replaces an item's text.
func (e *Editor) EditText(items []model.ChecklistItem, id, text string) ([]model.ChecklistItem, Change, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return items, Change{}, ErrEmptyText
	}
	return e.update(items, id, func(item *model.ChecklistItem) (bool, error) {
		if item.Text == text {
			return false, nil
		}
		item.Text = text
		return true, nil
	})
}

// ChangeCategory moves an item to another known category.
func (e *Editor) ChangeCategory(items []model.ChecklistItem, id, category string) ([]model.ChecklistItem, Change, error) {
	if !model.IsKnownCategory(category) {
		return items, Change{}, ErrUnknownCategory
	}
	return e.update(items, id, func(item *model.ChecklistItem) (bool, error) {
		if item.Category == category {
			return false, nil
		}
		item.Category = category
		return true, nil
	})
}

// ToggleFavorite flips an item's favorite flag.
func (e *Editor) ToggleFavorite(items []model.ChecklistItem, id string) ([]model.ChecklistItem, Change, error) {
	return e.update(items, id, func(item *model.ChecklistItem) (bool, error) {
		item.IsFavorite = !item.IsFavorite
		return true, nil
	})
}

// AddSubItem appends a sub-item to an outfit.
func (e *Editor) AddSubItem(items []model.ChecklistItem, id string, typ model.SubItemType, text string) ([]model.ChecklistItem, Change, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return items, Change{}, ErrEmptyText
	}
	if !typ.IsValid() {
		return items, Change{}, ErrInvalidSubItemType
	}
	return e.update(items, id, func(item *model.ChecklistItem) (bool, error) {
		if !item.IsOutfit {
			return false, ErrNotOutfit
		}
		item.OutfitItems = append(item.OutfitItems, model.OutfitSubItem{
			ID:   model.NewSubItemID(item.ID),
			Type: typ,
			Text: text,
		})
		return true, nil
	})
}

// RemoveSubItem deletes a sub-item from an outfit.
func (e *Editor) RemoveSubItem(items []model.ChecklistItem, id, subID string) ([]model.ChecklistItem, Change, error) {
	return e.updateSub(items, id, subID, func(item *model.ChecklistItem, idx int) bool {
		item.OutfitItems = append(item.OutfitItems[:idx], item.OutfitItems[idx+1:]...)
		return true
	})
}

// EditSubItem replaces a sub-item's text.
func (e *Editor) EditSubItem(items []model.ChecklistItem, id, subID, text string) ([]model.ChecklistItem, Change, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return items, Change{}, ErrEmptyText
	}
	return e.updateSub(items, id, subID, func(item *model.ChecklistItem, idx int) bool {
		if item.OutfitItems[idx].Text == text {
			return false
		}
		item.OutfitItems[idx].Text = text
		return true
	})
}

// ToggleSubItem flips a single sub-item's completion.
func (e *Editor) ToggleSubItem(items []model.ChecklistItem, id, subID string) ([]model.ChecklistItem, Change, error) {
	return e.updateSub(items, id, subID, func(item *model.ChecklistItem, idx int) bool {
		item.OutfitItems[idx].IsCompleted = !item.OutfitItems[idx].IsCompleted
		return true
	})
}

// update copies items, applies fn to the item with the given id and stamps
// it when fn reports a change. The original list is returned on no-ops.
func (e *Editor) update(items []model.ChecklistItem, id string, fn func(*model.ChecklistItem) (bool, error)) ([]model.ChecklistItem, Change, error) {
	idx := indexOf(items, id)
	if idx < 0 {
		return items, Change{}, ErrItemNotFound
	}

	out := model.CloneItems(items)
	changed, err := fn(&out[idx])
	if err != nil {
		return items, Change{Item: items[idx].Clone()}, err
	}
	if !changed {
		return items, Change{Item: items[idx].Clone()}, nil
	}
	out[idx].LastEdited = e.stamp()
	return out, Change{Applied: true, Item: out[idx].Clone()}, nil
}

func (e *Editor) updateSub(items []model.ChecklistItem, id, subID string, fn func(*model.ChecklistItem, int) bool) ([]model.ChecklistItem, Change, error) {
	return e.update(items, id, func(item *model.ChecklistItem) (bool, error) {
		if !item.IsOutfit {
			return false, ErrNotOutfit
		}
		for i, sub := range item.OutfitItems {
			if sub.ID == subID {
				return fn(item, i), nil
			}
		}
		return false, ErrSubItemNotFound
	})
}

func indexOf(items []model.ChecklistItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the item with the given id.
func Find(items []model.ChecklistItem, id string) (model.ChecklistItem, bool) {
	idx := indexOf(items, id)
	if idx < 0 {
		return model.ChecklistItem{}, false
	}
	return items[idx].Clone(), true
}

// Progress returns the rounded percentage of completed items.
func Progress(items []model.ChecklistItem) int {
	if len(items) == 0 {
		return 0
	}
	done := 0
	for _, item := range items {
		if item.Done() {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(items)) * 100))
}

// SortForDisplay returns a copy ordered favorites first, then most recently
// edited. Ties keep their list order.
func SortForDisplay(items []model.ChecklistItem) []model.ChecklistItem {
	out := model.CloneItems(items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsFavorite != out[j].IsFavorite {
			return out[i].IsFavorite
		}
		return out[i].LastEdited > out[j].LastEdited
	})
	return out
}
