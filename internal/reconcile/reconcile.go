// Package reconcile merges template items into a user's checklist and
// detects whether a checklist has diverged from the base checklist.
package reconcile

import (
	"sort"

	"github.com/nhle/festpack/internal/model"
)

// MergeResult is the outcome of merging a template into a checklist.
type MergeResult struct {
	// Items is the current list followed by the admitted template items.
	Items []model.ChecklistItem

	// Added counts the admitted template items.
	Added int
}

// Merge admits every template item whose normalized text is not already in
// current. Admitted items get fresh ids and start uncompleted. Applying the
// same template twice admits nothing the second time.
func Merge(current, template []model.ChecklistItem) MergeResult {
	present := make(map[string]struct{}, len(current))
	for _, item := range current {
		present[model.TextKey(item.Text)] = struct{}{}
	}

	out := model.CloneItems(current)
	if out == nil {
		out = []model.ChecklistItem{}
	}

	added := 0
	for _, item := range template {
		if _, ok := present[model.TextKey(item.Text)]; ok {
			continue
		}
		out = append(out, admit(item))
		added++
	}

	return MergeResult{Items: out, Added: added}
}

// admit copies a template item under a fresh identity with all completion
// cleared.
func admit(item model.ChecklistItem) model.ChecklistItem {
	c := item.Clone()
	c.ID = model.NewItemID()
	c.IsCompleted = false
	for i := range c.OutfitItems {
		c.OutfitItems[i].ID = model.NewSubItemID(c.ID)
		c.OutfitItems[i].IsCompleted = false
	}
	return c.Normalize()
}

// ResetCopy returns a deep copy of base with every completion flag cleared.
func ResetCopy(base []model.ChecklistItem) []model.ChecklistItem {
	out := make([]model.ChecklistItem, len(base))
	for i, item := range base {
		c := item.Clone()
		c.IsCompleted = false
		for j := range c.OutfitItems {
			c.OutfitItems[j].IsCompleted = false
		}
		out[i] = c.Normalize()
	}
	return out
}

// shape is the comparison key for change detection. Completion, favorites,
// edit times and ids are deliberately not part of it.
type shape struct {
	text        string
	category    string
	isOutfit    bool
	outfitCount int
}

func shapes(items []model.ChecklistItem) []shape {
	out := make([]shape, len(items))
	for i, item := range items {
		out[i] = shape{
			text:        model.TextKey(item.Text),
			category:    item.Category,
			isOutfit:    item.IsOutfit,
			outfitCount: len(item.OutfitItems),
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.text != b.text {
			return a.text < b.text
		}
		if a.category != b.category {
			return a.category < b.category
		}
		if a.isOutfit != b.isOutfit {
			return !a.isOutfit
		}
		return a.outfitCount < b.outfitCount
	})
	return out
}

// HasChanges reports whether current differs structurally from base. The
// comparison is order-independent: both sides are compared as multisets of
// (text, category, outfit flag, sub-item count).
func HasChanges(current, base []model.ChecklistItem) bool {
	if len(current) != len(base) {
		return true
	}
	a, b := shapes(current), shapes(base)
	for i := range a {
		if a[i] != b[i] {
			return true
		}
	}
	return false
}
