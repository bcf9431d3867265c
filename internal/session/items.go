package session

import (
	"context"
	"fmt"

	"github.com/nhle/festpack/internal/checklist"
	"github.com/nhle/festpack/internal/model"
)

type mutation func([]model.ChecklistItem) ([]model.ChecklistItem, checklist.Change, error)

// mutate applies fn to the current list and commits the result. The lock
// spans the whole read-compute-commit sequence.
func (s *Session) mutate(ctx context.Context, fn mutation) (checklist.Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, change, err := fn(s.items)
	if err != nil || !change.Applied {
		return change, err
	}
	s.items = out
	s.saveItems(ctx)
	return change, nil
}

// Toggle flips an item's completion.
func (s *Session) Toggle(ctx context.Context, id string) Notice {
	change, err := s.mutate(ctx, func(items []model.ChecklistItem) ([]model.ChecklistItem, checklist.Change, error) {
		return s.editor.Toggle(items, id)
	})
	if err != nil {
		return errorNotice(err)
	}
	if change.Item.Done() {
		return changedNotice("Item completed", change.Item.Text)
	}
	return changedNotice("Item unchecked", change.Item.Text)
}

// Add appends a new item.
func (s *Session) Add(ctx context.Context, text, category string, outfit bool) Notice {
	change, err := s.mutate(ctx, func(items []model.ChecklistItem) ([]model.ChecklistItem, checklist.Change, error) {
		return s.editor.Add(items, text, category, checklist.AddOptions{Outfit: outfit})
	})
	if err != nil {
		return errorNotice(err)
	}
	return changedNotice("Item added", change.Item.Text)
}

// Remove deletes an item.
func (s *Session) Remove(ctx context.Context, id string) Notice {
	change, err := s.mutate(ctx, func(items []model.ChecklistItem) ([]model.ChecklistItem, checklist.Change, error) {
		return s.editor.Remove(items, id)
	})
	if err != nil {
		return errorNotice(err)
	}
	return changedNotice("Item removed", change.Item.Text)
}

// EditText renames an item.
func (s *Session) EditText(ctx context.Context, id, text string) Notice {
	change, err := s.mutate(ctx, func(items []model.ChecklistItem) ([]model.ChecklistItem, checklist.Change, error) {
		return s.editor.EditText(items, id, text)
	})
	if err != nil {
		return errorNotice(err)
	}
	if !change.Applied {
		return unchangedNotice("", "")
	}
	return changedNotice("Item updated", change.Item.Text)
}

// ChangeCategory moves an item to another category.
func (s *Session) ChangeCategory(ctx context.Context, id, category string) Notice {
	change, err := s.mutate(ctx, func(items []model.ChecklistItem) ([]model.ChecklistItem, checklist.Change, error) {
		return s.editor.ChangeCategory(items, id, category)
	})
	if err != nil {
		return errorNotice(err)
	}
	if !change.Applied {
		return unchangedNotice("", fmt.Sprintf("%s is already in %s", change.Item.Text, model.CategoryName(category)))
	}
	return changedNotice("Category changed", fmt.Sprintf("%s moved to %s", change.Item.Text, model.CategoryName(category)))
}

// UpdateItem renames an item and moves it to category in one commit. If
// either edit is rejected, neither is applied. An unchanged category is
// not revalidated, so imported unknown categories survive a rename.
func (s *Session) UpdateItem(ctx context.Context, id, text, category string) Notice {
	var renamed, moved bool
	change, err := s.mutate(ctx, func(items []model.ChecklistItem) ([]model.ChecklistItem, checklist.Change, error) {
		out, change, err := s.editor.EditText(items, id, text)
		if err != nil {
			return items, change, err
		}
		renamed = change.Applied
		if category == change.Item.Category {
			return out, change, nil
		}

		out, change, err = s.editor.ChangeCategory(out, id, category)
		if err != nil {
			return items, change, err
		}
		moved = change.Applied
		change.Applied = renamed || moved
		return out, change, nil
	})
	if err != nil {
		return errorNotice(err)
	}

	name := model.CategoryName(change.Item.Category)
	switch {
	case renamed && moved:
		return changedNotice("Item updated", fmt.Sprintf("%s moved to %s", change.Item.Text, name))
	case moved:
		return changedNotice("Category changed", fmt.Sprintf("%s moved to %s", change.Item.Text, name))
	case renamed:
		return changedNotice("Item updated", change.Item.Text)
	default:
		return unchangedNotice("", "")
	}
}

// ToggleFavorite pins or unpins an item.
func (s *Session) ToggleFavorite(ctx context.Context, id string) Notice {
	change, err := s.mutate(ctx, func(items []model.ChecklistItem) ([]model.ChecklistItem, checklist.Change, error) {
		return s.editor.ToggleFavorite(items, id)
	})
	if err != nil {
		return errorNotice(err)
	}
	if change.Item.IsFavorite {
		return changedNotice("Added to favorites", change.Item.Text)
	}
	return changedNotice("Removed from favorites", change.Item.Text)
}

// AddSubItem adds a piece to an outfit.
func (s *Session) AddSubItem(ctx context.Context, id string, typ model.SubItemType, text string) Notice {
	change, err := s.mutate(ctx, func(items []model.ChecklistItem) ([]model.ChecklistItem, checklist.Change, error) {
		return s.editor.AddSubItem(items, id, typ, text)
	})
	if err != nil {
		return errorNotice(err)
	}
	return changedNotice("Outfit piece added", fmt.Sprintf("%s added to %s", text, change.Item.Text))
}

// RemoveSubItem removes a piece from an outfit.
func (s *Session) RemoveSubItem(ctx context.Context, id, subID string) Notice {
	change, err := s.mutate(ctx, func(items []model.ChecklistItem) ([]model.ChecklistItem, checklist.Change, error) {
		return s.editor.RemoveSubItem(items, id, subID)
	})
	if err != nil {
		return errorNotice(err)
	}
	return changedNotice("Outfit piece removed", change.Item.Text)
}

// EditSubItem renames a piece of an outfit.
func (s *Session) EditSubItem(ctx context.Context, id, subID, text string) Notice {
	change, err := s.mutate(ctx, func(items []model.ChecklistItem) ([]model.ChecklistItem, checklist.Change, error) {
		return s.editor.EditSubItem(items, id, subID, text)
	})
	if err != nil {
		return errorNotice(err)
	}
	if !change.Applied {
		return unchangedNotice("", "")
	}
	return changedNotice("Outfit piece updated", change.Item.Text)
}

// ToggleSubItem flips a single outfit piece.
func (s *Session) ToggleSubItem(ctx context.Context, id, subID string) Notice {
	change, err := s.mutate(ctx, func(items []model.ChecklistItem) ([]model.ChecklistItem, checklist.Change, error) {
		return s.editor.ToggleSubItem(items, id, subID)
	})
	if err != nil {
		return errorNotice(err)
	}
	for _, sub := range change.Item.OutfitItems {
		if sub.ID != subID {
			continue
		}
		if sub.IsCompleted {
			return changedNotice("Outfit piece completed", sub.Text)
		}
		return changedNotice("Outfit piece unchecked", sub.Text)
	}
	return changedNotice("Outfit piece updated", change.Item.Text)
}

// ReplaceItems swaps in an imported checklist. name is the imported
// checklist's name, used only for the notice.
func (s *Session) ReplaceItems(ctx context.Context, items []model.ChecklistItem, name string) Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ChecklistItem, len(items))
	for i, item := range items {
		out[i] = item.Clone().Normalize()
	}
	s.items = out
	s.saveItems(ctx)

	return changedNotice("Checklist imported", fmt.Sprintf("%s: %s", name, pluralItems(len(out))))
}

func pluralItems(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}
