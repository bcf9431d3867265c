package session

import (
	"context"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/nhle/festpack/internal/model"
	"github.com/nhle/festpack/internal/reconcile"
)

// ApplyOptions controls how a template is applied.
type ApplyOptions struct {
	// EventReadOnly keeps the current event details instead of adopting the
	// template's.
	EventReadOnly bool
}

// ApplyTemplate merges a template's items into the checklist and, unless
// the event is read-only, adopts the template's event details.
func (s *Session) ApplyTemplate(ctx context.Context, id string, opts ApplyOptions) Notice {
	tpl, ok := s.catalog.Lookup(id)
	if !ok {
		return warningNotice("Template not found", fmt.Sprintf("No template with id %q", id))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := reconcile.Merge(s.items, tpl.Items)
	if res.Added > 0 {
		s.items = res.Items
		s.saveItems(ctx)
	}

	eventChanged := false
	if !opts.EventReadOnly {
		event := tpl.Event.Clone()
		if event.ProhibitedItemsLink == "" {
			event.ProhibitedItemsLink = tpl.ProhibitedItemsLink
		}
		eventChanged = !event.Equal(s.event)
		s.event = event
		s.saveEvent(ctx)
	}

	switch {
	case res.Added > 0:
		return changedNotice("Template applied", fmt.Sprintf("Added %s from %s", pluralItems(res.Added), tpl.Name))
	case eventChanged:
		return changedNotice("Template applied", fmt.Sprintf("Event switched to %s; no new items", tpl.Name))
	default:
		return unchangedNotice("", fmt.Sprintf("Checklist already has every item from %s", tpl.Name))
	}
}

// Reset restores the base checklist with every item unchecked.
func (s *Session) Reset(ctx context.Context) Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	restored := reconcile.ResetCopy(s.catalog.Base())
	if cmp.Equal(restored, s.items, cmpopts.EquateEmpty()) {
		return unchangedNotice("", "Checklist is already in its original state")
	}
	s.items = restored
	s.saveItems(ctx)
	return changedNotice("Template reset", "All items have been restored to their original state")
}

// SetEvent replaces the event details.
func (s *Session) SetEvent(ctx context.Context, event model.EventInfo) Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.Equal(s.event) {
		return unchangedNotice("", "Event details remain unchanged")
	}
	s.event = event.Clone()
	s.saveEvent(ctx)
	return changedNotice("Event updated", "Event details have been saved")
}

// ViewTemplate records that a template was looked at and returns it.
// Re-viewing moves the entry to the front; the history is capped.
func (s *Session) ViewTemplate(ctx context.Context, id string) (model.Template, bool) {
	tpl, ok := s.catalog.Lookup(id)
	if !ok {
		return model.Template{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]model.HistoryEntry, 0, s.historyLimit)
	history = append(history, model.HistoryEntry{
		ID:        tpl.ID,
		Name:      tpl.Name,
		Timestamp: s.now().UnixMilli(),
	})
	for _, entry := range s.history {
		if len(history) == s.historyLimit {
			break
		}
		if entry.ID != id {
			history = append(history, entry)
		}
	}
	s.history = history
	s.saveHistory(ctx)
	return tpl, true
}

// History returns the viewed templates, most recent first.
func (s *Session) History() []model.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// LastViewedTemplate returns the most recently viewed template that still
// exists in the catalog.
func (s *Session) LastViewedTemplate() (model.Template, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) == 0 {
		return model.Template{}, false
	}
	return s.catalog.Lookup(s.history[0].ID)
}
