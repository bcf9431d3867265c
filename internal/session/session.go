// Package session owns the live checklist, event details and template view
// history, and persists each change as soon as it is made.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nhle/festpack/internal/catalog"
	"github.com/nhle/festpack/internal/checklist"
	"github.com/nhle/festpack/internal/model"
	"github.com/nhle/festpack/internal/reconcile"
	"github.com/nhle/festpack/internal/store"
)

// Session is safe for concurrent use. Every mutation reads, computes and
// commits under one lock.
type Session struct {
	mu sync.Mutex

	kv      store.KV
	catalog *catalog.Catalog
	editor  *checklist.Editor
	now     func() time.Time

	historyLimit int

	items   []model.ChecklistItem
	event   model.EventInfo
	history []model.HistoryEntry
}

// Option configures a Session.
type Option func(*Session)

// WithHistoryLimit caps the template view history. Non-positive values keep
// the default.
func WithHistoryLimit(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithClock sets the clock used for edit and history timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Open loads the persisted state from kv. Missing or unreadable values fall
// back to the catalog's base checklist, the default event and an empty
// history.
func Open(ctx context.Context, kv store.KV, cat *catalog.Catalog, opts ...Option) (*Session, error) {
	s := &Session{
		kv:           kv,
		catalog:      cat,
		now:          time.Now,
		historyLimit: model.DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.editor = checklist.NewEditorWithClock(s.now)

	if err := s.loadItems(ctx); err != nil {
		return nil, err
	}
	if err := s.loadEvent(ctx); err != nil {
		return nil, err
	}
	if err := s.loadHistory(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) loadItems(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, store.KeyChecklist)
	if err != nil {
		return fmt.Errorf("loading checklist: %w", err)
	}
	if !ok {
		s.items = s.catalog.Base()
		return nil
	}

	var items []model.ChecklistItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		if err != nil {
			log.Printf("session: stored checklist unreadable, using base: %v", err)
		}
		s.items = s.catalog.Base()
		return nil
	}

	migrated, changed := migrateItems(items)
	s.items = migrated
	if changed {
		s.saveItems(ctx)
	}
	return nil
}

func (s *Session) loadEvent(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, store.KeyEvent)
	if err != nil {
		return fmt.Errorf("loading event: %w", err)
	}
	s.event = model.DefaultEvent()
	if !ok {
		return nil
	}

	var event model.EventInfo
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		log.Printf("session: stored event unreadable, using default: %v", err)
		return nil
	}
	s.event = event
	return nil
}

func (s *Session) loadHistory(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, store.KeyHistory)
	if err != nil {
		return fmt.Errorf("loading template history: %w", err)
	}
	if !ok {
		return nil
	}

	var history []model.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		log.Printf("session: stored template history unreadable: %v", err)
		return nil
	}
	if len(history) > s.historyLimit {
		history = history[:s.historyLimit]
	}
	s.history = history
	return nil
}

// Commit failures are logged; the in-memory state stays authoritative.

func (s *Session) saveItems(ctx context.Context) {
	s.save(ctx, store.KeyChecklist, s.items)
}

func (s *Session) saveEvent(ctx context.Context) {
	s.save(ctx, store.KeyEvent, s.event)
}

func (s *Session) saveHistory(ctx context.Context) {
	s.save(ctx, store.KeyHistory, s.history)
}

func (s *Session) save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("session: encoding %s: %v", key, err)
		return
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		log.Printf("session: saving %s: %v", key, err)
	}
}

// Items returns a copy of the checklist.
func (s *Session) Items() []model.ChecklistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneItems(s.items)
}

// Event returns the current event details.
func (s *Session) Event() model.EventInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.event.Clone()
}

// Progress returns the rounded completion percentage.
func (s *Session) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return checklist.Progress(s.items)
}

// HasChanges reports whether the checklist differs structurally from the
// base checklist.
func (s *Session) HasChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reconcile.HasChanges(s.items, s.catalog.Base())
}

// Catalog returns the template catalog backing the session.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}
