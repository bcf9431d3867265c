// Package transfer converts checklists between the internal schema and the
// companion mobile app's export schema.
package transfer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/festpack/internal/model"
)

// DefaultChecklistName names exports whose event has no name.
const DefaultChecklistName = "My Festival Checklist"

// ImportResult is a successfully imported checklist.
type ImportResult struct {
	Name  string
	Items []model.ChecklistItem
}

// Codec translates between schemas. The zero value is not usable; build one
// with NewCodec.
type Codec struct {
	now         func() time.Time
	newID       func() string
	defaultName string
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock sets the clock used for export timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// WithIDGenerator sets the generator for ids assigned on import.
func WithIDGenerator(newID func() string) Option {
	return func(c *Codec) { c.newID = newID }
}

// WithDefaultName sets the checklist name used when the event has none.
func WithDefaultName(name string) Option {
	return func(c *Codec) {
		if strings.TrimSpace(name) != "" {
			c.defaultName = name
		}
	}
}

// NewCodec returns a Codec with the wall clock and uuid identifiers.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{
		now:         time.Now,
		newID:       model.NewItemID,
		defaultName: DefaultChecklistName,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Export renders items in the mobile schema. Apart from the timestamps (and
// the checklist id derived from them) the output depends only on the input.
func (c *Codec) Export(items []model.ChecklistItem, info model.EventInfo) (string, error) {
	now := c.now().UnixMilli()

	name := info.Name
	if strings.TrimSpace(name) == "" {
		name = c.defaultName
	}

	wireItems := make([]wireItem, len(items))
	for i, item := range items {
		wireItems[i] = toWireItem(item, now)
	}

	env := wireEnvelope{
		Version:    FormatVersion,
		ExportedAt: now,
		Checklist: wireChecklist{
			ID:        fmt.Sprintf("checklist-%d", now),
			Name:      name,
			Items:     wireItems,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding checklist: %w", err)
	}
	return string(data), nil
}

func toWireItem(item model.ChecklistItem, now int64) wireItem {
	w := wireItem{
		ID:        item.ID,
		Name:      item.Text,
		Category:  externalCategory(item.Category),
		Checked:   item.IsCompleted,
		IsOutfit:  item.IsOutfit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if item.IsOutfit {
		w.SubItems = make([]wireSubItem, len(item.OutfitItems))
		for i, sub := range item.OutfitItems {
			w.SubItems[i] = wireSubItem{
				ID:      sub.ID,
				Name:    sub.Text,
				Checked: sub.IsCompleted,
			}
		}
	}
	return w
}

// Import parses and validates a payload in the mobile schema. It accepts
// both the export envelope and a bare checklist object. Rejections are
// returned as *ImportError.
func (c *Codec) Import(data string) (*ImportResult, error) {
	var root any
	if err := json.Unmarshal([]byte(data), &root); err != nil {
		return nil, &ImportError{Kind: KindMalformed, Index: -1, Cause: err}
	}

	checklist, ok := unwrapChecklist(root)
	if !ok {
		return nil, &ImportError{Kind: KindInvalidChecklist, Index: -1}
	}

	name, _ := checklist["name"].(string)
	rawItems, isArray := checklist["items"].([]any)
	if strings.TrimSpace(name) == "" || !isArray {
		return nil, &ImportError{Kind: KindInvalidChecklist, Index: -1}
	}

	objects := make([]map[string]any, len(rawItems))
	for i, raw := range rawItems {
		obj, _ := raw.(map[string]any)
		if strings.TrimSpace(stringField(obj, "name")) == "" ||
			strings.TrimSpace(stringField(obj, "category")) == "" {
			return nil, &ImportError{Kind: KindInvalidItem, Index: i}
		}
		objects[i] = obj
	}

	items := make([]model.ChecklistItem, len(objects))
	for i, obj := range objects {
		items[i] = c.fromWireItem(obj)
	}

	return &ImportResult{Name: name, Items: items}, nil
}

// unwrapChecklist selects the checklist object from an envelope or returns
// the root itself.
func unwrapChecklist(root any) (map[string]any, bool) {
	obj, ok := root.(map[string]any)
	if !ok {
		return nil, false
	}
	inner, present := obj["checklist"]
	if !present || inner == nil {
		return obj, true
	}
	if b, isBool := inner.(bool); isBool && !b {
		return obj, true
	}
	checklist, ok := inner.(map[string]any)
	return checklist, ok
}

func (c *Codec) fromWireItem(obj map[string]any) model.ChecklistItem {
	item := model.ChecklistItem{
		ID:          c.newID(),
		Text:        stringField(obj, "name"),
		Category:    internalCategory(stringField(obj, "category")),
		IsCompleted: boolField(obj, "checked"),
		IsOutfit:    boolField(obj, "isOutfit"),
	}

	if item.IsOutfit {
		subs, _ := obj["subItems"].([]any)
		item.OutfitItems = make([]model.OutfitSubItem, 0, len(subs))
		for _, raw := range subs {
			sub, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			item.OutfitItems = append(item.OutfitItems, model.OutfitSubItem{
				ID:          model.NewSubItemID(item.ID),
				Type:        model.SubItemAccessories,
				Text:        stringField(sub, "name"),
				IsCompleted: boolField(sub, "checked"),
			})
		}
	}

	return item.Normalize()
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func boolField(obj map[string]any, key string) bool {
	b, _ := obj[key].(bool)
	return b
}
