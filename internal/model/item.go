package model

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// SubItemType classifies an outfit sub-item.
type SubItemType string

// Outfit sub-item types.
const (
	SubItemShoes       SubItemType = "shoes"
	SubItemTop         SubItemType = "top"
	SubItemBottom      SubItemType = "bottom"
	SubItemAccessories SubItemType = "accessories"
)

// SubItemTypes lists the valid sub-item types in display order.
var SubItemTypes = []SubItemType{
	SubItemShoes,
	SubItemTop,
	SubItemBottom,
	SubItemAccessories,
}

// IsValid reports whether t is one of the known sub-item types.
func (t SubItemType) IsValid() bool {
	switch t {
	case SubItemShoes, SubItemTop, SubItemBottom, SubItemAccessories:
		return true
	default:
		return false
	}
}

// OutfitSubItem is a piece of an outfit. Its lifecycle is bound to the
// parent outfit item.
type OutfitSubItem struct {
	ID          string      `json:"id"`
	Type        SubItemType `json:"type"`
	Text        string      `json:"text"`
	IsCompleted bool        `json:"isCompleted"`
}

// ChecklistItem is a single trackable entry in a checklist.
type ChecklistItem struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Category    string `json:"category"`
	IsCompleted bool   `json:"isCompleted"`
	IsOutfit    bool   `json:"isOutfit,omitempty"`

	// OutfitItems is only meaningful when IsOutfit is set, in which case it
	// is never nil.
	OutfitItems []OutfitSubItem `json:"outfitItems,omitempty"`

	IsFavorite bool `json:"isFavorite,omitempty"`

	// LastEdited is the epoch millisecond timestamp of the last edit.
	LastEdited int64 `json:"lastEdited,omitempty"`
}

// MarshalJSON writes outfitItems for every outfit, as [] when it has no
// pieces, and omits it for plain items.
func (i ChecklistItem) MarshalJSON() ([]byte, error) {
	type plain ChecklistItem
	out := struct {
		plain
		OutfitItems *[]OutfitSubItem `json:"outfitItems,omitempty"`
	}{plain: plain(i.Normalize())}
	if i.IsOutfit {
		out.OutfitItems = &out.plain.OutfitItems
	}
	return json.Marshal(out)
}

// NewItemID returns a fresh opaque item identifier.
func NewItemID() string {
	return uuid.NewString()
}

// NewSubItemID returns a sub-item identifier derived from the parent id.
func NewSubItemID(parentID string) string {
	return parentID + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// TextKey is the normalized text used for duplicate detection.
func TextKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Done reports the aggregate completion state. Outfits with sub-items are
// done when every sub-item is done; otherwise the item's own flag counts.
func (i ChecklistItem) Done() bool {
	if !i.IsOutfit || len(i.OutfitItems) == 0 {
		return i.IsCompleted
	}
	for _, sub := range i.OutfitItems {
		if !sub.IsCompleted {
			return false
		}
	}
	return true
}

// SubItemProgress returns completed and total sub-item counts.
func (i ChecklistItem) SubItemProgress() (done, total int) {
	for _, sub := range i.OutfitItems {
		if sub.IsCompleted {
			done++
		}
	}
	return done, len(i.OutfitItems)
}

// Clone returns a deep copy of the item.
func (i ChecklistItem) Clone() ChecklistItem {
	c := i
	if i.OutfitItems != nil {
		c.OutfitItems = make([]OutfitSubItem, len(i.OutfitItems))
		copy(c.OutfitItems, i.OutfitItems)
	}
	return c
}

// Normalize enforces the outfit invariant: outfits always carry a
// (possibly empty) sub-item slice, other items carry none.
func (i ChecklistItem) Normalize() ChecklistItem {
	if i.IsOutfit {
		if i.OutfitItems == nil {
			i.OutfitItems = []OutfitSubItem{}
		}
		return i
	}
	i.OutfitItems = nil
	return i
}

// CloneItems deep-copies a list of items.
func CloneItems(items []ChecklistItem) []ChecklistItem {
	if items == nil {
		return nil
	}
	out := make([]ChecklistItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
