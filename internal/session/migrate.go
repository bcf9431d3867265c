package session

import "github.com/nhle/festpack/internal/model"

// legacyMiscCategory is how older stores spelled the misc category.
const legacyMiscCategory = "miscellaneous"

// migrateItems upgrades a stored checklist written by older versions: items
// without ids get one, the legacy misc spelling is renamed and outfit
// sub-item lists are normalized. changed reports whether anything moved.
func migrateItems(items []model.ChecklistItem) ([]model.ChecklistItem, bool) {
	changed := false
	out := make([]model.ChecklistItem, len(items))
	for i, item := range items {
		item = item.Clone()
		if item.ID == "" {
			item.ID = model.NewItemID()
			changed = true
		}
		if item.Category == legacyMiscCategory {
			item.Category = model.CategoryMisc
			changed = true
		}
		if !item.IsOutfit && item.OutfitItems != nil {
			changed = true
		}
		for j := range item.OutfitItems {
			sub := &item.OutfitItems[j]
			if sub.ID == "" {
				sub.ID = model.NewSubItemID(item.ID)
				changed = true
			}
			if !sub.Type.IsValid() {
				sub.Type = model.SubItemAccessories
				changed = true
			}
		}
		out[i] = item.Normalize()
	}
	return out, changed
}
