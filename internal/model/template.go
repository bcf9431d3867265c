package model

// Template is a read-only catalog entry bundling event metadata with a
// canonical item list.
type Template struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Event               EventInfo       `json:"event"`
	Items               []ChecklistItem `json:"items"`
	Thumbnail           string          `json:"thumbnail"`
	ProhibitedItemsLink string          `json:"prohibitedItemsLink,omitempty"`
}

// Clone returns a deep copy of the template.
func (t Template) Clone() Template {
	c := t
	c.Event = t.Event.Clone()
	c.Items = CloneItems(t.Items)
	return c
}

// HistoryEntry records a template the user looked at.
type HistoryEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Timestamp is epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}
