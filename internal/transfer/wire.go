package transfer

// FormatVersion is the version tag carried by exported payloads.
const FormatVersion = "1.0"

// Wire types mirror the companion mobile app's export schema.

type wireSubItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

type wireItem struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Category  string        `json:"category"`
	Checked   bool          `json:"checked"`
	IsOutfit  bool          `json:"isOutfit"`
	SubItems  []wireSubItem `json:"subItems,omitempty"`
	Note      string        `json:"note,omitempty"`
	CreatedAt int64         `json:"createdAt"`
	UpdatedAt int64         `json:"updatedAt"`
}

type wireChecklist struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Items     []wireItem `json:"items"`
	CreatedAt int64      `json:"createdAt"`
	UpdatedAt int64      `json:"updatedAt"`
}

type wireEnvelope struct {
	Version    string        `json:"version"`
	ExportedAt int64         `json:"exportedAt"`
	Checklist  wireChecklist `json:"checklist"`
}

// Category identifiers differ between the two schemas only for the
// miscellaneous bucket. The tables are explicit so a category added on one
// side never maps implicitly.
var (
	categoryToExternal = map[string]string{
		"misc": "miscellaneous",
	}
	categoryToInternal = map[string]string{
		"miscellaneous": "misc",
	}
)

func externalCategory(c string) string {
	if mapped, ok := categoryToExternal[c]; ok {
		return mapped
	}
	return c
}

func internalCategory(c string) string {
	if mapped, ok := categoryToInternal[c]; ok {
		return mapped
	}
	return c
}
