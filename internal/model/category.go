package model

// Category identifiers.
const (
	CategoryDocuments   = "documents"
	CategoryClothing    = "clothing"
	CategoryElectronics = "electronics"
	CategoryToiletries  = "toiletries"
	CategoryMisc        = "misc"
)

// Category is a registry entry with display metadata.
type Category struct {
	ID    string
	Name  string
	Color string
}

// Categories is the fixed, ordered category registry.
var Categories = []Category{
	{ID: CategoryDocuments, Name: "Documents", Color: "#5B9BD5"},
	{ID: CategoryClothing, Name: "Clothing", Color: "#6BCB77"},
	{ID: CategoryElectronics, Name: "Electronics", Color: "#CC5DE8"},
	{ID: CategoryToiletries, Name: "Toiletries", Color: "#FFD93D"},
	{ID: CategoryMisc, Name: "Miscellaneous", Color: "#868E96"},
}

// LookupCategory returns the registry entry for id.
func LookupCategory(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// IsKnownCategory reports whether id is in the registry.
func IsKnownCategory(id string) bool {
	_, ok := LookupCategory(id)
	return ok
}

// CategoryName returns the display name for id. Unrecognized ids are
// preserved and shown as-is.
func CategoryName(id string) string {
	if c, ok := LookupCategory(id); ok {
		return c.Name
	}
	return id
}
