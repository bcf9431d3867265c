package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/nhle/festpack/internal/model"
)

//go:embed templates.yaml
var builtinTemplates []byte

const dateLayout = "2006-01-02"

// catalogFile is the on-disk YAML shape of a template catalog.
type catalogFile struct {
	Templates []templateEntry `yaml:"templates"`
}

type templateEntry struct {
	ID                  string      `yaml:"id"`
	Name                string      `yaml:"name"`
	Thumbnail           string      `yaml:"thumbnail"`
	ProhibitedItemsLink string      `yaml:"prohibited_items_link"`
	Event               eventEntry  `yaml:"event"`
	Items               []itemEntry `yaml:"items"`
}

type eventEntry struct {
	Name      string `yaml:"name"`
	Date      string `yaml:"date"`
	Location  string `yaml:"location"`
	StartTime string `yaml:"start_time"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
}

type itemEntry struct {
	ID          string         `yaml:"id"`
	Text        string         `yaml:"text"`
	Category    string         `yaml:"category"`
	Outfit      bool           `yaml:"outfit"`
	OutfitItems []subItemEntry `yaml:"outfit_items"`
}

type subItemEntry struct {
	Type string `yaml:"type"`
	Text string `yaml:"text"`
}

// Builtin returns the catalog shipped with the application.
func Builtin(baseID string) (*Catalog, error) {
	return Parse(builtinTemplates, baseID)
}

// Load reads a catalog from a YAML file.
func Load(path, baseID string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(data, baseID)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte, baseID string) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	templates := make([]model.Template, 0, len(f.Templates))
	for _, entry := range f.Templates {
		t, err := entry.toTemplate()
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	return New(templates, baseID)
}

func (e templateEntry) toTemplate() (model.Template, error) {
	start, err := parseDate(e.Event.StartDate)
	if err != nil {
		return model.Template{}, fmt.Errorf("template %q start_date: %w", e.ID, err)
	}
	end, err := parseDate(e.Event.EndDate)
	if err != nil {
		return model.Template{}, fmt.Errorf("template %q end_date: %w", e.ID, err)
	}

	t := model.Template{
		ID:                  e.ID,
		Name:                e.Name,
		Thumbnail:           e.Thumbnail,
		ProhibitedItemsLink: e.ProhibitedItemsLink,
		Event: model.EventInfo{
			Name:                e.Event.Name,
			Date:                e.Event.Date,
			Location:            e.Event.Location,
			StartTime:           e.Event.StartTime,
			StartDate:           start,
			EndDate:             end,
			ProhibitedItemsLink: e.ProhibitedItemsLink,
		},
		Items: make([]model.ChecklistItem, 0, len(e.Items)),
	}

	for _, it := range e.Items {
		if !model.IsKnownCategory(it.Category) {
			return model.Template{}, fmt.Errorf("template %q item %q: unknown category %q", e.ID, it.ID, it.Category)
		}
		item := model.ChecklistItem{
			ID:       it.ID,
			Text:     it.Text,
			Category: it.Category,
			IsOutfit: it.Outfit,
		}
		for n, sub := range it.OutfitItems {
			st := model.SubItemType(sub.Type)
			if !st.IsValid() {
				return model.Template{}, fmt.Errorf("template %q item %q: unknown sub-item type %q", e.ID, it.ID, sub.Type)
			}
			item.OutfitItems = append(item.OutfitItems, model.OutfitSubItem{
				ID:   fmt.Sprintf("%s-%d", it.ID, n+1),
				Type: st,
				Text: sub.Text,
			})
		}
		t.Items = append(t.Items, item.Normalize())
	}

	return t, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
