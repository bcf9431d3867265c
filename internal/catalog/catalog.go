// Package catalog holds the read-only set of event templates. A Catalog is
// built once and injected into its consumers; every accessor hands out deep
// copies so callers can never mutate catalog data.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nhle/festpack/internal/model"
)

// ErrTemplateNotFound is returned when an id does not resolve in the catalog.
var ErrTemplateNotFound = errors.New("catalog: template not found")

// Catalog is an immutable collection of templates with one designated base
// template whose items form the base checklist.
type Catalog struct {
	templates []model.Template
	index     map[string]int
	baseID    string
}

// New validates templates and builds a catalog. baseID must name one of the
// templates.
func New(templates []model.Template, baseID string) (*Catalog, error) {
	c := &Catalog{
		templates: make([]model.Template, 0, len(templates)),
		index:     make(map[string]int, len(templates)),
		baseID:    baseID,
	}

	for _, t := range templates {
		if strings.TrimSpace(t.ID) == "" {
			return nil, errors.New("catalog: template id is required")
		}
		if _, dup := c.index[t.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate template id %q", t.ID)
		}
		for _, item := range t.Items {
			if strings.TrimSpace(item.Text) == "" {
				return nil, fmt.Errorf("catalog: template %q has an item without text", t.ID)
			}
		}
		c.index[t.ID] = len(c.templates)
		c.templates = append(c.templates, t.Clone())
	}

	if _, ok := c.index[baseID]; !ok {
		return nil, fmt.Errorf("%w: base template %q", ErrTemplateNotFound, baseID)
	}

	return c, nil
}

// Len returns the number of templates.
func (c *Catalog) Len() int { return len(c.templates) }

// BaseID returns the id of the base template.
func (c *Catalog) BaseID() string { return c.baseID }

// Lookup returns a copy of the template with the given id.
func (c *Catalog) Lookup(id string) (model.Template, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.Template{}, false
	}
	return c.templates[i].Clone(), true
}

// Base returns a copy of the base checklist items.
func (c *Catalog) Base() []model.ChecklistItem {
	return model.CloneItems(c.templates[c.index[c.baseID]].Items)
}

// BaseEvent returns the event of the base template.
func (c *Catalog) BaseEvent() model.EventInfo {
	return c.templates[c.index[c.baseID]].Event.Clone()
}

// All returns copies of every template in catalog order.
func (c *Catalog) All() []model.Template {
	out := make([]model.Template, len(c.templates))
	for i, t := range c.templates {
		out[i] = t.Clone()
	}
	return out
}

// Upcoming returns every template ordered for display relative to now:
// upcoming events first by start date, then past events by start date,
// then templates without a start date in catalog order.
func (c *Catalog) Upcoming(now time.Time) []model.Template {
	out := c.All()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Event.StartDate, out[j].Event.StartDate
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		aPast, bPast := a.Before(now), b.Before(now)
		if aPast != bPast {
			return !aPast
		}
		return a.Before(*b)
	})
	return out
}

// IsPast reports whether the template's event started before now.
func IsPast(t model.Template, now time.Time) bool {
	return t.Event.StartDate != nil && t.Event.StartDate.Before(now)
}
