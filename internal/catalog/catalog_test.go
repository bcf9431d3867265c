package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/festpack/internal/model"
)

func ids(templates []model.Template) []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = t.ID
	}
	return out
}

func TestBuiltin(t *testing.T) {
	c, err := Builtin(model.DefaultBaseTemplate)
	require.NoError(t, err)

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, "coachella", c.BaseID())
	assert.Len(t, c.Base(), 13)
	assert.Equal(t, "Coachella", c.BaseEvent().Name)

	edc, ok := c.Lookup("edc")
	require.True(t, ok)
	outfit := edc.Items[len(edc.Items)-1]
	require.True(t, outfit.IsOutfit)
	require.Len(t, outfit.OutfitItems, 4)
	assert.Equal(t, "edc-10-1", outfit.OutfitItems[0].ID)
	assert.Equal(t, model.SubItemTop, outfit.OutfitItems[0].Type)
	assert.Equal(t, "https://lasvegas.electricdaisycarnival.com/faq", edc.Event.ProhibitedItemsLink)
	require.NotNil(t, edc.Event.StartDate)
	assert.Equal(t, "May 16 - 18, 2025", model.FormatDateRange(edc.Event.StartDate, edc.Event.EndDate))
}

func TestLookupReturnsCopies(t *testing.T) {
	c, err := Builtin(model.DefaultBaseTemplate)
	require.NoError(t, err)

	tpl, _ := c.Lookup("edc")
	tpl.Items[0].Text = "changed"
	tpl.Items[len(tpl.Items)-1].OutfitItems[0].IsCompleted = true
	*tpl.Event.StartDate = time.Time{}

	again, _ := c.Lookup("edc")
	assert.Equal(t, "Festival Ticket/Wristband", again.Items[0].Text)
	assert.False(t, again.Items[len(again.Items)-1].OutfitItems[0].IsCompleted)
	assert.False(t, again.Event.StartDate.IsZero())

	base := c.Base()
	base[0].IsCompleted = true
	assert.False(t, c.Base()[0].IsCompleted)

	_, ok := c.Lookup("missing")
	assert.False(t, ok)
}

func TestUpcoming(t *testing.T) {
	c, err := Builtin(model.DefaultBaseTemplate)
	require.NoError(t, err)

	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	got := c.Upcoming(now)
	assert.Equal(t, []string{"edc", "glastonbury", "outsidelands", "coachella"}, ids(got))

	assert.True(t, IsPast(got[3], now))
	assert.False(t, IsPast(got[0], now))
}

func TestUpcomingUndatedLast(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	c, err := New([]model.Template{
		{ID: "undated-a"},
		{ID: "old", Event: model.EventInfo{StartDate: &start}},
		{ID: "undated-b"},
	}, "undated-a")
	require.NoError(t, err)

	got := c.Upcoming(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{"old", "undated-a", "undated-b"}, ids(got))
	assert.False(t, IsPast(got[1], time.Now()))
}

func TestNewValidation(t *testing.T) {
	_, err := New([]model.Template{{ID: "a"}, {ID: "a"}}, "a")
	assert.ErrorContains(t, err, "duplicate")

	_, err = New([]model.Template{{ID: ""}}, "")
	assert.Error(t, err)

	_, err = New([]model.Template{{ID: "a", Items: []model.ChecklistItem{{Text: " "}}}}, "a")
	assert.ErrorContains(t, err, "without text")

	_, err = New([]model.Template{{ID: "a"}}, "b")
	assert.True(t, errors.Is(err, ErrTemplateNotFound))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "bad yaml", doc: "templates: [unclosed"},
		{name: "unknown category", doc: `
templates:
  - id: a
    items:
      - {id: "1", text: "Tent", category: camping}
`},
		{name: "unknown sub-item type", doc: `
templates:
  - id: a
    items:
      - id: "1"
        text: Fit
        category: clothing
        outfit: true
        outfit_items:
          - {type: hat, text: Cap}
`},
		{name: "bad date", doc: `
templates:
  - id: a
    event:
      start_date: "April 11"
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "a")
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	doc := `
templates:
  - id: home
    name: Home
    items:
      - {id: "h1", text: "Keys", category: misc}
      - id: "h2"
        text: "Outfit"
        category: clothing
        outfit: true
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(path, "home")
	require.NoError(t, err)
	base := c.Base()
	require.Len(t, base, 2)
	assert.NotNil(t, base[1].OutfitItems)
	assert.Nil(t, c.BaseEvent().StartDate)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), "home")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
