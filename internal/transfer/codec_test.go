package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/festpack/internal/model"
)

var fixedNow = time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

func newTestCodec() *Codec {
	n := 0
	return NewCodec(
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func sampleItems() []model.ChecklistItem {
	return []model.ChecklistItem{
		{ID: "1", Text: "Tickets", Category: model.CategoryDocuments, IsCompleted: true},
		{ID: "2", Text: "Earplugs", Category: model.CategoryMisc},
		{
			ID:       "3",
			Text:     "Night 1 Outfit",
			Category: model.CategoryClothing,
			IsOutfit: true,
			OutfitItems: []model.OutfitSubItem{
				{ID: "3-a", Type: model.SubItemShoes, Text: "Boots", IsCompleted: true},
				{ID: "3-b", Type: model.SubItemTop, Text: "Mesh top"},
			},
		},
	}
}

func TestExportShape(t *testing.T) {
	c := newTestCodec()
	out, err := c.Export(sampleItems(), model.EventInfo{Name: "Coachella"})
	require.NoError(t, err)

	var env wireEnvelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))

	ms := fixedNow.UnixMilli()
	assert.Equal(t, FormatVersion, env.Version)
	assert.Equal(t, ms, env.ExportedAt)
	assert.Equal(t, fmt.Sprintf("checklist-%d", ms), env.Checklist.ID)
	assert.Equal(t, "Coachella", env.Checklist.Name)

	want := []wireItem{
		{ID: "1", Name: "Tickets", Category: "documents", Checked: true, CreatedAt: ms, UpdatedAt: ms},
		{ID: "2", Name: "Earplugs", Category: "miscellaneous", CreatedAt: ms, UpdatedAt: ms},
		{
			ID: "3", Name: "Night 1 Outfit", Category: "clothing", IsOutfit: true,
			SubItems: []wireSubItem{
				{ID: "3-a", Name: "Boots", Checked: true},
				{ID: "3-b", Name: "Mesh top"},
			},
			CreatedAt: ms, UpdatedAt: ms,
		},
	}
	if diff := cmp.Diff(want, env.Checklist.Items); diff != "" {
		t.Errorf("exported items mismatch (-want +got):\n%s", diff)
	}
}

func TestExportIndentedAndOmitsSubItemsForPlainItems(t *testing.T) {
	c := newTestCodec()
	out, err := c.Export(sampleItems()[:1], model.EventInfo{Name: "X"})
	require.NoError(t, err)

	assert.Contains(t, out, "\n  \"version\": \"1.0\"")
	assert.NotContains(t, out, "subItems")
	assert.NotContains(t, out, "\"type\"")
}

func TestExportDefaultName(t *testing.T) {
	c := newTestCodec()
	out, err := c.Export(nil, model.EventInfo{})
	require.NoError(t, err)

	var env wireEnvelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, DefaultChecklistName, env.Checklist.Name)
	assert.NotNil(t, env.Checklist.Items)

	custom := NewCodec(WithDefaultName("Packing"))
	out, err = custom.Export(nil, model.EventInfo{Name: "   "})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, "Packing", env.Checklist.Name)
}

func TestExportDeterministic(t *testing.T) {
	items := sampleItems()
	a, err := newTestCodec().Export(items, model.EventInfo{Name: "A"})
	require.NoError(t, err)
	b, err := newTestCodec().Export(items, model.EventInfo{Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRoundTrip(t *testing.T) {
	c := newTestCodec()
	items := sampleItems()

	out, err := c.Export(items, model.EventInfo{Name: "Coachella"})
	require.NoError(t, err)

	res, err := c.Import(out)
	require.NoError(t, err)
	assert.Equal(t, "Coachella", res.Name)
	require.Len(t, res.Items, len(items))

	ignore := cmp.Options{
		cmpopts.IgnoreFields(model.ChecklistItem{}, "ID"),
		cmpopts.IgnoreFields(model.OutfitSubItem{}, "ID", "Type"),
	}
	if diff := cmp.Diff(items, res.Items, ignore); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	seen := map[string]bool{}
	for i, item := range res.Items {
		assert.NotEqual(t, items[i].ID, item.ID, "import must assign fresh ids")
		assert.False(t, seen[item.ID])
		seen[item.ID] = true
	}
	for _, sub := range res.Items[2].OutfitItems {
		assert.Equal(t, model.SubItemAccessories, sub.Type)
	}
}

func TestRoundTripKeepsTextVerbatim(t *testing.T) {
	c := newTestCodec()
	items := []model.ChecklistItem{
		{ID: "1", Text: "  Sunscreen SPF 50 ", Category: model.CategoryToiletries},
	}

	out, err := c.Export(items, model.EventInfo{})
	require.NoError(t, err)
	res, err := c.Import(out)
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	assert.Equal(t, "  Sunscreen SPF 50 ", res.Items[0].Text)
}

func TestImportBareChecklist(t *testing.T) {
	c := newTestCodec()
	res, err := c.Import(`{"name":"Bare","items":[{"name":"Water","category":"miscellaneous","checked":true}]}`)
	require.NoError(t, err)

	want := []model.ChecklistItem{
		{ID: "id-1", Text: "Water", Category: model.CategoryMisc, IsCompleted: true},
	}
	if diff := cmp.Diff(want, res.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Bare", res.Name)
}

func TestImportOutfitWithoutSubItems(t *testing.T) {
	c := newTestCodec()
	res, err := c.Import(`{"checklist":{"name":"n","items":[{"name":"Fit","category":"clothing","isOutfit":true}]}}`)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.True(t, res.Items[0].IsOutfit)
	assert.NotNil(t, res.Items[0].OutfitItems)
	assert.Empty(t, res.Items[0].OutfitItems)
}

func TestImportPreservesUnknownCategory(t *testing.T) {
	c := newTestCodec()
	res, err := c.Import(`{"name":"n","items":[{"name":"Tent","category":"camping"}]}`)
	require.NoError(t, err)
	assert.Equal(t, "camping", res.Items[0].Category)
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    ErrorKind
		target  error
		index   int
		message string
	}{
		{
			name:    "not json",
			input:   "not json",
			kind:    KindMalformed,
			target:  ErrMalformed,
			index:   -1,
			message: "Invalid JSON format",
		},
		{
			name:    "missing items",
			input:   `{"name":"x"}`,
			kind:    KindInvalidChecklist,
			target:  ErrInvalidChecklist,
			index:   -1,
			message: "Invalid checklist format: missing name or items",
		},
		{
			name:   "missing name",
			input:  `{"checklist":{"items":[]}}`,
			kind:   KindInvalidChecklist,
			target: ErrInvalidChecklist,
			index:  -1,
		},
		{
			name:   "items not an array",
			input:  `{"name":"x","items":{}}`,
			kind:   KindInvalidChecklist,
			target: ErrInvalidChecklist,
			index:  -1,
		},
		{
			name:   "top level array",
			input:  `[1,2,3]`,
			kind:   KindInvalidChecklist,
			target: ErrInvalidChecklist,
			index:  -1,
		},
		{
			name:   "checklist not an object",
			input:  `{"checklist":"nope","name":"x","items":[]}`,
			kind:   KindInvalidChecklist,
			target: ErrInvalidChecklist,
			index:  -1,
		},
		{
			name:    "item missing category",
			input:   `{"name":"x","items":[{"name":"ok","category":"misc"},{"name":"Tent"}]}`,
			kind:    KindInvalidItem,
			target:  ErrInvalidItem,
			index:   1,
			message: "Invalid item #2: missing name or category",
		},
		{
			name:   "item not an object",
			input:  `{"name":"x","items":["Tent"]}`,
			kind:   KindInvalidItem,
			target: ErrInvalidItem,
			index:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newTestCodec().Import(tt.input)
			require.Error(t, err)
			assert.Nil(t, res)

			var ie *ImportError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tt.kind, ie.Kind)
			assert.Equal(t, tt.index, ie.Index)
			assert.ErrorIs(t, err, tt.target)
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
		})
	}
}
