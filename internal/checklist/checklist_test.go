package checklist

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/festpack/internal/model"
)

var clock = time.UnixMilli(1_700_000_000_000)

func newTestEditor() *Editor {
	return NewEditorWithClock(func() time.Time { return clock })
}

func fixture() []model.ChecklistItem {
	return []model.ChecklistItem{
		{ID: "a", Text: "Tickets", Category: model.CategoryDocuments},
		{ID: "b", Text: "Earplugs", Category: model.CategoryMisc, IsCompleted: true},
		{
			ID: "c", Text: "Night 1", Category: model.CategoryClothing, IsOutfit: true,
			OutfitItems: []model.OutfitSubItem{
				{ID: "c-1", Type: model.SubItemShoes, Text: "Boots", IsCompleted: true},
				{ID: "c-2", Type: model.SubItemTop, Text: "Mesh top"},
			},
		},
	}
}

func TestMutationsDoNotTouchInput(t *testing.T) {
	e := newTestEditor()
	in := fixture()
	snapshot := model.CloneItems(in)

	_, _, err := e.Toggle(in, "c")
	require.NoError(t, err)
	_, _, err = e.EditSubItem(in, "c", "c-1", "Sandals")
	require.NoError(t, err)
	_, _, err = e.Remove(in, "a")
	require.NoError(t, err)
	_, _, err = e.Add(in, "Tent", model.CategoryMisc, AddOptions{})
	require.NoError(t, err)

	if diff := cmp.Diff(snapshot, in); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestToggleOutfitAggregate(t *testing.T) {
	e := newTestEditor()

	out, change, err := e.Toggle(fixture(), "c")
	require.NoError(t, err)
	require.True(t, change.Applied)

	outfit := out[2]
	assert.True(t, outfit.OutfitItems[0].IsCompleted)
	assert.True(t, outfit.OutfitItems[1].IsCompleted)
	assert.True(t, outfit.Done())
	assert.Equal(t, clock.UnixMilli(), outfit.LastEdited)

	out, _, err = e.Toggle(out, "c")
	require.NoError(t, err)
	assert.False(t, out[2].OutfitItems[0].IsCompleted)
	assert.False(t, out[2].OutfitItems[1].IsCompleted)
	assert.False(t, out[2].Done())
}

func TestTogglePlainAndEmptyOutfit(t *testing.T) {
	e := newTestEditor()
	items := []model.ChecklistItem{
		{ID: "p", Text: "Plain"},
		{ID: "o", Text: "Fit", IsOutfit: true, OutfitItems: []model.OutfitSubItem{}},
	}

	out, _, err := e.Toggle(items, "p")
	require.NoError(t, err)
	assert.True(t, out[0].IsCompleted)

	out, _, err = e.Toggle(out, "o")
	require.NoError(t, err)
	assert.True(t, out[1].IsCompleted)
	assert.True(t, out[1].Done())
}

func TestAdd(t *testing.T) {
	e := newTestEditor()

	out, change, err := e.Add(fixture(), "  Sunscreen ", model.CategoryToiletries, AddOptions{})
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, "Sunscreen", out[3].Text)
	assert.NotEmpty(t, out[3].ID)
	assert.Equal(t, change.Item, out[3])
	assert.Nil(t, out[3].OutfitItems)

	out, _, err = e.Add(out, "Night 2", model.CategoryClothing, AddOptions{Outfit: true})
	require.NoError(t, err)
	assert.NotNil(t, out[4].OutfitItems)

	_, _, err = e.Add(out, "  ", model.CategoryMisc, AddOptions{})
	assert.ErrorIs(t, err, ErrEmptyText)
	_, _, err = e.Add(out, "Tent", "camping", AddOptions{})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestRemove(t *testing.T) {
	e := newTestEditor()
	out, change, err := e.Remove(fixture(), "b")
	require.NoError(t, err)
	assert.Equal(t, "Earplugs", change.Item.Text)
	assert.Len(t, out, 2)

	_, _, err = e.Remove(out, "b")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestEditTextAndCategoryNoOps(t *testing.T) {
	e := newTestEditor()
	in := fixture()

	out, change, err := e.EditText(in, "a", " Tickets ")
	require.NoError(t, err)
	assert.False(t, change.Applied)
	assert.Zero(t, out[0].LastEdited)

	out, change, err = e.EditText(in, "a", "Wristband")
	require.NoError(t, err)
	assert.True(t, change.Applied)
	assert.Equal(t, "Wristband", out[0].Text)

	_, change, err = e.ChangeCategory(in, "a", model.CategoryDocuments)
	require.NoError(t, err)
	assert.False(t, change.Applied)

	out, change, err = e.ChangeCategory(in, "a", model.CategoryMisc)
	require.NoError(t, err)
	assert.True(t, change.Applied)
	assert.Equal(t, model.CategoryMisc, out[0].Category)

	_, _, err = e.ChangeCategory(in, "a", "nope")
	assert.ErrorIs(t, err, ErrUnknownCategory)
	_, _, err = e.EditText(in, "a", "")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestSubItems(t *testing.T) {
	e := newTestEditor()

	out, _, err := e.AddSubItem(fixture(), "c", model.SubItemBottom, "Shorts")
	require.NoError(t, err)
	subs := out[2].OutfitItems
	require.Len(t, subs, 3)
	assert.Contains(t, subs[2].ID, "c-")
	assert.Equal(t, model.SubItemBottom, subs[2].Type)

	_, _, err = e.AddSubItem(out, "a", model.SubItemTop, "Tee")
	assert.ErrorIs(t, err, ErrNotOutfit)
	_, _, err = e.AddSubItem(out, "c", "hat", "Cap")
	assert.ErrorIs(t, err, ErrInvalidSubItemType)

	out, _, err = e.ToggleSubItem(out, "c", "c-2")
	require.NoError(t, err)
	assert.True(t, out[2].OutfitItems[1].IsCompleted)

	_, change, err := e.EditSubItem(out, "c", "c-2", "Mesh top")
	require.NoError(t, err)
	assert.False(t, change.Applied)

	out, _, err = e.RemoveSubItem(out, "c", "c-1")
	require.NoError(t, err)
	require.Len(t, out[2].OutfitItems, 2)
	assert.Equal(t, "c-2", out[2].OutfitItems[0].ID)

	_, _, err = e.RemoveSubItem(out, "c", "c-1")
	assert.ErrorIs(t, err, ErrSubItemNotFound)
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0, Progress(nil))
	assert.Equal(t, 33, Progress(fixture()))

	items := fixture()
	items[0].IsCompleted = true
	assert.Equal(t, 67, Progress(items))
}

func TestSortForDisplay(t *testing.T) {
	items := []model.ChecklistItem{
		{ID: "1", LastEdited: 10},
		{ID: "2", LastEdited: 30},
		{ID: "3", IsFavorite: true, LastEdited: 5},
		{ID: "4"},
		{ID: "5"},
	}
	got := SortForDisplay(items)

	order := make([]string, len(got))
	for i, item := range got {
		order[i] = item.ID
	}
	assert.Equal(t, []string{"3", "2", "1", "4", "5"}, order)
	assert.Equal(t, "1", items[0].ID)
}

func TestFind(t *testing.T) {
	item, ok := Find(fixture(), "c")
	require.True(t, ok)
	assert.Equal(t, "Night 1", item.Text)

	_, ok = Find(fixture(), "z")
	assert.False(t, ok)
}
