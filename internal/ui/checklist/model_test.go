package checklist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/festpack/internal/keys"
	"github.com/nhle/festpack/internal/model"
)

type staticSource []model.ChecklistItem

func (s staticSource) Items() []model.ChecklistItem { return s }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, items ...model.ChecklistItem) Model {
	t.Helper()
	m := New(staticSource(items), keys.DefaultKeyMap(), 80, 24)
	msg := m.LoadItems()()
	m, _ = m.Update(msg)
	return m
}

func TestNextCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{model.CategoryDocuments, model.CategoryClothing},
		{model.CategoryToiletries, model.CategoryMisc},
		{model.CategoryMisc, model.CategoryDocuments},
		{"snacks", model.CategoryDocuments},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextCategory(tt.in), tt.in)
	}
}

func TestFavoritesListedFirst(t *testing.T) {
	m := loaded(t,
		model.ChecklistItem{ID: "a", Text: "Tickets", Category: model.CategoryDocuments},
		model.ChecklistItem{ID: "b", Text: "Sunscreen", Category: model.CategoryToiletries, IsFavorite: true},
	)

	item, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", item.ID)
}

func TestKeysEmitRequests(t *testing.T) {
	m := loaded(t,
		model.ChecklistItem{ID: "fit", Text: "Day one", Category: model.CategoryClothing, IsOutfit: true, OutfitItems: []model.OutfitSubItem{}, LastEdited: 2},
		model.ChecklistItem{ID: "a", Text: "Tickets", Category: model.CategoryDocuments, LastEdited: 1},
	)

	tests := []struct {
		key  tea.KeyMsg
		want tea.Msg
	}{
		{runes("x"), ToggleMsg{ID: "fit"}},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, ToggleMsg{ID: "fit"}},
		{tea.KeyMsg{Type: tea.KeyEnter}, OpenOutfitMsg{ID: "fit"}},
		{runes("f"), FavoriteMsg{ID: "fit"}},
		{runes("e"), EditMsg{ID: "fit"}},
		{runes("d"), DeleteMsg{ID: "fit"}},
		{runes("c"), CategoryMsg{ID: "fit", Category: model.CategoryElectronics}},
		{runes("n"), NewItemMsg{}},
	}
	for _, tt := range tests {
		_, cmd := m.Update(tt.key)
		require.NotNil(t, cmd, tt.key.String())
		assert.Equal(t, tt.want, cmd(), tt.key.String())
	}
}

func TestEnterTogglesPlainItems(t *testing.T) {
	m := loaded(t, model.ChecklistItem{ID: "a", Text: "Tickets", Category: model.CategoryDocuments})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ToggleMsg{ID: "a"}, cmd())
}

func TestSearchFiltersRows(t *testing.T) {
	m := loaded(t,
		model.ChecklistItem{ID: "a", Text: "Tickets", Category: model.CategoryDocuments},
		model.ChecklistItem{ID: "b", Text: "Sunscreen", Category: model.CategoryToiletries},
		model.ChecklistItem{ID: "c", Text: "Day one", Category: model.CategoryClothing, IsOutfit: true,
			OutfitItems: []model.OutfitSubItem{{ID: "c-1", Type: model.SubItemShoes, Text: "Sneakers"}}},
	)

	m, _ = m.Update(runes("/"))
	require.True(t, m.Searching())
	for _, r := range "sneak" {
		m, _ = m.Update(runes(string(r)))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.Searching())
	assert.Equal(t, "sneak", m.Query())
	require.Len(t, m.list.Items(), 1)
	item, _ := m.Selected()
	assert.Equal(t, "c", item.ID, "matches outfit pieces")

	m, _ = m.Update(runes("/"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.Query())
	assert.Len(t, m.list.Items(), 3)
}

func TestMatchesCategoryName(t *testing.T) {
	item := model.ChecklistItem{Text: "Toothbrush", Category: model.CategoryToiletries}
	assert.True(t, matches(item, ""))
	assert.True(t, matches(item, "TOILET"))
	assert.False(t, matches(item, "tickets"))
}
