package help

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/festpack/internal/keys"
	"github.com/nhle/festpack/internal/model"
	"github.com/nhle/festpack/internal/ui/command"
)

func TestViewListsCommandsAndCategories(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 120, 60)
	view := m.View()

	for _, c := range command.Commands {
		assert.Contains(t, view, ":"+c.Usage)
	}
	for _, c := range model.Categories {
		assert.Contains(t, view, c.Name)
	}
}
