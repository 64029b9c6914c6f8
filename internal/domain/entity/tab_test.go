package entity_test

import (
	"testing"

	"github.com/bnema/tabmatch/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func newList(ids ...string) *entity.TabList {
	tl := entity.NewTabList()
	for _, id := range ids {
		tl.Add(entity.NewTab(entity.TabID(id), "https://example.com/"+id))
	}
	return tl
}

func TestTabList_AddSetsPositionAndActive(t *testing.T) {
	tl := newList("a", "b", "c")

	assert.Equal(t, 3, tl.Count())
	assert.Equal(t, entity.TabID("a"), tl.ActiveTabID)
	assert.Equal(t, 2, tl.Tabs[2].Position)
	assert.Equal(t, "https://example.com/b", tl.URIAt(1))
}

func TestTabList_URIAtOutOfRange(t *testing.T) {
	tl := newList("a")

	assert.Empty(t, tl.URIAt(-1))
	assert.Empty(t, tl.URIAt(1))

	var nilList *entity.TabList
	assert.Zero(t, nilList.Count())
	assert.Empty(t, nilList.URIAt(0))
}
