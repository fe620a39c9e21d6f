package linkindex_test

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/mylinks/internal/linkindex"
	"github.com/nikbrunner/mylinks/internal/model"
)

func columns() [][]model.Widget {
	return [][]model.Widget{
		{
			{ID: "w1", Title: "Media", List: []model.Link{
				{ID: "a", Label: "YouTube"},
				{ID: "b", Label: "Gmail"},
			}},
		},
		{
			{ID: "w2", Title: "Empty"},
			{ID: "w3", Title: "Dev", List: []model.Link{
				{ID: "c", Label: "GitHub"},
			}},
		},
	}
}

func TestBuild_FindsEveryLink(t *testing.T) {
	cols := columns()
	idx, err := linkindex.Build(cols)
	assert.NilError(t, err)
	assert.Equal(t, idx.Len(), 3)

	tests := []struct {
		id       string
		widget   string
		column   int
		position int
	}{
		{id: "a", widget: "w1", column: 0, position: 0},
		{id: "b", widget: "w1", column: 0, position: 1},
		{id: "c", widget: "w3", column: 1, position: 0},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			e, ok := idx.Find(tt.id)
			assert.Assert(t, ok)
			assert.Equal(t, e.Link.ID, tt.id)
			assert.Equal(t, e.Widget.ID, tt.widget)
			assert.Equal(t, e.Column, tt.column)
			assert.Equal(t, e.Position, tt.position)
		})
	}

	_, ok := idx.Find("missing")
	assert.Check(t, !ok)
}

func TestBuild_PointsIntoDocument(t *testing.T) {
	cols := columns()
	idx, err := linkindex.Build(cols)
	assert.NilError(t, err)

	e, _ := idx.Find("c")
	e.Link.Label = "Changed"
	assert.Equal(t, cols[1][1].List[0].Label, "Changed")
}

func TestBuild_EntriesInDocumentOrder(t *testing.T) {
	idx, err := linkindex.Build(columns())
	assert.NilError(t, err)

	var ids []string
	for _, e := range idx.Entries() {
		ids = append(ids, e.Link.ID)
	}
	assert.DeepEqual(t, ids, []string{"a", "b", "c"})
}

func TestBuild_DuplicateIDs(t *testing.T) {
	cols := columns()
	cols[1][1].List = append(cols[1][1].List, model.Link{ID: "a", Label: "Other"})

	idx, err := linkindex.Build(cols)
	assert.Check(t, is.Nil(idx))

	var dup *linkindex.DuplicateIDError
	assert.Assert(t, errors.As(err, &dup))
	assert.DeepEqual(t, dup.Collisions, []linkindex.Collision{{ID: "a", WidgetIDs: []string{"w1", "w3"}}})
	assert.ErrorContains(t, err, `"a"`)
}

func TestBuild_DuplicateIDsInOneWidget(t *testing.T) {
	cols := columns()
	cols[0][0].List = append(cols[0][0].List, model.Link{ID: "a", Label: "Again"}, model.Link{ID: "a", Label: "Third"})
	cols[1][1].List = append(cols[1][1].List, model.Link{ID: "a", Label: "Other"})

	_, err := linkindex.Build(cols)

	var dup *linkindex.DuplicateIDError
	assert.Assert(t, errors.As(err, &dup))
	assert.DeepEqual(t, dup.Collisions, []linkindex.Collision{{ID: "a", WidgetIDs: []string{"w1", "w3"}}})

	cols = columns()
	cols[1][1].List = append(cols[1][1].List, model.Link{ID: "c", Label: "Copy"})
	_, err = linkindex.Build(cols)
	assert.Assert(t, errors.As(err, &dup))
	assert.DeepEqual(t, dup.Collisions, []linkindex.Collision{{ID: "c", WidgetIDs: []string{"w3"}}})
}

func TestBuild_Empty(t *testing.T) {
	idx, err := linkindex.Build(nil)
	assert.NilError(t, err)
	assert.Equal(t, idx.Len(), 0)
	assert.Check(t, is.Len(idx.Entries(), 0))

	var nilIdx *linkindex.Index
	_, ok := nilIdx.Find("a")
	assert.Check(t, !ok)
}
