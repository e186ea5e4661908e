package libio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleForest() []Node {
	return []Node{
		{
			"id":   "root",
			"name": "Root",
			"children": []Node{
				{"id": "child-a", "name": "A", "parentId": "root"},
				{"id": "child-b", "name": "B", "parentId": "root"},
			},
		},
		{"id": "sibling", "name": "Sibling"},
	}
}

func TestGetByID_FindsNestedNode(t *testing.T) {
	forest := sampleForest()
	node, ok := GetByID(forest, "child-b")
	require.True(t, ok)
	assert.Equal(t, "B", node["name"])
}

func TestGetByID_MissingReturnsFalse(t *testing.T) {
	_, ok := GetByID(sampleForest(), "nope")
	assert.False(t, ok)
}

func TestGetByID_NeverFollowsParentIDPayloadField(t *testing.T) {
	// "real" and "stray" carry parentId as ordinary payload, not structure.
	// GetByID reaches "real" only by descending "children" and hands its
	// payload back untouched; "phantom", named only by stray's parentId
	// value, is not a node and must not be discoverable through it.
	forest := []Node{
		{"id": "decoy", "children": []Node{
			{"id": "real", "parentId": "decoy"},
		}},
		{"id": "stray", "parentId": "phantom"},
	}
	node, ok := GetByID(forest, "real")
	require.True(t, ok)
	assert.Equal(t, "decoy", node["parentId"])

	_, ok = GetByID(forest, "phantom")
	assert.False(t, ok)
}

func TestAdd_ToRootWhenParentIDEmpty(t *testing.T) {
	forest := sampleForest()
	updated, err := Add(forest, Node{"id": "new-root"}, "")
	require.NoError(t, err)
	assert.Len(t, updated, 3)
}

func TestAdd_ToExistingParent(t *testing.T) {
	forest := sampleForest()
	updated, err := Add(forest, Node{"id": "grandchild"}, "child-a")
	require.NoError(t, err)

	node, ok := GetByID(updated, "grandchild")
	require.True(t, ok)
	assert.Equal(t, "grandchild", node["id"])
}

func TestAdd_MissingParentReturnsErrNotFound(t *testing.T) {
	_, err := Add(sampleForest(), Node{"id": "orphan"}, "ghost")
	require.Error(t, err)

	var nf ErrNotFound
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "parent", nf.Entity)
	assert.Equal(t, "ghost", nf.ID)
}

func TestUpdate_MergesPatchIntoExistingNode(t *testing.T) {
	forest := sampleForest()
	err := Update(forest, "child-a", map[string]any{"name": "Renamed", "color": "#fff"})
	require.NoError(t, err)

	node, ok := GetByID(forest, "child-a")
	require.True(t, ok)
	assert.Equal(t, "Renamed", node["name"])
	assert.Equal(t, "#fff", node["color"])
}

func TestUpdate_MissingNodeReturnsErrNotFound(t *testing.T) {
	err := Update(sampleForest(), "ghost", map[string]any{"name": "x"})
	require.Error(t, err)

	var nf ErrNotFound
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "node", nf.Entity)
}

func TestRemove_DeletesAtAnyDepthAndKeepsSiblings(t *testing.T) {
	forest := sampleForest()
	updated := Remove(forest, "child-a")

	_, ok := GetByID(updated, "child-a")
	assert.False(t, ok)

	_, ok = GetByID(updated, "child-b")
	assert.True(t, ok, "sibling of the removed node must survive")

	_, ok = GetByID(updated, "sibling")
	assert.True(t, ok, "unrelated root node must survive")
}

func TestRemove_OfRootNodeDropsItsEntireSubtree(t *testing.T) {
	forest := sampleForest()
	updated := Remove(forest, "root")

	assert.Len(t, updated, 1)
	_, ok := GetByID(updated, "child-a")
	assert.False(t, ok, "removing a node must remove its descendants too")
}
