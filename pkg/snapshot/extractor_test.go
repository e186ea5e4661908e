package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zackaryw/eaglecore/pkg/hostapi"
)

type fakeItem struct {
	id, name, ext, url, annotation string
	width, height                  int
	size                           int64
	star                           int
	starOK                         bool
	importedAt, modifiedAt         int64
	tags, folders                  []string
}

func (f fakeItem) ID() string           { return f.id }
func (f fakeItem) Name() string         { return f.name }
func (f fakeItem) Ext() string          { return f.ext }
func (f fakeItem) URL() string          { return f.url }
func (f fakeItem) Annotation() string   { return f.annotation }
func (f fakeItem) Width() int           { return f.width }
func (f fakeItem) Height() int          { return f.height }
func (f fakeItem) Size() int64          { return f.size }
func (f fakeItem) Star() (int, bool)    { return f.star, f.starOK }
func (f fakeItem) ImportedAt() int64    { return f.importedAt }
func (f fakeItem) ModifiedAt() int64    { return f.modifiedAt }
func (f fakeItem) Tags() []string       { return f.tags }
func (f fakeItem) Folders() []string    { return f.folders }

type fakeFolder struct {
	id, name, desc, icon, color string
	createdAt                   int64
	parentID                    string
	hasParent                   bool
	children                    []hostapi.FolderRecord
}

func (f fakeFolder) ID() string          { return f.id }
func (f fakeFolder) Name() string        { return f.name }
func (f fakeFolder) Description() string { return f.desc }
func (f fakeFolder) Icon() string        { return f.icon }
func (f fakeFolder) IconColor() string   { return f.color }
func (f fakeFolder) CreatedAt() int64    { return f.createdAt }
func (f fakeFolder) ParentID() (string, bool) {
	return f.parentID, f.hasParent
}
func (f fakeFolder) Children() []hostapi.FolderRecord { return f.children }

func TestExtractItem_ProjectsEveryField(t *testing.T) {
	rec := fakeItem{
		id: "a", name: "n", ext: "png", url: "u", annotation: "note",
		width: 10, height: 20, size: 1234,
		star: 4, starOK: true,
		importedAt: 100, modifiedAt: 200,
		tags: []string{"x", "y"}, folders: []string{"f1"},
	}
	snap := ExtractItem(rec)

	require.NotNil(t, snap.Star)
	assert.Equal(t, 4, *snap.Star)
	assert.Equal(t, "a", snap.ID)
	assert.Equal(t, []string{"x", "y"}, snap.Tags)
	assert.Equal(t, []string{"f1"}, snap.Folders)
	assert.Equal(t, int64(1234), snap.Size)
}

func TestExtractItem_AbsentStarStaysNil(t *testing.T) {
	rec := fakeItem{id: "b", starOK: false}
	snap := ExtractItem(rec)
	assert.Nil(t, snap.Star)
}

func TestExtractItem_NilSequencesBecomeEmpty(t *testing.T) {
	rec := fakeItem{id: "c"}
	snap := ExtractItem(rec)
	assert.Equal(t, []string{}, snap.Tags)
	assert.Equal(t, []string{}, snap.Folders)
}

func TestExtractItem_Idempotent(t *testing.T) {
	rec := fakeItem{id: "a", tags: []string{"x"}, folders: []string{"f"}, star: 3, starOK: true}
	first := ExtractItem(rec)
	second := ExtractItem(rec)
	assert.Equal(t, first, second)
}

func TestExtractFolder_ShallowChildren(t *testing.T) {
	child := fakeFolder{id: "child"}
	parent := fakeFolder{id: "parent", parentID: "root", hasParent: true, children: []hostapi.FolderRecord{child}}

	snap := ExtractFolder(parent)
	require.NotNil(t, snap.ParentID)
	assert.Equal(t, "root", *snap.ParentID)
	require.Len(t, snap.Children, 1)
	assert.Equal(t, "child", snap.Children[0].ID())
}

func TestExtractFolder_NoParentLeavesNil(t *testing.T) {
	snap := ExtractFolder(fakeFolder{id: "root"})
	assert.Nil(t, snap.ParentID)
}

func TestExtractLibraryIdentity_MissingYieldsEmpty(t *testing.T) {
	assert.Equal(t, EmptyLibraryIdentity, ExtractLibraryIdentity(nil))
}
