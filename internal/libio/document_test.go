package libio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestMetadata(t *testing.T, root string, doc Document) {
	t.Helper()
	paths := NewPaths(root)
	require.NoError(t, writeLibraryMetadata(paths, doc))
}

func TestReadLibraryMetadata_MissingFileErrors(t *testing.T) {
	paths := NewPaths(t.TempDir())
	_, err := ReadLibraryMetadata(paths)
	require.Error(t, err)
}

func TestUpdateLibraryMetadata_CloneIsIndependentOfCaller(t *testing.T) {
	root := t.TempDir()
	writeTestMetadata(t, root, Document{
		Folders: []Node{{"id": "f1", "children": []Node{}}},
	})
	paths := NewPaths(root)

	before, err := ReadLibraryMetadata(paths)
	require.NoError(t, err)

	var capturedDoc *Document
	updated, err := UpdateLibraryMetadata(paths, func(d *Document) {
		capturedDoc = d
		d.Folders[0]["name"] = "renamed"
		d.ApplicationVersion = "9.9.9"
	})
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Folders[0]["name"])

	reread, err := ReadLibraryMetadata(paths)
	require.NoError(t, err)
	require.Equal(t, "renamed", reread.Folders[0]["name"])
	require.Equal(t, "9.9.9", reread.ApplicationVersion)

	// Mutating the pointer fn received must not reach back into a value
	// still held by a caller who read the document separately before the
	// update.
	require.NotNil(t, capturedDoc)
	_, renamed := before.Folders[0]["name"]
	require.False(t, renamed)
	require.Equal(t, "", before.ApplicationVersion)
}

func TestUpdateLibraryMetadata_MissingFilePropagatesReadError(t *testing.T) {
	paths := NewPaths(t.TempDir())
	_, err := UpdateLibraryMetadata(paths, func(d *Document) {
		d.ApplicationVersion = "1.0.0"
	})
	require.Error(t, err)
}

func TestWriteLibraryMetadata_RoundTripsThroughJSON(t *testing.T) {
	root := t.TempDir()
	doc := Document{
		Folders:      []Node{{"id": "a"}},
		SmartFolders: []Node{},
		QuickAccess:  []QuickAccessEntry{{Type: "folder", ID: "a"}},
		TagGroups:    []TagGroup{{ID: "g1", Name: "group", Tags: []string{"x"}}},
		ApplicationVersion: "4.2.1",
	}
	writeTestMetadata(t, root, doc)

	raw, err := os.ReadFile(filepath.Join(root, "metadata.json"))
	require.NoError(t, err)
	require.Contains(t, string(raw), "\"applicationVersion\": \"4.2.1\"")

	reread, err := ReadLibraryMetadata(NewPaths(root))
	require.NoError(t, err)
	require.Equal(t, doc.ApplicationVersion, reread.ApplicationVersion)
	require.Equal(t, doc.QuickAccess, reread.QuickAccess)
}
