package libio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadItemMetadata_RoundTrips(t *testing.T) {
	paths := NewPaths(t.TempDir())
	data := Node{"id": "i1", "name": "photo", "ext": "png", "tags": []any{"cat"}}

	require.NoError(t, WriteItemMetadata(paths, "i1", data, ItemWriteOptions{}))

	got, err := ReadItemMetadata(paths, "i1")
	require.NoError(t, err)
	assert.Equal(t, "photo", got["name"])
}

func TestWriteItemMetadata_ZeroValueOptionsUpdatesBothIndexesByDefault(t *testing.T) {
	paths := NewPaths(t.TempDir())
	data := Node{
		"id":           "i1b",
		"ext":          "png",
		"tags":         []any{"gamma"},
		"star":         float64(2),
		"lastModified": float64(1700000001000),
	}

	require.NoError(t, WriteItemMetadata(paths, "i1b", data, ItemWriteOptions{}))

	mtime, err := ReadMtimeIndex(paths)
	require.NoError(t, err)
	assert.EqualValues(t, 1700000001000, mtime["i1b"])

	tags, err := ReadTagsIndex(paths)
	require.NoError(t, err)
	assert.Contains(t, tags.HistoryTags, "gamma")
}

func TestWriteItemMetadata_SkipOptionsLeaveIndexesUntouched(t *testing.T) {
	paths := NewPaths(t.TempDir())
	data := Node{"id": "i1c", "ext": "png", "tags": []any{"delta"}, "star": float64(1)}

	require.NoError(t, WriteItemMetadata(paths, "i1c", data, ItemWriteOptions{
		SkipMtimeIndex: true,
		SkipTagsIndex:  true,
	}))

	mtime, err := ReadMtimeIndex(paths)
	require.NoError(t, err)
	_, ok := mtime["i1c"]
	assert.False(t, ok)

	tags, err := ReadTagsIndex(paths)
	require.NoError(t, err)
	assert.NotContains(t, tags.HistoryTags, "delta")
}

func TestWriteItemMetadata_URLExtWritesShortcutCompanion(t *testing.T) {
	paths := NewPaths(t.TempDir())
	data := Node{"id": "i2", "ext": "url", "url": "https://example.com/page"}

	require.NoError(t, WriteItemMetadata(paths, "i2", data, ItemWriteOptions{}))

	raw, err := os.ReadFile(paths.ItemURLFile("i2"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "URL=https://example.com/page")
}

func TestWriteItemMetadata_URLExtReusesPreExistingDifferentlyNamedShortcut(t *testing.T) {
	paths := NewPaths(t.TempDir())
	require.NoError(t, os.MkdirAll(paths.ItemDir("i2b"), 0o755))

	legacyPath := filepath.Join(paths.ItemDir("i2b"), "original-name.url")
	require.NoError(t, os.WriteFile(legacyPath, []byte("[InternetShortcut]\r\nURL=https://stale.example/\r\n"), 0o644))

	data := Node{"id": "i2b", "ext": "url", "url": "https://example.com/updated"}
	require.NoError(t, WriteItemMetadata(paths, "i2b", data, ItemWriteOptions{}))

	raw, err := os.ReadFile(legacyPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "URL=https://example.com/updated")

	_, err = os.Stat(paths.ItemURLFile("i2b"))
	assert.True(t, os.IsNotExist(err), "must not also create {id}.url alongside the pre-existing shortcut")
}

func TestReadItemMetadata_URLExtParsesShortcutWhenFieldEmpty(t *testing.T) {
	paths := NewPaths(t.TempDir())
	require.NoError(t, os.MkdirAll(paths.ItemDir("i3"), 0o755))

	metaRaw := `{"id":"i3","ext":"url","url":""}`
	require.NoError(t, os.WriteFile(paths.ItemMetadataFile("i3"), []byte(metaRaw), 0o644))
	shortcut := "[InternetShortcut]\r\nURL=https://example.org/x\r\n"
	require.NoError(t, os.WriteFile(paths.ItemURLFile("i3"), []byte(shortcut), 0o644))

	got, err := ReadItemMetadata(paths, "i3")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/x", got["url"])
}

func TestWriteItemMetadata_DefaultOptionsUpdateAllAndStarredTags(t *testing.T) {
	paths := NewPaths(t.TempDir())
	data := Node{
		"id":           "i4",
		"ext":          "png",
		"tags":         []any{"alpha", "beta"},
		"star":         float64(5),
		"lastModified": float64(1700000000000),
	}

	require.NoError(t, WriteItemMetadata(paths, "i4", data, ItemWriteOptions{}))

	mtime, err := ReadMtimeIndex(paths)
	require.NoError(t, err)
	assert.EqualValues(t, 1700000000000, mtime["i4"])
	assert.EqualValues(t, 1700000000000, mtime["all"])

	tags, err := ReadTagsIndex(paths)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, tags.HistoryTags)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, tags.StarredTags)
}

func TestListItemIDs_EnumeratesInfoDirectories(t *testing.T) {
	root := t.TempDir()
	paths := NewPaths(root)
	require.NoError(t, os.MkdirAll(paths.ItemDir("one"), 0o755))
	require.NoError(t, os.MkdirAll(paths.ItemDir("two"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(paths.ImagesDir(), "stray.txt"), []byte("x"), 0o644))

	ids, err := ListItemIDs(paths)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one", "two"}, ids)
}

func TestListItemIDs_MissingImagesDirYieldsEmptyNotError(t *testing.T) {
	ids, err := ListItemIDs(NewPaths(t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, ids)
}
