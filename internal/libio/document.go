package libio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/copystructure"
)

// Node is a single forest node: the host's on-disk shape is not a fixed Go
// struct (folder/smart-folder nodes carry arbitrary fields alongside
// "id"/"children"), so it is kept as a generic JSON object. "id" and
// "children" are the only keys this package interprets; every other key is
// opaque payload that round-trips untouched.
type Node map[string]any

// QuickAccessEntry is a flat (type, id) reference.
type QuickAccessEntry struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// TagGroup is a flat, non-nested tag grouping.
type TagGroup struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Color string   `json:"color,omitempty"`
	Tags  []string `json:"tags"`
}

// Document is the single JSON object describing one library: folder
// forest, smart-folder forest, quick-access list, tag-group list, a
// modification timestamp, and an application version.
type Document struct {
	Folders        []Node             `json:"folders"`
	SmartFolders   []Node             `json:"smartFolders"`
	QuickAccess    []QuickAccessEntry `json:"quickAccess"`
	TagGroups      []TagGroup         `json:"tagGroups"`
	ModificationTime int64            `json:"modificationTime"`
	ApplicationVersion string         `json:"applicationVersion"`
}

// ReadLibraryMetadata parses the library document. A missing or malformed
// file surfaces its IO/parse error to the caller — the core never
// fabricates an empty document here, unlike the config store's
// missing-file handling.
func ReadLibraryMetadata(paths Paths) (Document, error) {
	raw, err := os.ReadFile(paths.MetadataFile())
	if err != nil {
		return Document{}, fmt.Errorf("libio: read library metadata: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("libio: parse library metadata: %w", err)
	}
	return doc, nil
}

// writeLibraryMetadata writes doc back with 2-space indent, matching the
// host's own JSON.stringify(x, null, 2) formatting.
func writeLibraryMetadata(paths Paths, doc Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("libio: marshal library metadata: %w", err)
	}
	if err := os.WriteFile(paths.MetadataFile(), raw, 0o644); err != nil {
		return fmt.Errorf("libio: write library metadata: %w", err)
	}
	return nil
}

// UpdateLibraryMetadata reads the current document, deep-clones it, applies
// fn to the clone, writes the clone back, and returns the new document.
// The clone step uses copystructure rather than a hand-rolled walker
// because Document.Folders/SmartFolders are generic JSON trees
// (map[string]any), not a fixed struct shape a manual copier could
// special-case. This is the core's entire concession to the absence of
// cross-process locking: it narrows the read-modify-write window, it does
// not close it.
func UpdateLibraryMetadata(paths Paths, fn func(*Document)) (Document, error) {
	current, err := ReadLibraryMetadata(paths)
	if err != nil {
		return Document{}, err
	}

	clonedAny, err := copystructure.Copy(current)
	if err != nil {
		return Document{}, fmt.Errorf("libio: clone library metadata: %w", err)
	}
	cloned := clonedAny.(Document)

	fn(&cloned)

	if err := writeLibraryMetadata(paths, cloned); err != nil {
		return Document{}, err
	}
	return cloned, nil
}
