package libio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ItemWriteOptions controls which derived indexes Write keeps current.
// Both indexes are updated by default (the zero value); callers about to
// perform several writes in a row (e.g. a bulk import) set the Skip*
// field for whichever index they intend to rebuild once at the end
// instead of paying the read-modify-write cost per item.
type ItemWriteOptions struct {
	SkipMtimeIndex bool
	SkipTagsIndex  bool
}

// ReadItemMetadata reads one item's metadata.json. When the item's ext is
// "url" and the metadata's own url field is empty, the sibling .url file
// (Windows Internet Shortcut format) is parsed and its URL= line used to
// populate the field before returning — the host keeps the canonical URL
// out of metadata.json for this item type.
func ReadItemMetadata(paths Paths, id string) (Node, error) {
	raw, err := os.ReadFile(paths.ItemMetadataFile(id))
	if err != nil {
		return nil, fmt.Errorf("libio: read item metadata %s: %w", id, err)
	}
	var node Node
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("libio: parse item metadata %s: %w", id, err)
	}

	if ext, _ := node["ext"].(string); strings.EqualFold(ext, "url") {
		if url, _ := node["url"].(string); url == "" {
			if parsed, ok := readURLShortcut(paths.ItemURLFile(id)); ok {
				node["url"] = parsed
			}
		}
	}
	return node, nil
}

// WriteItemMetadata writes one item's metadata.json, creating the item
// directory if needed. When data's ext is "url" and data["url"] is
// non-empty, the .url companion file is written to match (reusing an
// existing *.url filename in the item's directory if one is already
// present). Index updates happen by default; options can opt out of
// either one since each costs a separate read-modify-write of its own
// file.
func WriteItemMetadata(paths Paths, id string, data Node, options ItemWriteOptions) error {
	if err := os.MkdirAll(paths.ItemDir(id), 0o755); err != nil {
		return fmt.Errorf("libio: create item dir %s: %w", id, err)
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("libio: marshal item metadata %s: %w", id, err)
	}
	if err := os.WriteFile(paths.ItemMetadataFile(id), raw, 0o644); err != nil {
		return fmt.Errorf("libio: write item metadata %s: %w", id, err)
	}

	if ext, _ := data["ext"].(string); strings.EqualFold(ext, "url") {
		if url, _ := data["url"].(string); url != "" {
			target, err := existingURLShortcut(paths, id)
			if err != nil {
				return err
			}
			if target == "" {
				target = paths.ItemURLFile(id)
			}
			if err := writeURLShortcut(target, url); err != nil {
				return err
			}
		}
	}

	if !options.SkipMtimeIndex {
		if err := touchMtimeIndex(paths, id, data); err != nil {
			return err
		}
	}
	if !options.SkipTagsIndex {
		if err := touchTagsIndex(paths, data); err != nil {
			return err
		}
	}
	return nil
}

// existingURLShortcut looks for an already-present *.url file in the
// item's directory, returning its path. A pre-existing shortcut keeps its
// own filename across rewrites; only an item that has never had one
// falls back to {id}.url. Returns "" (no error) when none exists yet.
func existingURLShortcut(paths Paths, id string) (string, error) {
	entries, err := os.ReadDir(paths.ItemDir(id))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("libio: scan item dir %s: %w", id, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), ".url") {
			return filepath.Join(paths.ItemDir(id), entry.Name()), nil
		}
	}
	return "", nil
}

// ListItemIDs enumerates images/*.info directories and returns their id
// stems. A missing images directory yields an empty, non-error result: a
// freshly-created library has no items yet.
func ListItemIDs(paths Paths) ([]string, error) {
	entries, err := os.ReadDir(paths.ImagesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("libio: list items: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if stem, ok := strings.CutSuffix(entry.Name(), ".info"); ok {
			ids = append(ids, stem)
		}
	}
	return ids, nil
}

// readURLShortcut extracts the URL= value from an [InternetShortcut]
// section. Line endings and surrounding whitespace are tolerated; a
// missing file or missing URL= line both report ok=false rather than an
// error, since an absent companion just means the field stays empty.
func readURLShortcut(path string) (string, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "URL="); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

func writeURLShortcut(path, url string) error {
	content := "[InternetShortcut]\r\nURL=" + url + "\r\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("libio: write url shortcut: %w", err)
	}
	return nil
}
