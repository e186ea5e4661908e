package libio

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	trie "github.com/derekparker/trie/v3"
)

// MtimeIndex maps item id to last-touched epoch milliseconds, plus one
// synthetic "all" key holding the maximum of every entry. A reader can
// therefore answer "has anything changed since t" by reading a single key
// instead of scanning every item.
type MtimeIndex map[string]int64

func ReadMtimeIndex(paths Paths) (MtimeIndex, error) {
	raw, err := os.ReadFile(paths.MtimeFile())
	if err != nil {
		if os.IsNotExist(err) {
			return MtimeIndex{}, nil
		}
		return nil, fmt.Errorf("libio: read mtime index: %w", err)
	}
	var idx MtimeIndex
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("libio: parse mtime index: %w", err)
	}
	return idx, nil
}

func writeMtimeIndex(paths Paths, idx MtimeIndex) error {
	raw, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("libio: marshal mtime index: %w", err)
	}
	if err := os.WriteFile(paths.MtimeFile(), raw, 0o644); err != nil {
		return fmt.Errorf("libio: write mtime index: %w", err)
	}
	return nil
}

// touchMtimeIndex sets idx[id] to data's own lastModified/modificationTime
// field if present, falling back to the current time, then re-raises
// "all" to the new maximum.
func touchMtimeIndex(paths Paths, id string, data Node) error {
	idx, err := ReadMtimeIndex(paths)
	if err != nil {
		return err
	}

	ts := itemTimestamp(data)
	idx[id] = ts
	if ts > idx["all"] {
		idx["all"] = ts
	}
	return writeMtimeIndex(paths, idx)
}

func itemTimestamp(data Node) int64 {
	if v, ok := toInt64(data["lastModified"]); ok {
		return v
	}
	if v, ok := toInt64(data["modificationTime"]); ok {
		return v
	}
	return time.Now().UnixMilli()
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

// TagsIndex separates every tag ever seen (historyTags) from tags that
// have appeared on at least one starred/rated item (starredTags) — both
// are sets, stored as slices in first-insertion order.
type TagsIndex struct {
	HistoryTags []string `json:"historyTags"`
	StarredTags []string `json:"starredTags"`
}

func ReadTagsIndex(paths Paths) (TagsIndex, error) {
	raw, err := os.ReadFile(paths.TagsFile())
	if err != nil {
		if os.IsNotExist(err) {
			return TagsIndex{}, nil
		}
		return TagsIndex{}, fmt.Errorf("libio: read tags index: %w", err)
	}
	var idx TagsIndex
	if err := json.Unmarshal(raw, &idx); err != nil {
		return TagsIndex{}, fmt.Errorf("libio: parse tags index: %w", err)
	}
	return idx, nil
}

func writeTagsIndex(paths Paths, idx TagsIndex) error {
	raw, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("libio: marshal tags index: %w", err)
	}
	if err := os.WriteFile(paths.TagsFile(), raw, 0o644); err != nil {
		return fmt.Errorf("libio: write tags index: %w", err)
	}
	return nil
}

// touchTagsIndex folds data's tags into historyTags, and additionally
// into starredTags when data carries a star/rating field.
func touchTagsIndex(paths Paths, data Node) error {
	idx, err := ReadTagsIndex(paths)
	if err != nil {
		return err
	}

	tags := nodeStringSlice(data["tags"])
	idx.HistoryTags = unionInsert(idx.HistoryTags, tags)
	if _, rated := data["star"]; rated {
		idx.StarredTags = unionInsert(idx.StarredTags, tags)
	}
	return writeTagsIndex(paths, idx)
}

func nodeStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func unionInsert(set []string, additions []string) []string {
	present := make(map[string]bool, len(set))
	for _, s := range set {
		present[s] = true
	}
	for _, a := range additions {
		if !present[a] {
			set = append(set, a)
			present[a] = true
		}
	}
	return set
}

// PrefixSearch returns every history tag with the given prefix. The trie
// is rebuilt from the current tag set on each call rather than kept
// resident, so every call costs one pass over HistoryTags.
func (idx TagsIndex) PrefixSearch(prefix string) []string {
	t := trie.New()
	for _, tag := range idx.HistoryTags {
		t.Add(tag, nil)
	}
	return t.PrefixSearch(prefix)
}
