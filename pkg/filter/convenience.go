package filter

import "time"

// ByTags builds a filter matching items carrying any of the given tags.
func ByTags(tags ...string) ItemFilter {
	values := make([]any, len(tags))
	for i, t := range tags {
		values[i] = t
	}
	return NewBuilder().Where(PropertyTags).IncludesAny(values...).Build()
}

// ByFolders builds a filter matching items filed under any of the given
// folder ids.
func ByFolders(folderIDs ...string) ItemFilter {
	values := make([]any, len(folderIDs))
	for i, id := range folderIDs {
		values[i] = id
	}
	return NewBuilder().Where(PropertyFolders).IncludesAny(values...).Build()
}

// ByNameMatches builds a filter matching items whose name matches the given
// (case-insensitive) regex pattern.
func ByNameMatches(pattern string) ItemFilter {
	return NewBuilder().Where(PropertyName).Matches(pattern).Build()
}

// ByExtension builds a filter matching items with the given extension. A
// leading "." is stripped if present, since extensions are stored bare.
func ByExtension(ext string) ItemFilter {
	if len(ext) > 0 && ext[0] == '.' {
		ext = ext[1:]
	}
	return NewBuilder().Where(PropertyExt).Is(ext).Build()
}

// ByMinRating builds a filter matching items whose star rating is at least
// min.
func ByMinRating(min int) ItemFilter {
	return NewBuilder().Where(PropertyStar).GTE(min).Build()
}

// Untagged builds a filter matching items with no tags.
func Untagged() ItemFilter {
	return NewBuilder().Where(PropertyTags).IsEmpty().Build()
}

// Unfiled builds a filter matching items filed in no folder.
func Unfiled() ItemFilter {
	return NewBuilder().Where(PropertyFolders).IsEmpty().Build()
}

// ByImportDateRange builds a filter matching items imported within [from,
// to] inclusive. from/to accept either an epoch-ms int64 or a time.Time;
// both are normalized to epoch-ms before the underlying Between rule is
// built.
func ByImportDateRange(from, to any) ItemFilter {
	return NewBuilder().Where(PropertyImportedAt).Between(toEpochMs(from), toEpochMs(to)).Build()
}

func toEpochMs(v any) int64 {
	switch t := v.(type) {
	case time.Time:
		return t.UnixMilli()
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	default:
		return 0
	}
}

// And combines multiple filters by flattening their conditions sequences
// and setting the top-level match to ALL.
func And(filters ...ItemFilter) ItemFilter {
	return combine(MatchAll, filters)
}

// Or combines multiple filters by flattening their conditions sequences
// and setting the top-level match to ANY.
func Or(filters ...ItemFilter) ItemFilter {
	return combine(MatchAny, filters)
}

func combine(mode MatchMode, filters []ItemFilter) ItemFilter {
	out := ItemFilter{Match: mode}
	for _, f := range filters {
		out.Conditions = append(out.Conditions, f.Conditions...)
	}
	return out
}
