package snapshot

import "github.com/zackaryw/eaglecore/pkg/hostapi"

// ExtractItem projects a live host item record into a plain snapshot.
// Every field is named explicitly; no reflective or enumeration-based copy
// is permitted, because the host's ItemRecord hides its data behind
// accessors that a structural copy would silently skip.
//
// Extraction assumes record is live; an accessor panicking or the record
// otherwise being invalid is the caller's problem, not swallowed here.
func ExtractItem(record hostapi.ItemRecord) ItemSnapshot {
	snap := ItemSnapshot{
		ID:         record.ID(),
		Name:       record.Name(),
		Ext:        record.Ext(),
		URL:        record.URL(),
		Annotation: record.Annotation(),
		Width:      record.Width(),
		Height:     record.Height(),
		Size:       record.Size(),
		ImportedAt: record.ImportedAt(),
		ModifiedAt: record.ModifiedAt(),
		Tags:       append([]string(nil), record.Tags()...),
		Folders:    append([]string(nil), record.Folders()...),
	}
	if rating, ok := record.Star(); ok {
		r := rating
		snap.Star = &r
	}
	if snap.Tags == nil {
		snap.Tags = []string{}
	}
	if snap.Folders == nil {
		snap.Folders = []string{}
	}
	return snap
}

// ExtractFolder projects a live host folder record into a plain snapshot.
// The Children reference is preserved shallowly, as the host record
// returns it — ExtractFolder never recurses into children itself.
func ExtractFolder(record hostapi.FolderRecord) FolderSnapshot {
	snap := FolderSnapshot{
		ID:          record.ID(),
		Name:        record.Name(),
		Description: record.Description(),
		Icon:        record.Icon(),
		IconColor:   record.IconColor(),
		CreatedAt:   record.CreatedAt(),
		Children:    record.Children(),
	}
	if id, ok := record.ParentID(); ok {
		p := id
		snap.ParentID = &p
	}
	return snap
}

// ExtractLibraryIdentity projects the host's current library identity.
// Missing or inaccessible library context yields EmptyLibraryIdentity
// rather than an error.
func ExtractLibraryIdentity(h hostapi.Host) LibraryIdentitySnapshot {
	if h == nil {
		return EmptyLibraryIdentity
	}
	id, err := h.LibraryIdentity()
	if err != nil {
		return EmptyLibraryIdentity
	}
	return LibraryIdentitySnapshot{Path: id.Path, Name: id.Name}
}
