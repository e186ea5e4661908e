// Package snapshot projects host-owned records into plain, serializable
// values. Host records expose their fields only through accessor methods
// (never by structural copy or enumeration); any attempt to shallow-copy or
// range over one silently yields an empty value. Extraction is therefore
// mandatory before any comparison, filtering, or persistence touches a
// record.
package snapshot

import "github.com/zackaryw/eaglecore/pkg/hostapi"

// ItemSnapshot is an immutable projection of a host item.
type ItemSnapshot struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Ext        string   `json:"ext"`
	URL        string   `json:"url"`
	Annotation string   `json:"annotation"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Size       int64    `json:"size"`
	Star       *int     `json:"star,omitempty"`
	ImportedAt int64    `json:"importedAt"`
	ModifiedAt int64    `json:"modifiedAt"`
	Tags       []string `json:"tags"`
	Folders    []string `json:"folders"`
	// IsDeleted mirrors the deletion flag carried on the item metadata
	// record (§ Item metadata record); it defaults to false for snapshots
	// extracted straight from a live host record, which never represents
	// a deleted item.
	IsDeleted bool `json:"isDeleted"`
}

// FolderSnapshot is an immutable projection of a host folder. Children
// holds the host's raw child folder records as-is (shallow reference) —
// ExtractFolder does not recurse into them. A caller that needs a fully
// extracted subtree must call ExtractFolder on each child itself.
type FolderSnapshot struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	IconColor   string              `json:"iconColor"`
	CreatedAt   int64               `json:"createdAt"`
	ParentID    *string             `json:"parentId,omitempty"`
	Children    []hostapi.FolderRecord `json:"-"`
}

// LibraryIdentitySnapshot is the {path, name} pair reported by the host for
// the currently open library.
type LibraryIdentitySnapshot struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// EmptyLibraryIdentity is returned whenever library context is missing or
// inaccessible, instead of an error.
var EmptyLibraryIdentity = LibraryIdentitySnapshot{Path: "", Name: ""}
