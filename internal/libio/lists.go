package libio

// TagGroups and QuickAccess expose the library document's two flat lists.
// Unlike Folders/SmartFolders these have no nesting, so each operation is
// a plain slice edit under UpdateLibraryMetadata rather than a forest
// traversal.
type TagGroups struct{ paths Paths }

func NewTagGroups(paths Paths) TagGroups { return TagGroups{paths: paths} }

func (t TagGroups) List() ([]TagGroup, error) {
	doc, err := ReadLibraryMetadata(t.paths)
	if err != nil {
		return nil, err
	}
	return doc.TagGroups, nil
}

func (t TagGroups) Add(group TagGroup) (Document, error) {
	return UpdateLibraryMetadata(t.paths, func(d *Document) {
		d.TagGroups = append(d.TagGroups, group)
	})
}

func (t TagGroups) Update(id string, patch func(*TagGroup)) (Document, error) {
	var found bool
	doc, err := UpdateLibraryMetadata(t.paths, func(d *Document) {
		for i := range d.TagGroups {
			if d.TagGroups[i].ID == id {
				patch(&d.TagGroups[i])
				found = true
				return
			}
		}
	})
	if err != nil {
		return Document{}, err
	}
	if !found {
		return Document{}, ErrNotFound{Entity: "tagGroup", ID: id}
	}
	return doc, nil
}

func (t TagGroups) Remove(id string) (Document, error) {
	return UpdateLibraryMetadata(t.paths, func(d *Document) {
		out := d.TagGroups[:0]
		for _, g := range d.TagGroups {
			if g.ID != id {
				out = append(out, g)
			}
		}
		d.TagGroups = out
	})
}

// QuickAccess exposes the library document's quick-access reference list.
type QuickAccess struct{ paths Paths }

func NewQuickAccess(paths Paths) QuickAccess { return QuickAccess{paths: paths} }

func (q QuickAccess) List() ([]QuickAccessEntry, error) {
	doc, err := ReadLibraryMetadata(q.paths)
	if err != nil {
		return nil, err
	}
	return doc.QuickAccess, nil
}

func (q QuickAccess) Add(entry QuickAccessEntry) (Document, error) {
	return UpdateLibraryMetadata(q.paths, func(d *Document) {
		for _, e := range d.QuickAccess {
			if e.Type == entry.Type && e.ID == entry.ID {
				return
			}
		}
		d.QuickAccess = append(d.QuickAccess, entry)
	})
}

func (q QuickAccess) Remove(entryType, id string) (Document, error) {
	return UpdateLibraryMetadata(q.paths, func(d *Document) {
		out := d.QuickAccess[:0]
		for _, e := range d.QuickAccess {
			if e.Type != entryType || e.ID != id {
				out = append(out, e)
			}
		}
		d.QuickAccess = out
	})
}
