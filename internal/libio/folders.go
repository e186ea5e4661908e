package libio

// Folders and SmartFolders both expose the shared nested-forest mutation
// protocol (spec.md §4.C) over their respective slot in the library
// document. They are thin, distinct types rather than one parameterized
// type with a string discriminator so that callers can't accidentally
// point a Folders operation at the smart-folder forest.

type forestField func(*Document) *[]Node

func folderField(d *Document) *[]Node      { return &d.Folders }
func smartFolderField(d *Document) *[]Node { return &d.SmartFolders }

func readForest(paths Paths, field forestField) ([]Node, error) {
	doc, err := ReadLibraryMetadata(paths)
	if err != nil {
		return nil, err
	}
	return *field(&doc), nil
}

func mutateForest(paths Paths, field forestField, mutate func([]Node) ([]Node, error)) (Document, error) {
	var mutateErr error
	doc, err := UpdateLibraryMetadata(paths, func(d *Document) {
		ptr := field(d)
		updated, mErr := mutate(*ptr)
		if mErr != nil {
			mutateErr = mErr
			return
		}
		*ptr = updated
	})
	if err != nil {
		return Document{}, err
	}
	if mutateErr != nil {
		return Document{}, mutateErr
	}
	return doc, nil
}

// Folders operates on the library document's folder forest.
type Folders struct{ paths Paths }

func NewFolders(paths Paths) Folders { return Folders{paths: paths} }

func (f Folders) ListTree() ([]Node, error) { return readForest(f.paths, folderField) }

func (f Folders) GetByID(id string) (Node, bool, error) {
	forest, err := readForest(f.paths, folderField)
	if err != nil {
		return nil, false, err
	}
	node, ok := GetByID(forest, id)
	return node, ok, nil
}

func (f Folders) Add(node Node, parentID string) (Document, error) {
	return mutateForest(f.paths, folderField, func(forest []Node) ([]Node, error) {
		return Add(forest, node, parentID)
	})
}

func (f Folders) Update(id string, patch map[string]any) (Document, error) {
	return mutateForest(f.paths, folderField, func(forest []Node) ([]Node, error) {
		return forest, Update(forest, id, patch)
	})
}

func (f Folders) Remove(id string) (Document, error) {
	return mutateForest(f.paths, folderField, func(forest []Node) ([]Node, error) {
		return Remove(forest, id), nil
	})
}

// SmartFolders operates on the library document's smart-folder forest,
// identically to Folders.
type SmartFolders struct{ paths Paths }

func NewSmartFolders(paths Paths) SmartFolders { return SmartFolders{paths: paths} }

func (f SmartFolders) ListTree() ([]Node, error) { return readForest(f.paths, smartFolderField) }

func (f SmartFolders) GetByID(id string) (Node, bool, error) {
	forest, err := readForest(f.paths, smartFolderField)
	if err != nil {
		return nil, false, err
	}
	node, ok := GetByID(forest, id)
	return node, ok, nil
}

func (f SmartFolders) Add(node Node, parentID string) (Document, error) {
	return mutateForest(f.paths, smartFolderField, func(forest []Node) ([]Node, error) {
		return Add(forest, node, parentID)
	})
}

func (f SmartFolders) Update(id string, patch map[string]any) (Document, error) {
	return mutateForest(f.paths, smartFolderField, func(forest []Node) ([]Node, error) {
		return forest, Update(forest, id, patch)
	})
}

func (f SmartFolders) Remove(id string) (Document, error) {
	return mutateForest(f.paths, smartFolderField, func(forest []Node) ([]Node, error) {
		return Remove(forest, id), nil
	})
}
