package libio

// The folder and smart-folder forests share one mutation protocol. Nodes
// carry both an implicit parent (via nesting) and sometimes a "parentId"
// payload field for external queries, but every operation here descends
// only through "children" — parentId, if present in a node's payload, is
// never followed, so a node cannot be reached as its own ancestor by
// accident.

// NodeID returns the node's "id" field, or "" if absent/not a string.
func NodeID(n Node) string {
	id, _ := n["id"].(string)
	return id
}

// children normalizes n["children"] to a []Node regardless of whether it
// arrived via json.Unmarshal (as []any of map[string]any) or was built
// in-process (as []Node directly).
func children(n Node) []Node {
	raw, ok := n["children"]
	if !ok || raw == nil {
		return nil
	}
	switch v := raw.(type) {
	case []Node:
		return v
	case []any:
		out := make([]Node, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, Node(m))
			}
		}
		return out
	default:
		return nil
	}
}

func setChildren(n Node, kids []Node) {
	n["children"] = kids
}

// ListTree returns the forest exactly as stored.
func ListTree(forest []Node) []Node {
	return forest
}

// GetByID performs a depth-first search through nested children and
// returns the first match.
func GetByID(forest []Node, id string) (Node, bool) {
	for _, n := range forest {
		if NodeID(n) == id {
			return n, true
		}
		if found, ok := GetByID(children(n), id); ok {
			return found, true
		}
	}
	return nil, false
}

// Add appends node to the root sequence when parentID is empty, or locates
// the parent by id and appends to (lazily-initialized) parent.children.
// Returns ErrNotFound{"parent", parentID} if parentID is non-empty and no
// such node exists.
func Add(forest []Node, node Node, parentID string) ([]Node, error) {
	if parentID == "" {
		return append(forest, node), nil
	}
	parent, ok := GetByID(forest, parentID)
	if !ok {
		return forest, ErrNotFound{Entity: "parent", ID: parentID}
	}
	setChildren(parent, append(children(parent), node))
	return forest, nil
}

// Update locates the node by id and shallow-merges patch into it. Returns
// ErrNotFound{"node", id} if no such node exists.
func Update(forest []Node, id string, patch map[string]any) error {
	node, ok := GetByID(forest, id)
	if !ok {
		return ErrNotFound{Entity: "node", ID: id}
	}
	for k, v := range patch {
		node[k] = v
	}
	return nil
}

// Remove rebuilds the forest, filtering out the target id at every level
// and recursively through children.
func Remove(forest []Node, id string) []Node {
	out := make([]Node, 0, len(forest))
	for _, n := range forest {
		if NodeID(n) == id {
			continue
		}
		if kids := children(n); kids != nil {
			setChildren(n, Remove(kids, id))
		}
		out = append(out, n)
	}
	return out
}
