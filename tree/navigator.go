package tree

// Navigator holds the interactive state over a built tree: the selection
// cursor, an index into the current Flatten output. The expand/collapse
// state lives on the nodes themselves.
//
// Navigator is not safe for concurrent use.
type Navigator struct {
	root   *Node
	cursor int
}

// NewNavigator creates a navigator with the cursor on the root row.
func NewNavigator(root *Node) *Navigator {
	return &Navigator{root: root}
}

// Root returns the tree the navigator operates on.
func (v *Navigator) Root() *Node {
	return v.root
}

// Cursor returns the selected row index.
func (v *Navigator) Cursor() int {
	return v.cursor
}

// Rows returns the current flattened view.
func (v *Navigator) Rows() []Row {
	return Flatten(v.root)
}

// Lines returns the current flattened view with connector metadata.
func (v *Navigator) Lines() []LineRow {
	return FlattenWithTreeLines(v.root)
}

// Selected returns the node under the cursor, or nil for an empty tree.
func (v *Navigator) Selected() *Node {
	rows := v.Rows()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return nil
	}
	return rows[v.cursor].Node
}

// SetCursor moves the cursor to index, clamped to the visible rows.
func (v *Navigator) SetCursor(index int) {
	v.cursor = index
	v.clamp()
}

// MoveUp moves the cursor one row up. At the top it stays put.
func (v *Navigator) MoveUp() {
	if v.cursor > 0 {
		v.cursor--
	}
}

// MoveDown moves the cursor one row down. At the bottom it stays put.
// The bound is taken from the current view, since toggles change its length.
func (v *Navigator) MoveDown() {
	if v.cursor < len(v.Rows())-1 {
		v.cursor++
	}
}

// Toggle flips the expanded flag of the directory whose path equals path.
// Files and unknown paths are ignored. It reports whether a node was toggled.
func (v *Navigator) Toggle(path string) bool {
	if v.root == nil {
		return false
	}
	node := v.root.Find(path)
	if node == nil || !node.IsDir {
		return false
	}
	node.Toggle()
	v.clamp()
	return true
}

// ToggleSelected toggles the node under the cursor.
func (v *Navigator) ToggleSelected() bool {
	node := v.Selected()
	if node == nil {
		return false
	}
	return v.Toggle(node.Path)
}

// ExpandAll expands the directory at path and everything below it.
func (v *Navigator) ExpandAll(path string) bool {
	return v.setSubtree(path, (*Node).ExpandAll)
}

// CollapseAll collapses the directory at path and everything below it.
func (v *Navigator) CollapseAll(path string) bool {
	return v.setSubtree(path, (*Node).CollapseAll)
}

func (v *Navigator) setSubtree(path string, apply func(*Node)) bool {
	if v.root == nil {
		return false
	}
	node := v.root.Find(path)
	if node == nil || !node.IsDir {
		return false
	}
	apply(node)
	v.clamp()
	return true
}

// clamp keeps the cursor inside the visible rows. Collapsing a directory
// above the cursor can shrink the view below the old index.
func (v *Navigator) clamp() {
	n := len(v.Rows())
	if v.cursor > n-1 {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}
