package tree

// Row is one visible line of the flattened tree.
type Row struct {
	Depth int
	Node  *Node
}

// LineRow is a Row carrying what a renderer needs to draw tree connectors.
type LineRow struct {
	Depth  int
	Node   *Node
	IsLast bool // Node is the final child of its parent (the root counts as last)
	// AncestorContinues[i] reports whether the ancestor at depth i has more
	// siblings after it, i.e. whether a vertical bar runs through column i.
	// len(AncestorContinues) == Depth.
	AncestorContinues []bool
}

// ExpandFunc decides whether the children of a directory are visited.
type ExpandFunc func(node *Node, depth int) bool

// ByFlag expands directories whose Expanded flag is set.
func ByFlag(node *Node, _ int) bool {
	return node.Expanded
}

// Flatten lists the rows visible under the current Expanded flags, root first.
func Flatten(root *Node) []Row {
	return FlattenFunc(root, ByFlag)
}

// FlattenFunc lists rows in pre-order, descending into directories for which
// expand returns true. Rows point into the live tree.
func FlattenFunc(root *Node, expand ExpandFunc) []Row {
	if root == nil {
		return nil
	}
	var rows []Row
	flattenRows(root, 0, expand, &rows)
	return rows
}

func flattenRows(node *Node, depth int, expand ExpandFunc, rows *[]Row) {
	*rows = append(*rows, Row{Depth: depth, Node: node})
	if !node.IsDir || !expand(node, depth) {
		return
	}
	for _, child := range node.Children {
		flattenRows(child, depth+1, expand, rows)
	}
}

// FlattenWithTreeLines is Flatten plus connector metadata for every row.
func FlattenWithTreeLines(root *Node) []LineRow {
	return FlattenWithTreeLinesFunc(root, ByFlag)
}

// FlattenWithTreeLinesFunc is FlattenFunc plus connector metadata for every row.
func FlattenWithTreeLinesFunc(root *Node, expand ExpandFunc) []LineRow {
	if root == nil {
		return nil
	}
	var rows []LineRow
	flattenLines(root, 0, true, nil, expand, &rows)
	return rows
}

func flattenLines(node *Node, depth int, isLast bool, ancestors []bool, expand ExpandFunc, rows *[]LineRow) {
	*rows = append(*rows, LineRow{
		Depth:             depth,
		Node:              node,
		IsLast:            isLast,
		AncestorContinues: ancestors,
	})
	if !node.IsDir || !expand(node, depth) {
		return
	}

	// Siblings share this slice; it is never appended to in place.
	childAncestors := make([]bool, len(ancestors)+1)
	copy(childAncestors, ancestors)
	childAncestors[len(ancestors)] = !isLast

	last := len(node.Children) - 1
	for i, child := range node.Children {
		flattenLines(child, depth+1, i == last, childAncestors, expand, rows)
	}
}
