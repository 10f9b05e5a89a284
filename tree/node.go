package tree

import (
	"slices"
	"strings"

	"github.com/lexandro/heatree/metrics"
)

// Node is one filesystem entry of the heatmap tree.
// A node owns its children; there are no parent pointers. After the scanner
// returns, only Expanded changes.
type Node struct {
	Name     string // Base name
	Path     string // Absolute path, unique within a tree
	IsDir    bool
	Children []*Node
	Metrics  metrics.Metrics
	Language string // Detected language, files only
	Expanded bool   // Only meaningful for directories
}

// NewDir creates an empty, collapsed directory node.
func NewDir(name, path string) *Node {
	return &Node{Name: name, Path: path, IsDir: true}
}

// NewFile creates a file node with the given metrics.
func NewFile(name, path string, m metrics.Metrics) *Node {
	return &Node{Name: name, Path: path, Metrics: m}
}

// AddChild appends child to n's children. Call SortChildren once the
// directory is complete.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Aggregate computes a directory's metrics from its already aggregated children.
//
// LineCount is the sum over all children. ChangeRate is the plain mean over the
// countable children: files, and directories with a positive LineCount.
// Directories without lines contribute to neither the sum nor the count.
func (n *Node) Aggregate() {
	if !n.IsDir {
		return
	}

	var lines, counted int
	var rateSum float64
	for _, child := range n.Children {
		lines += child.Metrics.LineCount
		if !child.IsDir || child.Metrics.LineCount > 0 {
			rateSum += child.Metrics.ChangeRate
			counted++
		}
	}

	n.Metrics.LineCount = lines
	n.Metrics.ChangeRate = 0
	if counted > 0 {
		n.Metrics.ChangeRate = rateSum / float64(counted)
	}
}

// AggregateAll aggregates every directory under n, children before parents.
func (n *Node) AggregateAll() {
	if !n.IsDir {
		return
	}
	for _, child := range n.Children {
		child.AggregateAll()
	}
	n.Aggregate()
}

// SortChildren orders children directories first, then by name, and recurses.
func (n *Node) SortChildren() {
	slices.SortStableFunc(n.Children, compareNodes)
	for _, child := range n.Children {
		if child.IsDir {
			child.SortChildren()
		}
	}
}

func compareNodes(a, b *Node) int {
	if a.IsDir != b.IsDir {
		if a.IsDir {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Name, b.Name)
}

// Find returns the first node in pre-order whose Path equals path, or nil.
func (n *Node) Find(path string) *Node {
	if n.Path == path {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(path); found != nil {
			return found
		}
	}
	return nil
}

// Toggle flips Expanded on directories. Files are left untouched.
func (n *Node) Toggle() {
	if n.IsDir {
		n.Expanded = !n.Expanded
	}
}

// ExpandAll expands n and every directory below it.
func (n *Node) ExpandAll() {
	n.setExpandedRecursive(true)
}

// CollapseAll collapses n and every directory below it.
func (n *Node) CollapseAll() {
	n.setExpandedRecursive(false)
}

func (n *Node) setExpandedRecursive(expanded bool) {
	if !n.IsDir {
		return
	}
	n.Expanded = expanded
	for _, child := range n.Children {
		child.setExpandedRecursive(expanded)
	}
}

// Walk visits n and all descendants in pre-order, regardless of Expanded.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}
