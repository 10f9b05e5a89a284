// Package index provides path lookups and rankings over a scanned tree.
package index

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/lexandro/heatree/tree"
)

// DefaultMaxResults caps glob and hotspot results when the caller passes 0.
const DefaultMaxResults = 50

// Entry is one indexed node together with its root-relative slash path.
type Entry struct {
	RelativePath string
	Node         *tree.Node
}

// SortKey selects the metric used to rank hotspots.
type SortKey string

const (
	ByChangeRate SortKey = "changeRate"
	ByLines      SortKey = "lines"
)

// ParseSortKey maps a user supplied name to a SortKey. The empty string
// selects ByChangeRate.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "", ByChangeRate:
		return ByChangeRate, nil
	case ByLines:
		return ByLines, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want %s or %s)", s, ByChangeRate, ByLines)
}

// LanguageStat is the per-language share of a tree.
type LanguageStat struct {
	Language string
	Files    int
	Lines    int
}

// Index is a read-only view of a tree keyed by relative path. It does not
// observe later changes to the tree's structure.
type Index struct {
	root        *tree.Node
	nodes       map[string]*tree.Node // key: relative path (forward slashes), "" for the root
	sortedPaths []string              // files only, byte-wise order
	dirCount    int
}

// Build indexes every node under root.
func Build(root *tree.Node) *Index {
	ix := &Index{
		root:  root,
		nodes: make(map[string]*tree.Node),
	}
	if root == nil {
		return ix
	}

	root.Walk(func(n *tree.Node, _ int) bool {
		rel := relativeTo(root.Path, n.Path)
		ix.nodes[rel] = n
		if n.IsDir {
			ix.dirCount++
		} else {
			ix.sortedPaths = append(ix.sortedPaths, rel)
		}
		return true
	})
	sort.Strings(ix.sortedPaths)
	return ix
}

func relativeTo(rootPath, path string) string {
	rel, err := filepath.Rel(rootPath, path)
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}

// Root returns the indexed tree's root.
func (ix *Index) Root() *tree.Node {
	return ix.root
}

// Get returns the node at a relative path, or nil. "", "." and "/" name the
// root.
func (ix *Index) Get(relativePath string) *tree.Node {
	return ix.nodes[normalize(relativePath)]
}

func normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.Trim(p, "/")
	if p == "." {
		return ""
	}
	return strings.TrimPrefix(p, "./")
}

// RelativePath returns n's path relative to the root.
func (ix *Index) RelativePath(n *tree.Node) string {
	if ix.root == nil || n == nil {
		return ""
	}
	return relativeTo(ix.root.Path, n.Path)
}

// FileCount returns the number of indexed files.
func (ix *Index) FileCount() int {
	return len(ix.sortedPaths)
}

// DirCount returns the number of indexed directories, the root included.
func (ix *Index) DirCount() int {
	return ix.dirCount
}

// SearchByGlob returns files whose relative path matches a doublestar
// pattern, in path order.
func (ix *Index) SearchByGlob(pattern string, maxResults int) ([]Entry, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	pattern = strings.ReplaceAll(pattern, "\\", "/")
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	var results []Entry
	for _, path := range ix.sortedPaths {
		if len(results) >= maxResults {
			break
		}
		if matched, _ := doublestar.Match(pattern, path); matched {
			results = append(results, Entry{RelativePath: path, Node: ix.nodes[path]})
		}
	}
	return results, nil
}

// Hotspots returns up to n files with a non-zero value for key, highest
// first. Ties are broken by path.
func (ix *Index) Hotspots(n int, key SortKey) []Entry {
	if n <= 0 {
		n = DefaultMaxResults
	}

	value := func(node *tree.Node) float64 {
		if key == ByLines {
			return float64(node.Metrics.LineCount)
		}
		return node.Metrics.ChangeRate
	}

	var entries []Entry
	for _, path := range ix.sortedPaths {
		node := ix.nodes[path]
		if value(node) > 0 {
			entries = append(entries, Entry{RelativePath: path, Node: node})
		}
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(value(b.Node), value(a.Node))
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Languages returns the per-language file and line totals, most lines first.
func (ix *Index) Languages() []LanguageStat {
	byName := make(map[string]*LanguageStat)
	for _, path := range ix.sortedPaths {
		node := ix.nodes[path]
		stat, ok := byName[node.Language]
		if !ok {
			stat = &LanguageStat{Language: node.Language}
			byName[node.Language] = stat
		}
		stat.Files++
		stat.Lines += node.Metrics.LineCount
	}

	stats := make([]LanguageStat, 0, len(byName))
	for _, stat := range byName {
		stats = append(stats, *stat)
	}
	slices.SortFunc(stats, func(a, b LanguageStat) int {
		if c := cmp.Compare(b.Lines, a.Lines); c != 0 {
			return c
		}
		return strings.Compare(a.Language, b.Language)
	})
	return stats
}
