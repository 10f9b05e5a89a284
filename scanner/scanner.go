// Package scanner builds the heatmap tree from a directory and a change
// frequency map.
package scanner

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lexandro/heatree/churn"
	"github.com/lexandro/heatree/ignore"
	"github.com/lexandro/heatree/language"
	"github.com/lexandro/heatree/metrics"
	"github.com/lexandro/heatree/tree"
)

// ErrFilesystem marks a directory that could not be listed. The scan is
// abandoned and no partial tree is returned.
var ErrFilesystem = errors.New("filesystem error")

// DefaultWorkers is the number of goroutines reading files when
// Options.Workers is zero.
const DefaultWorkers = 8

// Options configures a Scanner.
type Options struct {
	Matcher   *ignore.Matcher // Extra exclusions on top of hidden entries; may be nil
	ExpandAll bool            // Start with every directory expanded instead of only the root
	Workers   int             // Parallel file readers
	Logger    *slog.Logger
}

// Scanner walks a directory tree and annotates it with metrics.
type Scanner struct {
	options Options
	logger  *slog.Logger
}

// Stats summarizes a finished scan.
type Stats struct {
	Dirs       int
	Files      int
	Unreadable int // Files counted as zero lines because they could not be read as text
	Duration   time.Duration
}

// New creates a Scanner.
func New(options Options) *Scanner {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{options: options, logger: logger}
}

// Scan is shorthand for New(Options{}).Scan.
func Scan(rootPath string, freq churn.FrequencyMap) (*tree.Node, error) {
	root, _, err := New(Options{}).Scan(rootPath, freq)
	return root, err
}

// Scan builds the tree rooted at rootPath. Directories aggregate their
// children's metrics; files get their line count and the change rate of
// their root-relative path in freq.
//
// A directory that cannot be listed fails the whole scan with ErrFilesystem.
// A file that cannot be read as text only gets a line count of zero.
func (s *Scanner) Scan(rootPath string, freq churn.FrequencyMap) (*tree.Node, Stats, error) {
	start := time.Now()
	var stats Stats

	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: resolving %s: %w", ErrFilesystem, rootPath, err)
	}

	root := tree.NewDir(filepath.Base(absRoot), absRoot)
	root.Expanded = true
	stats.Dirs++

	w := &walk{scanner: s, rootPath: absRoot, freq: freq, stats: &stats}
	if err := w.fill(root); err != nil {
		return nil, stats, err
	}
	w.countLines()
	root.AggregateAll()
	root.SortChildren()

	stats.Duration = time.Since(start)
	s.logger.Info("directory scanned",
		"root", absRoot,
		"dirs", stats.Dirs,
		"files", stats.Files,
		"unreadable", stats.Unreadable,
		"lines", root.Metrics.LineCount,
		"duration", stats.Duration,
	)
	return root, stats, nil
}

// walk carries the state of one Scan call.
type walk struct {
	scanner  *Scanner
	rootPath string
	freq     churn.FrequencyMap
	stats    *Stats
	files    []*tree.Node // leaves awaiting a line count
}

// fill lists dir and recurses into subdirectories.
func (w *walk) fill(dir *tree.Node) error {
	entries, err := os.ReadDir(dir.Path)
	if err != nil {
		return fmt.Errorf("%w: listing %s: %w", ErrFilesystem, dir.Path, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if ignore.IsHidden(name) {
			continue
		}
		fullPath := filepath.Join(dir.Path, name)
		if w.scanner.options.Matcher.Excluded(fullPath, entry.IsDir()) {
			continue
		}

		if entry.IsDir() {
			child := tree.NewDir(name, fullPath)
			child.Expanded = w.scanner.options.ExpandAll
			w.stats.Dirs++
			if err := w.fill(child); err != nil {
				return err
			}
			dir.AddChild(child)
			continue
		}

		dir.AddChild(w.file(name, fullPath))
	}
	return nil
}

// file builds a leaf node; its line count is filled in by countLines.
func (w *walk) file(name, fullPath string) *tree.Node {
	w.stats.Files++

	node := tree.NewFile(name, fullPath, metrics.Metrics{
		ChangeRate: w.freq.Rate(w.relative(fullPath)),
	})
	node.Language = language.Detect(name)
	w.files = append(w.files, node)
	return node
}

// countLines reads every collected file with a bounded worker pool. Read
// failures degrade to zero lines.
func (w *walk) countLines() {
	workers := w.scanner.options.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	jobs := make(chan *tree.Node, 100)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for node := range jobs {
				lines, err := countFileLines(node.Path)
				if err != nil {
					w.scanner.logger.Debug("counting lines as zero", "path", node.Path, "error", err)
					mu.Lock()
					w.stats.Unreadable++
					mu.Unlock()
				}
				node.Metrics.LineCount = lines
			}
		}()
	}

	for _, node := range w.files {
		jobs <- node
	}
	close(jobs)
	wg.Wait()
}

// relative returns fullPath relative to the scan root with forward slashes,
// the key format of churn.FrequencyMap.
func (w *walk) relative(fullPath string) string {
	rel, err := filepath.Rel(w.rootPath, fullPath)
	if err != nil {
		return filepath.ToSlash(fullPath)
	}
	return filepath.ToSlash(rel)
}

var errNotText = errors.New("not a text file")

// countFileLines reads a file and counts its lines.
func countFileLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if !language.IsText(data) {
		return 0, errNotText
	}
	return language.CountLines(data), nil
}
