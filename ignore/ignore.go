package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// IsHidden reports whether a file name is dot-prefixed. Hidden entries,
// including version control metadata such as .git, never enter the tree.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Matcher decides which non-hidden entries are left out of the scan.
// It combines user glob patterns, the optional default list, and the root
// .gitignore. A Matcher is immutable after construction.
type Matcher struct {
	rootDir     string
	patterns    []string
	useDefaults bool
	gitIgnore   gitignore.GitIgnore
}

// Options configures a Matcher. The zero value excludes nothing.
type Options struct {
	RootDir      string
	Patterns     []string // doublestar globs, matched against root-relative slash paths and base names
	UseDefaults  bool     // also exclude DefaultDirs and DefaultFileSuffixes
	UseGitignore bool     // also honor <RootDir>/.gitignore
}

// NewMatcher validates the patterns and loads .gitignore when requested.
func NewMatcher(options Options) (*Matcher, error) {
	for _, p := range options.Patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", p)
		}
	}

	m := &Matcher{
		rootDir:     options.RootDir,
		useDefaults: options.UseDefaults,
	}
	for _, p := range options.Patterns {
		m.patterns = append(m.patterns, filepath.ToSlash(p))
	}
	if options.UseGitignore {
		m.gitIgnore = loadIgnoreFile(filepath.Join(options.RootDir, ".gitignore"), options.RootDir)
	}
	return m, nil
}

// Excluded reports whether the entry at absolutePath should be skipped.
// A nil Matcher excludes nothing.
func (m *Matcher) Excluded(absolutePath string, isDir bool) bool {
	if m == nil {
		return false
	}

	relativePath, err := filepath.Rel(m.rootDir, absolutePath)
	if err != nil {
		relativePath = absolutePath
	}
	relativePath = filepath.ToSlash(relativePath)
	baseName := filepath.Base(absolutePath)

	if m.useDefaults && matchesDefault(baseName, isDir) {
		return true
	}

	for _, pattern := range m.patterns {
		if matched, _ := doublestar.Match(pattern, relativePath); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, baseName); matched {
			return true
		}
	}

	if m.gitIgnore != nil {
		if match := m.gitIgnore.Relative(relativePath, isDir); match != nil && match.Ignore() {
			return true
		}
	}
	return false
}

// loadIgnoreFile parses an ignore file, returning nil when it is missing.
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}
