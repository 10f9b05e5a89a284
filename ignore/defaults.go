package ignore

import "strings"

// DefaultDirs are dependency and build output directories skipped when
// Options.UseDefaults is set. Dot-prefixed directories are hidden anyway.
var DefaultDirs = []string{
	"node_modules",
	"vendor",
	"bower_components",
	"__pycache__",
	"dist",
	"build",
	"target",
	"out",
	"bin",
	"obj",
	"coverage",
}

// DefaultFileSuffixes are generated or binary artifacts skipped when
// Options.UseDefaults is set.
var DefaultFileSuffixes = []string{
	".exe", ".dll", ".so", ".dylib", ".o", ".a",
	".class", ".pyc",
	".min.js", ".min.css",
	".log",
}

func matchesDefault(baseName string, isDir bool) bool {
	lower := strings.ToLower(baseName)
	if isDir {
		for _, dir := range DefaultDirs {
			if lower == dir {
				return true
			}
		}
		return false
	}
	for _, suffix := range DefaultFileSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
