package language

import (
	"path/filepath"
	"strings"
)

// Unknown is reported for files whose language is not recognized.
const Unknown = "Unknown"

// byExtension maps lower-case extensions (without dot) to language names.
var byExtension = map[string]string{
	"go":    "Go",
	"js":    "JavaScript",
	"jsx":   "JavaScript",
	"mjs":   "JavaScript",
	"cjs":   "JavaScript",
	"ts":    "TypeScript",
	"tsx":   "TypeScript",
	"py":    "Python",
	"pyi":   "Python",
	"rs":    "Rust",
	"java":  "Java",
	"kt":    "Kotlin",
	"kts":   "Kotlin",
	"c":     "C",
	"h":     "C",
	"cpp":   "C++",
	"cc":    "C++",
	"cxx":   "C++",
	"hpp":   "C++",
	"cs":    "C#",
	"swift": "Swift",
	"rb":    "Ruby",
	"php":   "PHP",
	"sh":    "Shell",
	"bash":  "Shell",
	"zsh":   "Shell",
	"html":  "HTML",
	"htm":   "HTML",
	"css":   "CSS",
	"scss":  "SCSS",
	"json":  "JSON",
	"yaml":  "YAML",
	"yml":   "YAML",
	"toml":  "TOML",
	"xml":   "XML",
	"md":    "Markdown",
	"sql":   "SQL",
	"proto": "Protobuf",
	"tf":    "Terraform",
	"lua":   "Lua",
	"txt":   "Text",
}

// byName maps lower-case file names that carry no useful extension.
var byName = map[string]string{
	"makefile":       "Makefile",
	"gnumakefile":    "Makefile",
	"dockerfile":     "Dockerfile",
	"cmakelists.txt": "CMake",
	"gemfile":        "Ruby",
	"rakefile":       "Ruby",
	"go.mod":         "Go Module",
	"go.sum":         "Go Module",
}

// Detect returns the language of a file from its name, or Unknown.
func Detect(path string) string {
	base := strings.ToLower(filepath.Base(path))
	if lang, ok := byName[base]; ok {
		return lang
	}
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	if lang, ok := byExtension[ext]; ok {
		return lang
	}
	return Unknown
}
