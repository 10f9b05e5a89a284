package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexandro/heatree/churn"
	"github.com/lexandro/heatree/config"
	"github.com/lexandro/heatree/ignore"
	"github.com/lexandro/heatree/scanner"
	"github.com/lexandro/heatree/tree"
)

// settings is the merged result of the config file and command line flags.
type settings struct {
	Path            string
	WindowDays      int
	Excludes        []string
	DefaultExcludes bool
	Gitignore       bool
	ExpandAll       bool
	NoGit           bool
	LogLevel        string
	LogFile         string
}

// resolveSettings loads the config file and applies the flags that were set
// explicitly on the command line.
func resolveSettings(cmd *cobra.Command, flags *cliFlags, args []string) (settings, error) {
	configPath := flags.configPath
	if configPath == "" {
		p, err := config.DefaultPath()
		if err == nil {
			configPath = p
		}
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return settings{}, err
		}
		cfg = loaded
	}

	s := settings{
		Path:            ".",
		WindowDays:      cfg.WindowDays,
		Excludes:        cfg.Exclude,
		DefaultExcludes: cfg.DefaultExcludes,
		Gitignore:       cfg.Gitignore,
		ExpandAll:       cfg.ExpandAll,
		NoGit:           flags.noGit,
		LogLevel:        cfg.LogLevel,
		LogFile:         flags.logFile,
	}
	if len(args) > 0 {
		s.Path = args[0]
	}

	changed := cmd.Flags().Changed
	if changed("days") {
		s.WindowDays = flags.days
	}
	if changed("exclude") {
		s.Excludes = append(append([]string{}, s.Excludes...), flags.excludes...)
	}
	if changed("default-excludes") {
		s.DefaultExcludes = flags.defaultExcludes
	}
	if changed("gitignore") {
		s.Gitignore = flags.gitignore
	}
	if changed("expand") {
		s.ExpandAll = flags.expand
	}
	if changed("log-level") {
		s.LogLevel = flags.logLevel
	}

	if s.WindowDays <= 0 {
		return settings{}, fmt.Errorf("--days must be positive, got %d", s.WindowDays)
	}
	return s, nil
}

// snapshot is one analyzed and scanned tree.
type snapshot struct {
	Root      *tree.Node
	ScannedAt time.Time
}

// buildSnapshot runs the history analysis and then the directory scan.
func buildSnapshot(s settings, logger *slog.Logger) (*snapshot, error) {
	absPath, err := filepath.Abs(s.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", s.Path, err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", scanner.ErrFilesystem, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", scanner.ErrFilesystem, absPath)
	}

	logger.Info("starting heatree",
		"root", absPath,
		"windowDays", s.WindowDays,
		"noGit", s.NoGit,
	)

	freq := churn.FrequencyMap{}
	if !s.NoGit {
		freq, err = churn.NewAnalyzer(logger).Analyze(absPath, s.WindowDays)
		if err != nil {
			return nil, err
		}
	}

	matcher, err := ignore.NewMatcher(ignore.Options{
		RootDir:      absPath,
		Patterns:     s.Excludes,
		UseDefaults:  s.DefaultExcludes,
		UseGitignore: s.Gitignore,
	})
	if err != nil {
		return nil, err
	}

	root, _, err := scanner.New(scanner.Options{
		Matcher:   matcher,
		ExpandAll: s.ExpandAll,
		Logger:    logger,
	}).Scan(absPath, freq)
	if err != nil {
		return nil, err
	}
	return &snapshot{Root: root, ScannedAt: time.Now()}, nil
}
