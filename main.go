package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/lexandro/heatree/index"
	"github.com/lexandro/heatree/register"
	"github.com/lexandro/heatree/server"
	"github.com/lexandro/heatree/tools"
	"github.com/lexandro/heatree/tree"
	"github.com/lexandro/heatree/tui"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "heatree: %v\n", err)
		os.Exit(1)
	}
}

// cliFlags holds the persistent flag values before they are merged with the
// config file.
type cliFlags struct {
	days            int
	configPath      string
	excludes        []string
	defaultExcludes bool
	gitignore       bool
	expand          bool
	logLevel        string
	logFile         string
	noGit           bool
}

func newRootCommand() *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:   "heatree [path]",
		Short: "Browse a source tree as a heatmap of size and change frequency",
		Long: `heatree shows every file and directory under a path with its line count and
how often git commits touched it per day over a recent window.

Examples:
  heatree                      browse the current directory
  heatree ~/src/project --days 90
  heatree print . --expand     print the full tree
  heatree mcp .                serve the snapshot to an MCP client over stdio`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, flags, args)
		},
	}

	addPersistentFlags(root, flags)
	root.AddCommand(newPrintCommand(flags), newMCPCommand(flags), newRegisterCommand())
	return root
}

func addPersistentFlags(cmd *cobra.Command, flags *cliFlags) {
	pf := cmd.PersistentFlags()
	pf.IntVar(&flags.days, "days", 30, "Change frequency window in days")
	pf.StringVar(&flags.configPath, "config", "", "Config file (default: <user config dir>/heatree/config.yaml)")
	pf.StringArrayVar(&flags.excludes, "exclude", nil, "Extra exclude glob pattern (repeatable)")
	pf.BoolVar(&flags.defaultExcludes, "default-excludes", false, "Also skip common dependency and build output directories")
	pf.BoolVar(&flags.gitignore, "gitignore", false, "Honor the root .gitignore")
	pf.BoolVar(&flags.expand, "expand", false, "Start with every directory expanded")
	pf.StringVar(&flags.logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	pf.StringVar(&flags.logFile, "log-file", "", "Log file path (default: stderr; discarded in the interactive view)")
	pf.BoolVar(&flags.noGit, "no-git", false, "Skip git history; every change rate is zero")
}

func newPrintCommand(flags *cliFlags) *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "print [path]",
		Short: "Print the tree with metrics to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd, flags, args)
			if err != nil {
				return err
			}
			logger, closeLog := setupLogger(s.LogLevel, s.LogFile, os.Stderr)
			defer closeLog()

			snap, err := buildSnapshot(s, logger)
			if err != nil {
				return err
			}

			expand := tree.ByFlag
			if depth > 0 {
				expand = func(_ *tree.Node, d int) bool { return d < depth }
			}
			_, err = io.WriteString(cmd.OutOrStdout(), tools.FormatTree(tree.FlattenWithTreeLinesFunc(snap.Root, expand)))
			return err
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "Levels to expand (default: follow --expand)")
	return cmd
}

func newMCPCommand(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp [path]",
		Short: "Serve the heatmap snapshot over MCP on stdio",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd, flags, args)
			if err != nil {
				return err
			}
			// stdout carries the MCP stream
			logger, closeLog := setupLogger(s.LogLevel, s.LogFile, os.Stderr)
			defer closeLog()

			snap, err := buildSnapshot(s, logger)
			if err != nil {
				return err
			}
			ix := index.Build(snap.Root)

			mcpServer := server.Setup(
				&tools.TreeHandler{Index: ix, Logger: logger},
				&tools.FilesHandler{Index: ix, Logger: logger},
				&tools.HotspotsHandler{Index: ix, Logger: logger},
				&tools.StatusHandler{
					Index:      ix,
					WindowDays: s.WindowDays,
					NoGit:      s.NoGit,
					ScannedAt:  snap.ScannedAt,
					Logger:     logger,
				},
			)

			logger.Info("MCP server starting on stdio", "root", snap.Root.Path)
			if err := mcpServer.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				logger.Error("MCP server error", "error", err)
				return err
			}
			return nil
		},
	}
}

func newRegisterCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "register <project|user> [directory] [-- server flags]",
		Short: "Add the heatree MCP server to an MCP client config",
		Long: `Add the heatree MCP server to an MCP client config.

  project  writes <directory>/.mcp.json and serves that directory (default: .)
  user     writes ~/.claude.json and serves the client's working directory

Arguments after -- are passed to "heatree mcp", e.g. -- --days 90.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			positional, extra := args, []string(nil)
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				positional, extra = args[:dash], args[dash:]
			}
			if len(positional) < 1 || len(positional) > 2 {
				return fmt.Errorf("expected a scope and an optional directory, got %d arguments", len(positional))
			}

			scope, err := register.ParseScope(positional[0])
			if err != nil {
				return err
			}
			opts := register.Options{Scope: scope, ServerName: name, ExtraArgs: extra}
			if len(positional) == 2 {
				opts.Directory = positional[1]
			}

			configPath, err := register.Register(opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %q in %s\n", name, configPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "heatree", "Server name under mcpServers")
	return cmd
}

func runBrowse(cmd *cobra.Command, flags *cliFlags, args []string) error {
	s, err := resolveSettings(cmd, flags, args)
	if err != nil {
		return err
	}
	// The terminal belongs to the UI, so logs go nowhere unless a file is given.
	logger, closeLog := setupLogger(s.LogLevel, s.LogFile, io.Discard)
	defer closeLog()

	snap, err := buildSnapshot(s, logger)
	if err != nil {
		return err
	}

	model := tui.New(snap.Root, tui.Options{WindowDays: s.WindowDays, NoGit: s.NoGit})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// setupLogger creates an slog.Logger writing to logFile, or to fallback when
// logFile is empty or cannot be opened. The returned func closes the file.
func setupLogger(level string, logFile string, fallback io.Writer) (*slog.Logger, func()) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	writer := fallback
	closeFn := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v, falling back to default output\n", logFile, err)
		} else {
			writer = f
			closeFn = func() { f.Close() }
		}
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler), closeFn
}
