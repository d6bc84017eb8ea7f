package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/stefanpenner/duedate/pkg/config"
	"github.com/stefanpenner/duedate/pkg/logging"
	"github.com/stefanpenner/duedate/pkg/report"
	"github.com/stefanpenner/duedate/pkg/session"
	"github.com/stefanpenner/duedate/pkg/store"
	"github.com/stefanpenner/duedate/pkg/tui"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	File       string
	Format     string
	Verbose    bool
}

// NewRootCommand creates the duedate command tree. Without a subcommand it
// starts the interactive menu.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "duedate",
		Short: "Track course assignments and their deadlines",
		Long: `duedate keeps an in-memory list of course assignments for one session.

Run without a subcommand for the interactive menu. The batch subcommands load
the task file given by --file (or the config's seed), apply one operation and
print the result. Nothing is written back; use 'duedate export' to capture
the resulting list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := report.ParseFormat(opts.Format); err != nil {
				return WrapExitError(ExitCommandError, "", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default $"+config.EnvPath+" or the user config dir)")
	cmd.PersistentFlags().StringVarP(&opts.File, "file", "f", "", "task file to load (overrides the config seed)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging")

	cmd.AddCommand(newTUICommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newAddCommand(opts))
	cmd.AddCommand(newSortCommand(opts))
	cmd.AddCommand(newSearchCommand(opts))
	cmd.AddCommand(newCountCommand(opts))
	cmd.AddCommand(newCompleteCommand(opts))
	cmd.AddCommand(newExportCommand(opts))

	return cmd
}

func newTUICommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}
}

func newListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the tasks in their current order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openBatchSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return printer(opts, cmd.OutOrStdout()).Tasks(s.List())
		},
	}
}

func newAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <course> <description> <deadline>",
		Short: "Append a task and print the list",
		Long:  "Append a task. The deadline is DD-MM-YYYY; it is only checked when strict_deadlines is set.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openBatchSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if _, err := s.Add(args[0], args[1], args[2]); err != nil {
				return domainError(err)
			}
			return printer(opts, cmd.OutOrStdout()).Tasks(s.List())
		},
	}
}

func newSortCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Sort tasks by deadline, earliest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openBatchSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			p := printer(opts, cmd.OutOrStdout())

			sorted, err := s.Sort()
			if errors.Is(err, store.ErrTooFewRecords) {
				return p.Message("Too few tasks to sort.")
			}
			if err != nil {
				return domainError(err)
			}
			return p.Tasks(sorted)
		},
	}
}

func newSearchCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <course>",
		Short: "Find the first task for a course (exact name, any case)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openBatchSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")

			task, found, err := s.Search(query)
			if err != nil {
				return domainError(err)
			}
			if err := printer(opts, cmd.OutOrStdout()).SearchResult(query, task, found); err != nil {
				return err
			}
			if !found {
				return NewExitError(ExitFailure, "")
			}
			return nil
		},
	}
}

func newCountCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openBatchSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return printer(opts, cmd.OutOrStdout()).Count(s.Count())
		},
	}
}

func newCompleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <index>",
		Short: "Mark a task complete and remove all completed tasks",
		Long: `Mark the task at the 1-based index complete, then remove every completed
task from the list, including ones that were already complete in the task file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid index", err)
			}

			s, err := openBatchSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			removed, err := s.MarkCompleteAndCompact(index)
			if err != nil {
				return domainError(err)
			}
			return printer(opts, cmd.OutOrStdout()).Completed(removed, s.List())
		},
	}
}

func newExportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the tasks as a task file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openBatchSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out, err := s.Export()
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func printer(opts *RootOptions, w io.Writer) *report.Printer {
	return &report.Printer{Format: report.Format(opts.Format), Writer: w}
}

func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(config.Path(opts.ConfigPath))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading config", err)
	}
	return cfg, nil
}

func seedPath(opts *RootOptions, cfg *config.Config) string {
	if opts.File != "" {
		return opts.File
	}
	return cfg.SeedPath()
}

// openBatchSession logs to errOut at warn level unless --verbose or the
// config asks for something quieter.
func openBatchSession(opts *RootOptions, errOut io.Writer) (*session.Session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	level := cfg.Level()
	if level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}

	s, err := session.Open(session.Options{
		StrictDeadlines: cfg.StrictDeadlines,
		SeedPath:        seedPath(opts, cfg),
		Logger:          logging.New(errOut, level),
	})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading tasks", err)
	}
	return s, nil
}

func runTUI(opts *RootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	level := cfg.Level()
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger, closeLog, err := logging.NewFile(cfg.LogPath(), level)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening log", err)
	}
	defer closeLog()

	seed := seedPath(opts, cfg)
	s, err := session.Open(session.Options{
		StrictDeadlines: cfg.StrictDeadlines,
		SeedPath:        seed,
		Logger:          logger,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "loading tasks", err)
	}

	p := tea.NewProgram(tui.NewModel(s), tea.WithAltScreen())

	if seed != "" {
		cleanup, err := tui.StartWatcher(seed, p)
		if err != nil {
			logger.Warn("seed watcher failed", "path", seed, "error", err)
		} else {
			defer cleanup()
		}
	}

	logger.Info("tui starting", "seed", seed, "tasks", s.Count())
	_, err = p.Run()
	return err
}

// domainError maps store errors to ExitFailure with a readable message.
func domainError(err error) error {
	switch {
	case errors.Is(err, store.ErrEmptyStore):
		return WrapExitError(ExitFailure, "nothing to do", err)
	case errors.Is(err, store.ErrIndexOutOfRange),
		errors.Is(err, store.ErrInvalidDateFormat):
		return WrapExitError(ExitFailure, "", err)
	default:
		return WrapExitError(ExitFailure, "", fmt.Errorf("unexpected: %w", err))
	}
}
