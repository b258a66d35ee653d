package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todomvc/internal/app"
	"github.com/Makepad-fr/todomvc/internal/config"
	"github.com/Makepad-fr/todomvc/internal/logging"
	"github.com/Makepad-fr/todomvc/internal/store"
	"github.com/Makepad-fr/todomvc/internal/tui"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Backend    string
	Path       string
	Key        string
	LogLevel   string
	NoColor    bool

	cfg config.Config
}

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	exitOK    = 0
	exitErr   = 1
	exitUsage = 2
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &exitError{code: exitUsage, err: fmt.Errorf(format, args...)}
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return run(NewRootCommand(), os.Stderr)
}

func run(cmd *cobra.Command, stderr io.Writer) int {
	if err := cmd.Execute(); err != nil {
		fail(stderr, err.Error())
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		if strings.HasPrefix(err.Error(), "unknown command") {
			return exitUsage
		}
		return exitErr
	}
	return exitOK
}

// NewRootCommand creates the root command. Without a subcommand it starts the
// interactive list.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "todomvc",
		Short:         "todomvc - a task list for the terminal",
		Long:          "Add, edit, complete, delete and filter short tasks. State is kept in a key-value store across runs.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), opts)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: exitUsage, err: err}
	})

	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&opts.Backend, "store", "", fmt.Sprintf("storage backend %v", store.Backends))
	pf.StringVar(&opts.Path, "path", "", "json file or sqlite database path")
	pf.StringVar(&opts.Key, "key", "", "storage key the list is kept under")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newAddCommand(opts),
		newListCommand(opts),
		newDoneCommand(opts),
		newRemoveCommand(opts),
		newEditCommand(opts),
		newToggleAllCommand(opts),
		newClearCompletedCommand(opts),
		newExportCommand(opts),
	)
	return cmd
}

// resolve loads the configuration and lays explicitly set flags over it.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store.Backend = o.Backend
	}
	if flags.Changed("path") {
		cfg.Store.Path = o.Path
	}
	if flags.Changed("key") {
		cfg.Key = o.Key
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.LogLevel
	}
	if flags.Changed("no-color") {
		cfg.UI.NoColor = o.NoColor
	}
	if err := cfg.Validate(); err != nil {
		return usageErrorf("%v", err)
	}
	if cfg.UI.NoColor {
		tui.DisableColor()
	}
	o.cfg = cfg
	return nil
}

// session is one opened store plus the controller restored from it.
type session struct {
	kv     store.KV
	app    *app.Model
	logger *log.Logger
}

func openSession(ctx context.Context, cfg config.Config, logger *log.Logger) (*session, error) {
	kv, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	logger.Debug("store opened", "backend", cfg.Store.Backend, "key", cfg.Key)
	return &session{
		kv:     kv,
		app:    app.New(ctx, kv, cfg.Key, logger),
		logger: logger,
	}, nil
}

func (s *session) Close() error { return s.kv.Close() }

// withSession runs fn against a session for one CLI subcommand. Logs go to
// stderr.
func withSession(cmd *cobra.Command, opts *RootOptions, fn func(*session) error) error {
	logger := logging.New(cmd.ErrOrStderr(), opts.cfg.Log.Level, opts.cfg.Log.Format)
	s, err := openSession(cmd.Context(), opts.cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func runInteractive(ctx context.Context, opts *RootOptions) error {
	logger, closer, err := logging.OpenFile(opts.cfg.Log.File, opts.cfg.Log.Level, opts.cfg.Log.Format)
	if err != nil {
		return err
	}
	defer closer.Close()

	s, err := openSession(ctx, opts.cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := tui.Run(ctx, s.app, logger); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
