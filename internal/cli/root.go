package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/taskks/internal/config"
	"github.com/Makepad-fr/taskks/internal/logging"
	"github.com/Makepad-fr/taskks/internal/store/jsonstore"
	"github.com/Makepad-fr/taskks/internal/store/sqlitestore"
	"github.com/Makepad-fr/taskks/internal/todolist"
	"github.com/Makepad-fr/taskks/internal/ui"
)

var version = "dev"

// usageError marks bad invocations; Run maps it to exit code 2.
type usageError struct{ error }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// Flags are the root flags shared by every subcommand.
type Flags struct {
	ConfigPath string
	DataDir    string
	Backend    string
	LogLevel   string
	Theme      string
	Group      bool
}

// env is what a subcommand runs against, set up in PersistentPreRunE.
type env struct {
	cfg    config.Config
	store  *todolist.Store
	logger *log.Logger
	closer []func() error
}

func (e *env) close() error {
	var errs []error
	for i := len(e.closer) - 1; i >= 0; i-- {
		errs = append(errs, e.closer[i]())
	}
	e.closer = nil
	return errors.Join(errs...)
}

// Run executes the command line and returns an exit code
// (0 ok, 1 error, 2 usage).
func Run(args []string, stdout, stderr io.Writer) int {
	root, e := newRoot(stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	if cerr := e.close(); err == nil {
		err = cerr
	}
	if err == nil {
		return 0
	}
	ui.Fail(stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

// newRoot builds the command tree. With no subcommand it opens the
// interactive view.
func newRoot(stdout, stderr io.Writer) (*cobra.Command, *env) {
	flags := &Flags{}
	e := &env{}

	root := &cobra.Command{
		Use:           "taskks",
		Short:         "A tiny terminal to-do list",
		Version:       version,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd, flags, stderr)
		},
		RunE: func(*cobra.Command, []string) error {
			return runTUI(e)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.ConfigPath, "config", "c", envOr("TASKKS_CONFIG", config.DefaultPath()), "path to config TOML")
	pf.StringVar(&flags.DataDir, "data-dir", os.Getenv("TASKKS_DATA_DIR"), "data directory (overrides storage.dir)")
	pf.StringVar(&flags.Backend, "backend", "", "storage backend: json | sqlite")
	pf.StringVar(&flags.LogLevel, "log-level", os.Getenv("TASKKS_LOG_LEVEL"), "log level: debug | info | warn | error")
	pf.StringVar(&flags.Theme, "theme", "", "theme: classic | neon | mono")
	pf.BoolVar(&flags.Group, "group", false, "group list output by pending/done")

	root.AddCommand(
		newAddCommand(e),
		newListCommand(e),
		newDoneCommand(e),
		newRemoveCommand(e),
		newRenameCommand(e),
		newSelectCommand(e),
		newSelectAllCommand(e),
		newRemoveSelectedCommand(e),
		newDoneSelectedCommand(e),
		newDoneAllCommand(e),
		newProgressCommand(e),
		newTUICommand(e),
	)
	return root, e
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (e *env) setup(cmd *cobra.Command, flags *Flags, stderr io.Writer) error {
	cfg, err := config.Load(flags.ConfigPath, config.Default(config.DefaultDataDir()))
	if err != nil {
		return fmt.Errorf("load config %q: %w", flags.ConfigPath, err)
	}
	if flags.DataDir != "" {
		cfg.Storage.Dir = flags.DataDir
	}
	if flags.Backend != "" {
		cfg.Storage.Backend = config.Backend(flags.Backend)
	}
	if flags.LogLevel != "" {
		cfg.Logging.Level = flags.LogLevel
	}
	if flags.Theme != "" {
		cfg.UI.Theme = flags.Theme
	}
	if flags.Group {
		cfg.UI.Group = true
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	e.cfg = cfg
	ui.SetTheme(cfg.UI.Theme)

	// the interactive view owns the terminal, so its logs go to a file
	logFile := cfg.Logging.File
	if logFile == "" && isInteractive(cmd) {
		logFile = filepath.Join(cfg.Storage.Dir, "taskks.log")
	}
	logger, closeLog, err := logging.New(cfg.Logging.Level, logFile, stderr)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	e.logger = logger
	e.closer = append(e.closer, closeLog)

	var p todolist.Persistence
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := sqlitestore.Open(cfg.Storage.Dir)
		if err != nil {
			_ = e.close()
			return err
		}
		e.closer = append(e.closer, db.Close)
		p = db
	default:
		p = jsonstore.New(cfg.Storage.Dir)
	}
	logger.Debug("storage opened", "backend", cfg.Storage.Backend, "dir", cfg.Storage.Dir)

	e.store = todolist.Open(p, todolist.WithLogger(logger))
	return nil
}

func isInteractive(cmd *cobra.Command) bool {
	return cmd.Name() == "tui" || !cmd.HasParent()
}
