// Package cmd implements the CLI command structure for taskpad.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskpad/internal/config"
	"github.com/nibzard/taskpad/internal/kvstore"
	"github.com/nibzard/taskpad/internal/logging"
	"github.com/nibzard/taskpad/internal/notify"
	"github.com/nibzard/taskpad/internal/statedir"
	"github.com/nibzard/taskpad/internal/theme"
	"github.com/nibzard/taskpad/internal/todo"
	"github.com/nibzard/taskpad/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// reportedError wraps an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already printed by the command that
// returned it.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// app carries the loaded configuration and output streams to each command.
type app struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	stdout  io.Writer
	stderr  io.Writer
	logger  *log.Logger
	// interactive is true when stdout is a terminal.
	interactive bool
}

// state is the opened task and display-mode storage.
type state struct {
	storage kvstore.Storage
	store   *todo.Store
	notices *notify.Recorder
	mode    theme.Mode
	styles  *theme.Styles
}

// Run executes the taskpad CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskpad", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}

	a := &app{
		cfg:         cws.Config,
		sources:     cws,
		stdout:      stdout,
		stderr:      stderr,
		interactive: ui.IsTTY(stdout),
	}
	a.logger = logging.NewFromConfig(stderr, a.cfg.LogLevel, a.cfg.LogFormat, a.cfg.LogTimestamps, a.cfg.LogCaller)

	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	// Determine the subcommand
	subcommand := "ls"
	if a.interactive {
		subcommand = "tui"
	}
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "add":
		return a.addCommand(remainingArgs)
	case "toggle", "done":
		return a.toggleCommand(remainingArgs)
	case "rm", "delete":
		return a.rmCommand(remainingArgs)
	case "ls", "list":
		return a.lsCommand(remainingArgs)
	case "theme":
		return a.themeCommand(remainingArgs)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	case "tail":
		return a.tailCommand(ctx, remainingArgs)
	case "config":
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openState opens the storage directory, loads the persisted display mode
// and loads the task collection.
func (a *app) openState(logger *log.Logger) (*state, error) {
	storage, err := kvstore.NewDir(statedir.StoragePath(a.cfg.StateDir))
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	mode, err := theme.Load(storage, a.cfg.ThemeKey, theme.Mode(a.cfg.DefaultTheme))
	if err != nil {
		logger.Warn("Error reading display mode", "key", a.cfg.ThemeKey, "err", err)
	}

	notices := &notify.Recorder{}
	store := todo.Open(storage,
		todo.WithKey(a.cfg.TasksKey),
		todo.WithNotifier(notices),
		todo.WithLogger(logger),
	)

	return &state{
		storage: storage,
		store:   store,
		notices: notices,
		mode:    mode,
		styles:  theme.StylesFor(mode),
	}, nil
}

// flushNotices prints pending notices: successes to stdout, errors to
// stderr.
func (a *app) flushNotices(st *state) {
	for _, n := range st.notices.Drain() {
		w := a.stdout
		if n.Kind == notify.KindError {
			w = a.stderr
		}
		fmt.Fprintln(w, st.styles.Notice(n.Kind).Render(n.Message))
	}
}

// checkPersist turns a failed write into a command error.
func checkPersist(st *state) error {
	if err := st.store.PersistErr(); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

// tuiCommand launches the interactive view. Logs go to the log file so
// they do not corrupt the screen.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskpad tui", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	logFile, err := logging.OpenFile(a.cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.NewFromConfig(logFile.Writer(), a.cfg.LogLevel, a.cfg.LogFormat, true, a.cfg.LogCaller).
		With("session", logFile.Session)

	st, err := a.openState(logger)
	if err != nil {
		return err
	}
	logger.Info("Starting interactive view", "tasks", st.store.Len(), "mode", st.mode)

	return ui.Run(ctx, ui.Options{
		Store:    st.store,
		Notices:  st.notices,
		Storage:  st.storage,
		ThemeKey: a.cfg.ThemeKey,
		Mode:     st.mode,
		Logger:   logger,
	})
}

// versionCommand prints version information.
func (a *app) versionCommand() error {
	fmt.Fprintf(a.stdout, "taskpad version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "taskpad - A small personal task list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskpad [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                      Interactive view (default on a terminal)")
	fmt.Fprintln(w, "  add [-p priority] text   Add a task")
	fmt.Fprintln(w, "  toggle, done <ref>       Mark a task done or not done")
	fmt.Fprintln(w, "  rm, delete <ref>         Delete a task")
	fmt.Fprintln(w, "  ls                       List tasks in display order (default otherwise)")
	fmt.Fprintln(w, "  theme [light|dark|toggle]  Show or change the display mode")
	fmt.Fprintln(w, "  doctor                   Check config, storage, and stored tasks")
	fmt.Fprintln(w, "  tail                     Tail the log file")
	fmt.Fprintln(w, "  config                   Print an example config file")
	fmt.Fprintln(w, "  version                  Show version information")
	fmt.Fprintln(w, "  help                     Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A <ref> is a task id, a unique id prefix, or the number shown by ls.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options:")
	fmt.Fprintln(w, "  -p string")
	fmt.Fprintln(w, "        Priority ("+strings.Join(priorityNames(), "|")+")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -v    Show ids and creation times")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "        Print the stored JSON")
	fmt.Fprintln(w, "  -pending")
	fmt.Fprintln(w, "        Only tasks that are not completed")
	fmt.Fprintln(w, "  -priority string")
	fmt.Fprintln(w, "        Comma-separated priorities to include")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options:")
	fmt.Fprintln(w, "  -f, -follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}

func priorityNames() []string {
	var names []string
	for _, p := range todo.Priorities() {
		names = append(names, string(p))
	}
	return names
}
