package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nibzard/taskpad/internal/config"
	"github.com/nibzard/taskpad/internal/kvstore"
	"github.com/nibzard/taskpad/internal/statedir"
	"github.com/nibzard/taskpad/internal/theme"
	"github.com/nibzard/taskpad/internal/todo"
)

// doctorCommand checks config, the state directory and the stored payloads.
func (a *app) doctorCommand(args []string) error {
	fs := flag.NewFlagSet("taskpad doctor", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	w := a.stdout
	cfg := a.cfg

	fmt.Fprintln(w, "taskpad doctor")
	fmt.Fprintln(w, "==============")
	fmt.Fprintln(w)

	allOK := true

	// Config
	fmt.Fprintln(w, "Config:")
	if len(a.sources.Files) == 0 {
		fmt.Fprintln(w, "  No config file (using defaults)")
	}
	for _, f := range a.sources.Files {
		fmt.Fprintf(w, "  File: %s\n", f)
	}
	for _, kv := range cfg.Fields() {
		src := a.sources.Sources[kv[0]]
		if !*verbose && src == config.SourceDefault {
			continue
		}
		fmt.Fprintf(w, "  %-15s %s (%s)\n", kv[0]+":", kv[1], src)
	}
	fmt.Fprintln(w, "  ✅ OK")
	fmt.Fprintln(w)

	// State directory
	fmt.Fprintf(w, "State directory: %s\n", cfg.StateDir)
	if !checkDir(w, cfg.StateDir) {
		allOK = false
	}
	fmt.Fprintln(w)

	storagePath := statedir.StoragePath(cfg.StateDir)
	storage, err := kvstore.NewDir(storagePath)
	if err != nil {
		return err
	}

	// Tasks
	fmt.Fprintf(w, "Tasks (key %q): %s\n", cfg.TasksKey, storage.KeyPath(cfg.TasksKey))
	_, ok, err := storage.Get(cfg.TasksKey)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	case !ok:
		fmt.Fprintln(w, "  ⚠️  Nothing stored yet")
	default:
		store := todo.Open(storage, todo.WithKey(cfg.TasksKey))
		if problems := store.LoadProblems(); len(problems) > 0 {
			fmt.Fprintf(w, "  ❌ %d problem(s), affected records are dropped on load:\n", len(problems))
			for _, p := range problems {
				fmt.Fprintf(w, "     - %v\n", p)
			}
			allOK = false
		} else {
			fmt.Fprintln(w, "  ✅ Valid")
		}
		tasks := store.Sorted()
		done := 0
		for _, t := range tasks {
			if t.Completed {
				done++
			}
		}
		fmt.Fprintf(w, "  Tasks: %d (%d done)\n", len(tasks), done)
		if *verbose {
			for i, t := range tasks {
				fmt.Fprintf(w, "    %d. [%s] %s (%s)\n", i+1, t.ID, t.Text, t.Priority)
			}
		}
	}
	fmt.Fprintln(w)

	// Display mode
	fmt.Fprintf(w, "Display mode (key %q):\n", cfg.ThemeKey)
	rawMode, ok, err := storage.Get(cfg.ThemeKey)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	case !ok:
		fmt.Fprintf(w, "  ✅ Not set (default: %s)\n", cfg.DefaultTheme)
	default:
		if m, err := theme.ParseMode(rawMode); err != nil {
			fmt.Fprintf(w, "  ⚠️  Unknown value %q (falls back to %s)\n", rawMode, cfg.DefaultTheme)
		} else {
			fmt.Fprintf(w, "  ✅ %s\n", m)
		}
	}
	fmt.Fprintln(w)

	// Log file
	fmt.Fprintf(w, "Log file: %s\n", cfg.LogFile)
	if info, err := os.Stat(cfg.LogFile); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (created by the interactive view)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if info.IsDir() {
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return &reportedError{err: fmt.Errorf("doctor checks failed")}
}

// checkDir reports on a directory that is created on demand.
func checkDir(w io.Writer, path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created on first write)")
			return true
		}
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	if !info.IsDir() {
		fmt.Fprintln(w, "  ❌ Error: path is not a directory")
		return false
	}
	fmt.Fprintln(w, "  ✅ OK")
	return true
}
