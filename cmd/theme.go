package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/nibzard/taskpad/internal/theme"
)

// themeCommand shows, sets, or toggles the persisted display mode.
func (a *app) themeCommand(args []string) error {
	fs := flag.NewFlagSet("taskpad theme", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}

	st, err := a.openState(a.logger)
	if err != nil {
		return err
	}

	mode := st.mode
	switch arg := strings.ToLower(strings.TrimSpace(fs.Arg(0))); arg {
	case "":
	case "toggle":
		mode, err = theme.Toggle(st.storage, a.cfg.ThemeKey, st.mode)
		if err != nil {
			return fmt.Errorf("saving display mode: %w", err)
		}
	default:
		mode, err = theme.ParseMode(arg)
		if err != nil {
			return err
		}
		if err := theme.Save(st.storage, a.cfg.ThemeKey, mode); err != nil {
			return fmt.Errorf("saving display mode: %w", err)
		}
	}

	fmt.Fprintf(a.stdout, "Display mode: %s\n", mode)
	return nil
}
