package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/taskpad/internal/logging"
)

// tailCommand tails the log file.
func (a *app) tailCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskpad tail", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := a.cfg.LogFile
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(a.stdout, "No log file found.")
			return nil
		}
		return fmt.Errorf("checking log file: %w", err)
	}

	fmt.Fprintf(a.stdout, "Tailing: %s\n", path)
	if *follow {
		fmt.Fprintln(a.stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(a.stdout)

	return logging.TailLog(ctx, a.stdout, path, *n, *follow)
}
