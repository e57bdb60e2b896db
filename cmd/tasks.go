package cmd

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/nibzard/taskpad/internal/theme"
	"github.com/nibzard/taskpad/internal/todo"
)

const emptyListMessage = "No tasks yet. Add your first task!"

// addCommand creates a task from the remaining arguments.
func (a *app) addCommand(args []string) error {
	fs := flag.NewFlagSet("taskpad add", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	priorityArg := fs.String("p", "", "Priority ("+strings.Join(priorityNames(), "|")+")")
	fs.StringVar(priorityArg, "priority", "", "Priority ("+strings.Join(priorityNames(), "|")+")")
	if err := fs.Parse(args); err != nil {
		return err
	}

	priority, err := todo.ParsePriority(*priorityArg)
	if err != nil {
		return err
	}

	st, err := a.openState(a.logger)
	if err != nil {
		return err
	}

	task, err := st.store.Add(strings.Join(fs.Args(), " "), priority)
	a.flushNotices(st)
	if err != nil {
		return &reportedError{err: err}
	}
	if err := checkPersist(st); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "  %s  %s\n", shortID(task.ID), task.Text)
	return nil
}

// toggleCommand flips the completed flag of one task.
func (a *app) toggleCommand(args []string) error {
	st, id, err := a.resolveOne("taskpad toggle", args)
	if err != nil {
		return err
	}
	st.store.Toggle(id)
	if err := checkPersist(st); err != nil {
		return err
	}

	task, _ := st.store.Get(id)
	verb := "Reopened"
	if task.Completed {
		verb = "Completed"
	}
	fmt.Fprintf(a.stdout, "%s: %s\n", verb, task.Text)
	return nil
}

// rmCommand deletes one task.
func (a *app) rmCommand(args []string) error {
	st, id, err := a.resolveOne("taskpad rm", args)
	if err != nil {
		return err
	}
	st.store.Delete(id)
	a.flushNotices(st)
	return checkPersist(st)
}

// resolveOne opens the state and resolves the single task reference in args.
func (a *app) resolveOne(name string, args []string) (*state, string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	if err := fs.Parse(args); err != nil {
		return nil, "", err
	}
	if fs.NArg() != 1 {
		return nil, "", fmt.Errorf("expected exactly one task reference, got %d", fs.NArg())
	}

	st, err := a.openState(a.logger)
	if err != nil {
		return nil, "", err
	}
	id, err := st.store.Resolve(fs.Arg(0))
	if err != nil {
		return nil, "", err
	}
	return st, id, nil
}

// lsCommand lists tasks in display order. Numbers are positions in the full
// list, so they stay valid as references when filters hide some rows.
func (a *app) lsCommand(args []string) error {
	fs := flag.NewFlagSet("taskpad ls", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	verbose := fs.Bool("v", false, "Show ids and creation times")
	asJSON := fs.Bool("json", false, "Print the stored JSON")
	pending := fs.Bool("pending", false, "Only tasks that are not completed")
	priorityFilter := fs.String("priority", "", "Comma-separated priorities to include")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	priorities, err := todo.ParsePriorities(*priorityFilter)
	if err != nil {
		return err
	}
	include := map[todo.Priority]bool{}
	for _, p := range priorities {
		include[p] = true
	}

	st, err := a.openState(a.logger)
	if err != nil {
		return err
	}

	type row struct {
		pos  int
		task todo.Task
	}
	var rows []row
	var tasks []todo.Task
	for i, t := range st.store.Sorted() {
		if *pending && t.Completed {
			continue
		}
		if len(include) > 0 && !include[t.Priority] {
			continue
		}
		rows = append(rows, row{pos: i + 1, task: t})
		tasks = append(tasks, t)
	}

	if *asJSON {
		data, err := todo.Encode(tasks)
		if err != nil {
			return err
		}
		var out bytes.Buffer
		if err := json.Indent(&out, data, "", "  "); err != nil {
			return err
		}
		out.WriteByte('\n')
		_, err = out.WriteTo(a.stdout)
		return err
	}

	if st.store.Len() == 0 {
		fmt.Fprintln(a.stdout, st.styles.Muted.Render(emptyListMessage))
		return nil
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.stdout, st.styles.Muted.Render("No matching tasks."))
		return nil
	}
	for _, r := range rows {
		fmt.Fprintln(a.stdout, formatTask(st.styles, r.pos, r.task, *verbose))
	}
	return nil
}

// formatTask renders one ls row.
func formatTask(s *theme.Styles, pos int, t todo.Task, verbose bool) string {
	check := "[ ]"
	text := s.Text.Render(t.Text)
	if t.Completed {
		check = "[x]"
		text = s.Completed.Render(t.Text)
	}

	line := fmt.Sprintf("%3d. %s %s", pos, check, text)
	if t.Priority != todo.PriorityNone {
		line += " " + s.Priority(t.Priority).Render("("+string(t.Priority)+")")
	}
	if verbose {
		line += "\n     " + s.Muted.Render(fmt.Sprintf("id %s  created %s", t.ID, t.CreatedAt.Format(todo.TimeLayout)))
	}
	return line
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
