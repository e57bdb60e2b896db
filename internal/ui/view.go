package ui

import (
	"fmt"
	"strings"

	"github.com/nibzard/taskpad/internal/todo"
)

const emptyMessage = "No tasks yet. Add your first task!"

func (m *model) View() string {
	var b strings.Builder
	m.writeTitle(&b)

	if m.showHelp {
		m.writeHelp(&b)
		return b.String()
	}

	m.writeTasks(&b)
	m.writeToast(&b)
	if m.adding {
		m.writeDialog(&b)
	}
	m.writeFooter(&b)
	return b.String()
}

func (m *model) writeTitle(b *strings.Builder) {
	done := 0
	for _, t := range m.tasks {
		if t.Completed {
			done++
		}
	}
	b.WriteString(m.styles.Title.Render("Tasks"))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d of %d done · %s mode", done, len(m.tasks), m.mode)))
	b.WriteString("\n\n")
}

func (m *model) writeTasks(b *strings.Builder) {
	if len(m.tasks) == 0 {
		b.WriteString(m.styles.Empty.Render(emptyMessage))
		b.WriteString("\n\n")
		return
	}
	for i, t := range m.tasks {
		b.WriteString(m.formatTask(t, i == m.cursor && !m.adding))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m *model) formatTask(t todo.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = m.styles.Cursor.Render("> ")
	}

	check := "[ ]"
	text := m.styles.Text.Render(t.Text)
	if t.Completed {
		check = "[x]"
		text = m.styles.Completed.Render(t.Text)
	}

	line := cursor + check + " " + text
	if t.Priority != todo.PriorityNone {
		line += " " + m.styles.Priority(t.Priority).Render(string(t.Priority))
	}
	if !t.CreatedAt.IsZero() {
		line += " " + m.styles.Muted.Render(t.CreatedAt.Local().Format("Jan 2"))
	}
	return line
}

func (m *model) writeToast(b *strings.Builder) {
	if m.toast == nil {
		return
	}
	b.WriteString(m.styles.Notice(m.toast.Kind).Render(m.toast.Message))
	b.WriteString("\n\n")
}

func (m *model) writeDialog(b *strings.Builder) {
	var d strings.Builder
	d.WriteString(m.styles.DialogTitle.Render("Add task"))
	d.WriteString("\n\n")
	d.WriteString(m.input.View())
	d.WriteString("\n\n")
	d.WriteString("Priority: ")
	for i, p := range todo.Priorities() {
		if i > 0 {
			d.WriteString("  ")
		}
		label := m.styles.Priority(p).Render(string(p))
		if p == m.priority {
			label = m.styles.Selected.Render("[" + string(p) + "]")
		}
		d.WriteString(label)
	}
	d.WriteString("\n\n")
	d.WriteString(m.styles.Help.Render("enter add · tab priority · esc cancel"))

	b.WriteString(m.styles.Dialog.Render(d.String()))
	b.WriteString("\n\n")
}

func (m *model) writeHelp(b *strings.Builder) {
	rows := [][2]string{
		{"up/k, down/j", "Move cursor"},
		{"space, x, enter", "Toggle completed"},
		{"d, delete", "Delete task"},
		{"a, n", "Add task"},
		{"t", "Switch light/dark mode"},
		{"?", "Toggle this help screen"},
		{"q, ctrl+c", "Quit"},
	}
	b.WriteString("Keyboard Shortcuts\n\n")
	for _, r := range rows {
		b.WriteString("  " + m.styles.HelpKey.Render(fmt.Sprintf("%-18s", r[0])) + " " + r[1] + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("Press any key to return"))
	b.WriteString("\n")
}

func (m *model) writeFooter(b *strings.Builder) {
	if m.adding {
		return
	}
	b.WriteString(m.styles.Help.Render("a add · space toggle · d delete · t theme · ? help · q quit"))
	b.WriteString("\n")
}
