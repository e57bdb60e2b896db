package todo

import "sort"

// Sorted returns a copy of tasks in display order:
// incomplete before completed, then by priority (high first),
// then newest first. Tasks equal on all three keep their relative order.
func Sorted(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j])
	})
	return sorted
}

// Less reports whether a is displayed before b.
func Less(a, b Task) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra < rb
	}
	return a.CreatedAt.After(b.CreatedAt)
}
