package todo

import (
	"testing"
	"time"
)

func ids(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSorted(t *testing.T) {
	t1 := baseTime
	t2 := t1.Add(time.Minute)
	t3 := t2.Add(time.Minute)
	t4 := t3.Add(time.Minute)

	tests := []struct {
		name  string
		tasks []Task
		want  []string
	}{
		{
			name: "completion then priority then newest",
			tasks: []Task{
				{ID: "A", Priority: PriorityHigh, CreatedAt: t1},
				{ID: "B", Priority: PriorityHigh, CreatedAt: t2},
				{ID: "C", Completed: true, Priority: PriorityHigh, CreatedAt: t3},
				{ID: "D", Priority: PriorityLow, CreatedAt: t4},
			},
			want: []string{"B", "A", "D", "C"},
		},
		{
			name: "priority order",
			tasks: []Task{
				{ID: "none", Priority: PriorityNone, CreatedAt: t4},
				{ID: "low", Priority: PriorityLow, CreatedAt: t3},
				{ID: "medium", Priority: PriorityMedium, CreatedAt: t2},
				{ID: "high", Priority: PriorityHigh, CreatedAt: t1},
			},
			want: []string{"high", "medium", "low", "none"},
		},
		{
			name: "completed tasks also ordered by priority then newest",
			tasks: []Task{
				{ID: "old-low", Completed: true, Priority: PriorityLow, CreatedAt: t1},
				{ID: "new-low", Completed: true, Priority: PriorityLow, CreatedAt: t2},
				{ID: "high", Completed: true, Priority: PriorityHigh, CreatedAt: t1},
				{ID: "open", Priority: PriorityNone, CreatedAt: t1},
			},
			want: []string{"open", "high", "new-low", "old-low"},
		},
		{
			name: "full ties keep insertion order",
			tasks: []Task{
				{ID: "first", Priority: PriorityMedium, CreatedAt: t1},
				{ID: "second", Priority: PriorityMedium, CreatedAt: t1},
				{ID: "third", Priority: PriorityMedium, CreatedAt: t1},
			},
			want: []string{"first", "second", "third"},
		},
		{
			name:  "empty",
			tasks: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Sorted(tt.tasks))
			if !equalIDs(got, tt.want) {
				t.Errorf("Sorted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortedDoesNotMutateInput(t *testing.T) {
	tasks := []Task{
		{ID: "A", Completed: true, CreatedAt: baseTime},
		{ID: "B", Priority: PriorityHigh, CreatedAt: baseTime},
	}
	before := ids(tasks)

	first := Sorted(tasks)
	second := Sorted(first)

	if !equalIDs(ids(tasks), before) {
		t.Errorf("input reordered: %v", ids(tasks))
	}
	if !equalIDs(ids(first), ids(second)) {
		t.Errorf("Sorted is not idempotent: %v then %v", ids(first), ids(second))
	}
}
