package todo

import (
	"fmt"
	"testing"
	"time"
)

func benchTasks(n int) []Task {
	tasks := make([]Task, n)
	for i := range tasks {
		tasks[i] = Task{
			ID:        fmt.Sprintf("task-%03d", i),
			Text:      fmt.Sprintf("Task %d", i),
			Completed: i%3 == 0,
			Priority:  Priorities()[i%4],
			CreatedAt: baseTime.Add(time.Duration(i) * time.Minute),
		}
	}
	return tasks
}

// BenchmarkSorted benchmarks display ordering of 100 tasks.
func BenchmarkSorted(b *testing.B) {
	tasks := benchTasks(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Sorted(tasks)
	}
}

// BenchmarkEncode benchmarks serializing 100 tasks.
func BenchmarkEncode(b *testing.B) {
	tasks := benchTasks(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Encode(tasks); err != nil {
			b.Fatalf("Encode failed: %v", err)
		}
	}
}

// BenchmarkDecode benchmarks validating and parsing 100 tasks.
func BenchmarkDecode(b *testing.B) {
	data, err := Encode(benchTasks(100))
	if err != nil {
		b.Fatalf("Encode failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Decode(data); err != nil {
			b.Fatalf("Decode failed: %v", err)
		}
	}
}
