package kvstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDir(t *testing.T) {
	t.Run("empty path returns error", func(t *testing.T) {
		if _, err := NewDir("  "); err == nil {
			t.Fatal("expected error for empty path")
		}
	})

	t.Run("get on missing key", func(t *testing.T) {
		d, err := NewDir(filepath.Join(t.TempDir(), "storage"))
		if err != nil {
			t.Fatalf("NewDir failed: %v", err)
		}
		v, ok, err := d.Get("todos")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok || v != "" {
			t.Errorf("Get(missing) = %q, %v", v, ok)
		}
	})

	t.Run("set creates dir and overwrites", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "nested", "storage")
		d, _ := NewDir(root)

		if err := d.Set("todos", "[1]"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := d.Set("todos", "[2]"); err != nil {
			t.Fatalf("second Set failed: %v", err)
		}
		v, ok, err := d.Get("todos")
		if err != nil || !ok {
			t.Fatalf("Get failed: %v %v", ok, err)
		}
		if v != "[2]" {
			t.Errorf("Get = %q, want [2]", v)
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			t.Fatalf("ReadDir failed: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected only the key file, found %d entries", len(entries))
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		d, _ := NewDir(t.TempDir())
		_ = d.Set("todos", "[]")
		_ = d.Set("todo-theme", "dark")
		if v, _, _ := d.Get("todo-theme"); v != "dark" {
			t.Errorf("theme = %q", v)
		}
		if v, _, _ := d.Get("todos"); v != "[]" {
			t.Errorf("todos = %q", v)
		}
	})

	t.Run("delete", func(t *testing.T) {
		d, _ := NewDir(t.TempDir())
		_ = d.Set("k", "v")
		if err := d.Delete("k"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, ok, _ := d.Get("k"); ok {
			t.Error("key still present after delete")
		}
		if err := d.Delete("k"); err != nil {
			t.Errorf("Delete of absent key should succeed, got %v", err)
		}
	})

	t.Run("key path stays inside dir", func(t *testing.T) {
		d, _ := NewDir(t.TempDir())
		p := d.KeyPath("../../etc/passwd")
		if filepath.Dir(p) != d.Path {
			t.Errorf("KeyPath escaped storage dir: %s", p)
		}
	})
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"todos", "todos"},
		{"todo-theme", "todo-theme"},
		{"a/b", "a_b"},
		{"..", "_"},
		{".hidden", "hidden"},
		{"", "_"},
		{"spaces here", "spaces_here"},
	}
	for _, tt := range tests {
		if got := sanitizeKey(tt.input); got != tt.want {
			t.Errorf("sanitizeKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	if _, ok, _ := m.Get("k"); ok {
		t.Error("new Memory should be empty")
	}
	_ = m.Set("k", "v1")
	_ = m.Set("k", "v2")
	if v, ok, _ := m.Get("k"); !ok || v != "v2" {
		t.Errorf("Get = %q, %v", v, ok)
	}
	_ = m.Delete("k")
	if _, ok, _ := m.Get("k"); ok {
		t.Error("key present after Delete")
	}

	var zero Memory
	if err := zero.Set("k", "v"); err != nil {
		t.Errorf("zero Memory Set failed: %v", err)
	}
}
