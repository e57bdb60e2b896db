package todo

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var baseTime = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := []Task{
		{ID: "a", Text: "Buy milk", Priority: PriorityHigh, CreatedAt: baseTime},
		{ID: "b", Text: "  padded text  ", Completed: true, Priority: PriorityNone, CreatedAt: baseTime.Add(1500 * time.Millisecond)},
		{ID: "c", Text: "unicode ✓ \"quoted\"", Priority: PriorityLow, CreatedAt: baseTime.Add(-48 * time.Hour)},
	}

	data, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, problems, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if len(decoded) != len(original) {
		t.Fatalf("decoded %d tasks, want %d", len(decoded), len(original))
	}
	for i := range original {
		want, got := original[i], decoded[i]
		if got.ID != want.ID || got.Text != want.Text || got.Completed != want.Completed || got.Priority != want.Priority {
			t.Errorf("task %d: got %+v, want %+v", i, got, want)
		}
		if !got.CreatedAt.Equal(want.CreatedAt) {
			t.Errorf("task %d createdAt: got %v, want %v", i, got.CreatedAt, want.CreatedAt)
		}
	}
}

func TestEncodeFormat(t *testing.T) {
	t.Run("empty list encodes as empty array", func(t *testing.T) {
		data, err := Encode(nil)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if string(data) != "[]" {
			t.Errorf("got %s, want []", data)
		}
	})

	t.Run("fields and timestamp layout", func(t *testing.T) {
		local := baseTime.In(time.FixedZone("CET", 3600))
		data, err := Encode([]Task{{ID: "a", Text: "x", Priority: PriorityMedium, CreatedAt: local}})
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		want := `[{"id":"a","text":"x","completed":false,"priority":"medium","createdAt":"2024-01-01T09:30:00.000Z"}]`
		if string(data) != want {
			t.Errorf("got  %s\nwant %s", data, want)
		}
	})
}

func TestDecodeMalformed(t *testing.T) {
	inputs := []string{
		"not json",
		`{"id":"a"}`,
		`[{"id":"a"}`,
		`"todos"`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tasks, _, err := Decode([]byte(input))
			if err == nil {
				t.Fatal("expected error for malformed payload")
			}
			if len(tasks) != 0 {
				t.Errorf("expected no tasks, got %d", len(tasks))
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, input := range []string{"[]", "null"} {
		tasks, problems, err := Decode([]byte(input))
		if err != nil {
			t.Fatalf("Decode(%s) failed: %v", input, err)
		}
		if len(tasks) != 0 || len(problems) != 0 {
			t.Errorf("Decode(%s) = %v, %v; want empty", input, tasks, problems)
		}
	}
}

func TestDecodeDropsInvalidRecords(t *testing.T) {
	payload := `[
		{"id":"ok1","text":"keep me","completed":false,"priority":"high","createdAt":"2024-01-01T09:30:00.000Z"},
		{"id":"bad-priority","text":"x","priority":"urgent","createdAt":"2024-01-01T09:30:00.000Z"},
		{"text":"no id","createdAt":"2024-01-01T09:30:00.000Z"},
		{"id":"empty-text","text":"","createdAt":"2024-01-01T09:30:00.000Z"},
		{"id":"bad-completed","text":"x","completed":"yes","createdAt":"2024-01-01T09:30:00.000Z"},
		{"id":"bad-time","text":"x","createdAt":"yesterday"},
		{"id":"no-time","text":"x"},
		42,
		{"id":"ok1","text":"duplicate","createdAt":"2024-01-01T09:30:00.000Z"},
		{"id":"ok2","text":"keep me too","createdAt":1704101400000}
	]`

	tasks, problems, err := Decode([]byte(payload))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("kept %d tasks, want 2: %+v", len(tasks), tasks)
	}
	if tasks[0].ID != "ok1" || tasks[0].Text != "keep me" {
		t.Errorf("first task = %+v", tasks[0])
	}
	if tasks[1].ID != "ok2" {
		t.Errorf("second task = %+v", tasks[1])
	}
	if len(problems) != 8 {
		t.Errorf("got %d problems, want 8: %v", len(problems), problems)
	}
	for _, p := range problems {
		var ve *ValidationError
		if !errors.As(p, &ve) {
			t.Errorf("problem %v is not a *ValidationError", p)
		}
		if !strings.HasPrefix(p.Error(), "[") {
			t.Errorf("problem %q should carry a record path", p)
		}
	}
}

func TestDecodeDefaults(t *testing.T) {
	tasks, problems, err := Decode([]byte(`[{"id":"a","text":"x","createdAt":"2024-01-01T09:30:00Z"}]`))
	if err != nil || len(problems) != 0 {
		t.Fatalf("Decode failed: %v %v", err, problems)
	}
	if tasks[0].Completed {
		t.Error("completed should default to false")
	}
	if tasks[0].Priority != PriorityNone {
		t.Errorf("priority = %q, want none", tasks[0].Priority)
	}
}

func TestParseCreatedAt(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"iso with millis", `"2024-01-01T09:30:00.000Z"`},
		{"iso without fraction", `"2024-01-01T09:30:00Z"`},
		{"iso with offset", `"2024-01-01T10:30:00+01:00"`},
		{"epoch millis number", `1704101400000`},
		{"epoch millis string", `"1704101400000"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCreatedAt([]byte(tt.input))
			if err != nil {
				t.Fatalf("parseCreatedAt(%s) failed: %v", tt.input, err)
			}
			if !got.Equal(baseTime) {
				t.Errorf("got %v, want %v", got, baseTime)
			}
			if got.Location() != time.UTC {
				t.Errorf("location = %v, want UTC", got.Location())
			}
		})
	}

	if _, err := parseCreatedAt([]byte(`"last tuesday"`)); err == nil {
		t.Error("expected error for unparseable timestamp")
	}

	t.Run("iso without offset", func(t *testing.T) {
		tests := []struct {
			input string
			want  time.Time
		}{
			{`"2024-01-01"`, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			{`"2024-01-01T10:00:00"`, time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)},
			{`"2024-01-01T10:00:00.250"`, time.Date(2024, 1, 1, 10, 0, 0, 250e6, time.Local)},
			{`"2024-01-01T10:00"`, time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)},
		}
		for _, tt := range tests {
			got, err := parseCreatedAt([]byte(tt.input))
			if err != nil {
				t.Errorf("parseCreatedAt(%s) failed: %v", tt.input, err)
				continue
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseCreatedAt(%s) = %v, want %v", tt.input, got, tt.want)
			}
		}
	})

	t.Run("out of range", func(t *testing.T) {
		for _, input := range []string{
			`1e30`,
			`-1e30`,
			`253402300800000`,
			`"253402300800000"`,
			`-62167219200001`,
			`"9999-12-31T23:59:59-01:00"`,
		} {
			if got, err := parseCreatedAt([]byte(input)); err == nil {
				t.Errorf("parseCreatedAt(%s) = %v, want error", input, got)
			}
		}
		for _, input := range []string{`253402300799999`, `-62167219200000`} {
			if _, err := parseCreatedAt([]byte(input)); err != nil {
				t.Errorf("parseCreatedAt(%s) failed: %v", input, err)
			}
		}
	})
}

func TestDecodeAcceptedRecordsSurviveEncode(t *testing.T) {
	payload := `[` +
		`{"id":"a","text":"far future","createdAt":1e30},` +
		`{"id":"b","text":"date only","createdAt":"2024-01-01"},` +
		`{"id":"c","text":"last ms","createdAt":253402300799999},` +
		`{"id":"d","text":"year zero","createdAt":"0000-01-01T00:00:00Z"}]`

	tasks, problems, err := Decode([]byte(payload))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(problems) != 1 {
		t.Errorf("problems: got %v, want one for the out of range record", problems)
	}
	if len(tasks) != 3 {
		t.Fatalf("tasks: got %d, want 3", len(tasks))
	}

	data, err := Encode(tasks)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	again, problems, err := Decode(data)
	if err != nil || len(problems) != 0 {
		t.Fatalf("re-Decode: err=%v problems=%v", err, problems)
	}
	if len(again) != len(tasks) {
		t.Fatalf("re-Decode: got %d tasks, want %d", len(again), len(tasks))
	}
	for i := range tasks {
		if !again[i].CreatedAt.Equal(tasks[i].CreatedAt) {
			t.Errorf("task %s createdAt: got %v, want %v", tasks[i].ID, again[i].CreatedAt, tasks[i].CreatedAt)
		}
	}
}

func TestInstancePath(t *testing.T) {
	tests := []struct {
		base, ptr, want string
	}{
		{"[2]", "", "[2]"},
		{"[2]", "#", "[2]"},
		{"[2]", "#/text", "[2].text"},
		{"[2]", "/createdAt", "[2].createdAt"},
		{"", "/0/priority", "[0].priority"},
		{"[0]", "/a~1b/c~0d", "[0].a/b.c~d"},
	}
	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			if got := instancePath(tt.base, tt.ptr); got != tt.want {
				t.Errorf("instancePath(%q, %q) = %q, want %q", tt.base, tt.ptr, got, tt.want)
			}
		})
	}
}
