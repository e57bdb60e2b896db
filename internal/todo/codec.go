package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// TimeLayout is the persisted createdAt format (ISO-8601, UTC, milliseconds).
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

const schemaURL = "https://github.com/nibzard/taskpad/task.schema.json"

//go:embed task.schema.json
var taskSchemaJSON string

var compileTaskSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(taskSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add task schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile task schema: %w", err)
	}
	return schema, nil
})

// record is the persisted shape of a task.
type record struct {
	ID        string          `json:"id"`
	Text      string          `json:"text"`
	Completed bool            `json:"completed"`
	Priority  Priority        `json:"priority"`
	CreatedAt json.RawMessage `json:"createdAt"`
}

// Encode serializes tasks, in the given order, as a JSON array.
func Encode(tasks []Task) ([]byte, error) {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		createdAt, err := json.Marshal(t.CreatedAt.UTC().Format(TimeLayout))
		if err != nil {
			return nil, fmt.Errorf("marshal createdAt of %s: %w", t.ID, err)
		}
		records = append(records, record{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Priority:  t.Priority,
			CreatedAt: createdAt,
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return data, nil
}

// Decode parses a persisted task array.
//
// A payload that is not a JSON array yields a non-nil error and no tasks.
// Otherwise every record is checked against the task schema; records that do
// not conform, or repeat an earlier id, are skipped and reported in problems.
func Decode(data []byte) (tasks []Task, problems []error, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse tasks: %w", err)
	}

	schema, err := compileTaskSchema()
	if err != nil {
		return nil, nil, err
	}

	tasks = make([]Task, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, rec := range raw {
		path := fmt.Sprintf("[%d]", i)
		task, err := decodeRecord(schema, rec, path)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		if seen[task.ID] {
			problems = append(problems, &ValidationError{
				Path: path + ".id",
				Err:  fmt.Errorf("duplicate id %q", task.ID),
			})
			continue
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}
	return tasks, problems, nil
}

func decodeRecord(schema *jsonschema.Schema, data json.RawMessage, path string) (Task, error) {
	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return Task{}, &ValidationError{Path: path, Err: err}
	}
	if err := schema.Validate(obj); err != nil {
		return Task{}, schemaErrors(path, err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Task{}, &ValidationError{Path: path, Err: err}
	}
	createdAt, err := parseCreatedAt(rec.CreatedAt)
	if err != nil {
		return Task{}, &ValidationError{Path: path + ".createdAt", Err: err}
	}
	if rec.Priority == "" {
		rec.Priority = PriorityNone
	}

	return Task{
		ID:        rec.ID,
		Text:      rec.Text,
		Completed: rec.Completed,
		Priority:  rec.Priority,
		CreatedAt: createdAt,
	}, nil
}

// Timestamps outside years 0000-9999 cannot be written back in TimeLayout.
var (
	minCreatedAt = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxCreatedAt = time.Date(9999, time.December, 31, 23, 59, 59, 999e6, time.UTC)
)

// localLayouts are ISO-8601 forms without an offset. A date alone is UTC,
// a date with a time is local time.
var localLayouts = []struct {
	layout string
	loc    *time.Location
}{
	{"2006-01-02", time.UTC},
	{"2006-01-02T15:04:05.999999999", time.Local},
	{"2006-01-02T15:04", time.Local},
}

// parseCreatedAt accepts an ISO-8601 string, epoch milliseconds as a number,
// or epoch milliseconds as a digit string.
func parseCreatedAt(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, err
		}
		s = strings.TrimSpace(s)
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return fromMillis(float64(ms), s)
		}
		t, err := parseISO(s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
		}
		return checkRange(t.UTC(), s)
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %s", raw)
	}
	return fromMillis(ms, string(raw))
}

func parseISO(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	for _, l := range localLayouts {
		if t, lerr := time.ParseInLocation(l.layout, s, l.loc); lerr == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func fromMillis(ms float64, src string) (time.Time, error) {
	if ms < float64(minCreatedAt.UnixMilli()) || ms > float64(maxCreatedAt.UnixMilli()) {
		return time.Time{}, fmt.Errorf("timestamp %s out of range", src)
	}
	return time.UnixMilli(int64(ms)).UTC(), nil
}

func checkRange(t time.Time, src string) (time.Time, error) {
	if t.Before(minCreatedAt) || t.After(maxCreatedAt) {
		return time.Time{}, fmt.Errorf("timestamp %q out of range", src)
	}
	return t, nil
}

func schemaErrors(path string, err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Path: path, Err: err}
	}
	var errs []error
	collectSchemaErrors(&errs, path, ve)
	return errors.Join(errs...)
}

func collectSchemaErrors(errs *[]error, path string, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: instancePath(path, err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(errs, path, cause)
	}
}

// instancePath appends a schema instance location (a JSON pointer such as
// "#/text" or "/tags/0") to a record path, giving "[2].text" or "[2].tags[0]".
func instancePath(base, ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	var b strings.Builder
	b.WriteString(base)
	for _, tok := range strings.Split(ptr, "/") {
		tok = strings.NewReplacer("~1", "/", "~0", "~").Replace(tok)
		if tok == "" {
			continue
		}
		if _, err := strconv.Atoi(tok); err == nil {
			fmt.Fprintf(&b, "[%s]", tok)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(tok)
	}
	return b.String()
}
