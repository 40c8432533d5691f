package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"folio/pkg/api"
)

func sample() []api.Project {
	return []api.Project{
		{ID: "orrery", Title: "Solar System Orrery", Date: "2024-03-01", Tags: []string{"webgl", "graphics"}},
		{ID: "wip", Title: "Tab\there", Draft: true, Private: true},
	}
}

func TestWritePlainProjects(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePlainProjects(&buf, sample(), true); err != nil {
		t.Fatalf("plain: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "id") {
		t.Fatalf("missing header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "webgl,graphics") {
		t.Fatalf("tags not joined: %q", lines[1])
	}
	if !strings.Contains(lines[2], "\\t") {
		t.Fatalf("tab in title not escaped: %q", lines[2])
	}
	if !strings.Contains(lines[2], "dp") {
		t.Fatalf("flags column missing: %q", lines[2])
	}
}

func TestWritePlainProjectsNoHeaders(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePlainProjects(&buf, sample(), false); err != nil {
		t.Fatalf("plain: %v", err)
	}
	if strings.HasPrefix(buf.String(), "id") {
		t.Fatalf("unexpected header:\n%s", buf.String())
	}
}

func TestFlags(t *testing.T) {
	if got := Flags(api.Project{}); got != "-" {
		t.Fatalf("public flags = %q, want -", got)
	}
	if got := Flags(api.Project{Draft: true, Archived: true, Private: true}); got != "dap" {
		t.Fatalf("flags = %q, want dap", got)
	}
}

func TestWriteJSONProjectsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSONProjects(&buf, sample(), false); err != nil {
		t.Fatalf("json: %v", err)
	}
	var got []api.Project
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 || got[0].ID != "orrery" {
		t.Fatalf("unexpected decode: %+v", got)
	}
}

func TestWriteNDJSONProjects(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNDJSONProjects(&buf, sample()); err != nil {
		t.Fatalf("ndjson: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one JSON object per line, got %d", len(lines))
	}
	for _, line := range lines {
		var p api.Project
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			t.Fatalf("line %q: %v", line, err)
		}
	}
}
