package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileSink_InferFormat(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.json", "out.ndjson", "out.jsonl"} {
		s, err := NewFileSink(filepath.Join(dir, name), "")
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", name, err)
		}
		_ = s.Close()
	}

	if _, err := NewFileSink(filepath.Join(dir, "out.unknown"), ""); err == nil {
		t.Fatalf("expected error for unknown extension")
	}
	if _, err := NewFileSink(filepath.Join(dir, "out.json"), "xml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if _, err := NewFileSink("", "json"); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestFileSink_JSON_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "results.json")
	s, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	_ = s.Write(Event{Type: "run.started"})
	_ = s.Write(compliantRecord())
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var got []Record
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 1 || !got[0].Result.Compliant {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestFileSink_NDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.ndjson")
	s, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	_ = s.Write(Event{Type: "run.started", Assessments: 1})
	_ = s.Write(partialRecord())
	_ = s.Write(Event{Type: "run.finished", ExitCode: 1})
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], `"type":"assessment.result"`) {
		t.Fatalf("expected assessment.result event, got %s", lines[1])
	}
}
