package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"fairapi/internal/assess"
)

// ConsoleSink prints assessment records to a terminal or pipe.
//
// Formats:
//   - text: one criteria table per assessment
//   - json: aggregates records and writes a single JSON array on Close
//   - ndjson: streams Event values (one JSON object per line)
type ConsoleSink struct {
	writer  io.Writer
	format  string
	mu      sync.Mutex
	records []Record
	// failedOnly hides assessments that met every criterion.
	failedOnly bool
}

func NewConsoleSink(w io.Writer, format string, failedOnly bool) (*ConsoleSink, error) {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "json" && format != "ndjson" {
		return nil, fmt.Errorf("unsupported console format: %s", format)
	}
	return &ConsoleSink{writer: w, format: format, failedOnly: failedOnly}, nil
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := v.(Record); ok && s.failedOnly && !r.Failed() && r.Result.Compliant {
		return nil
	}

	switch s.format {
	case "json":
		if r, ok := v.(Record); ok {
			s.records = append(s.records, r)
		}
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
		case Record:
			if err := encoder.Encode(eventFromRecord(t)); err != nil {
				return err
			}
		default:
			return nil
		}
		return flushIfPossible(s.writer)
	default:
		r, ok := v.(Record)
		if !ok {
			// Ignore events in text mode.
			return nil
		}
		if err := writeText(s.writer, r); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format != "json" {
		return nil
	}
	records := s.records
	if records == nil {
		records = []Record{}
	}
	encoder := json.NewEncoder(s.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return err
	}
	return flushIfPossible(s.writer)
}

func writeText(w io.Writer, r Record) error {
	if r.Failed() {
		_, err := fmt.Fprintf(w, "%s %s: %s\n\n", failMark, bold(r.Reference), red(r.Error))
		return err
	}

	resp := r.Result
	header := bold(resp.URL)
	if resp.Branch != "" {
		header += fmt.Sprintf(" (%s)", resp.Branch)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	table := NewTable(w, []string{"Criterion", "Met", "Details"})
	for _, name := range assess.OrderedCriteria(resp.Criteria) {
		if err := table.Append([]string{cyan(name), mark(resp.Criteria[name]), resp.Details[name]}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	score := fmt.Sprintf("%d/%d", resp.Score, resp.MaxScore)
	_, err := fmt.Fprintf(w, "score: %s  badge: %s\n\n", scoreColor(resp.Score, resp.MaxScore, score), resp.Badge)
	return err
}
