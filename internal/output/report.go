package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"fairapi/internal/assess"
)

// ReportSink renders a Markdown summary of every assessment on Close.
type ReportSink struct {
	path         string
	file         *os.File
	mu           sync.Mutex
	records      []Record
	exitCode     int
	haveExitCode bool
}

func NewReportSink(path string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}

	f, err := createFile(path)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return &ReportSink{path: path, file: f}, nil
}

func (s *ReportSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := v.(type) {
	case Record:
		s.records = append(s.records, t)
	case Event:
		if t.Type == "run.finished" {
			s.exitCode = t.ExitCode
			s.haveExitCode = true
		}
	}
	return nil
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.file.WriteString(s.render())
	if closeErr := s.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func (s *ReportSink) render() string {
	records := make([]Record, len(s.records))
	copy(records, s.records)
	sort.SliceStable(records, func(i, j int) bool { return records[i].Reference < records[j].Reference })

	// Columns are the union of all reported criteria.
	union := make(map[string]bool)
	var assessed, compliant int
	for _, r := range records {
		if r.Failed() {
			continue
		}
		assessed++
		if r.Result.Compliant {
			compliant++
		}
		for name := range r.Result.Criteria {
			union[name] = true
		}
	}
	columns := assess.OrderedCriteria(union)

	var b strings.Builder
	b.WriteString("# FAIR Software Assessment Report\n\n")
	fmt.Fprintf(&b, "- Assessed: %d of %d\n", assessed, len(records))
	fmt.Fprintf(&b, "- Compliant: %d\n", compliant)
	if s.haveExitCode {
		fmt.Fprintf(&b, "- Exit code: %d\n", s.exitCode)
	}
	b.WriteString("\n## Results\n\n")

	if assessed == 0 {
		b.WriteString("_No repository could be assessed._\n")
	} else {
		b.WriteString("| Repository | Branch | " + strings.Join(columns, " | ") + " | Score |\n")
		b.WriteString("|---|---|" + strings.Repeat("---|", len(columns)) + "---|\n")
		for _, r := range records {
			if r.Failed() {
				continue
			}
			resp := r.Result
			row := []string{fmt.Sprintf("[%s](%s)", escapeCell(r.Reference), resp.URL), escapeCell(resp.Branch)}
			for _, c := range columns {
				ok, reported := resp.Criteria[c]
				switch {
				case !reported:
					row = append(row, "")
				case ok:
					row = append(row, "✓")
				default:
					row = append(row, "✗")
				}
			}
			row = append(row, fmt.Sprintf("![%d/%d](%s)", resp.Score, resp.MaxScore, resp.Badge))
			b.WriteString("| " + strings.Join(row, " | ") + " |\n")
		}
	}

	var unmet []string
	for _, r := range records {
		if r.Failed() {
			continue
		}
		for _, c := range assess.OrderedCriteria(r.Result.Criteria) {
			if r.Result.Criteria[c] {
				continue
			}
			line := fmt.Sprintf("- %s `%s`", r.Reference, c)
			if d := r.Result.Details[c]; d != "" {
				line += ": " + d
			}
			unmet = append(unmet, line)
		}
	}
	if len(unmet) > 0 {
		b.WriteString("\n## Unmet criteria\n\n")
		b.WriteString(strings.Join(unmet, "\n") + "\n")
	}

	var failed []string
	for _, r := range records {
		if r.Failed() {
			failed = append(failed, fmt.Sprintf("- %s (%s): %s", r.Reference, r.ErrorKind, r.Error))
		}
	}
	if len(failed) > 0 {
		b.WriteString("\n## Not assessed\n\n")
		b.WriteString(strings.Join(failed, "\n") + "\n")
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
