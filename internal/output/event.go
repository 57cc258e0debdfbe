package output

import "fairapi/internal/assess"

// Record is the outcome of assessing one repository reference: either a
// response or a client-safe error.
type Record struct {
	Reference string           `json:"reference"`
	Result    *assess.Response `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	ErrorKind assess.Kind      `json:"error_kind,omitempty"`
}

// NewRecord builds a Record from an assessment outcome. Errors are reduced to
// their classified message so internal details never reach the output.
func NewRecord(reference string, res assess.Result, err error) Record {
	if err != nil {
		c := assess.Classify(err)
		return Record{Reference: reference, Error: c.Message, ErrorKind: c.Kind}
	}
	resp := assess.NewResponse(res)
	return Record{Reference: reference, Result: &resp}
}

// Failed reports whether the assessment did not produce a result.
func (r Record) Failed() bool {
	return r.Result == nil
}

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line):
// - run.started
// - assessment.result
// - run.finished
//
// JSON mode remains an aggregate of Record values.
type Event struct {
	Type string `json:"type"`
	*Record
	Assessments int `json:"assessments,omitempty"`
	ExitCode    int `json:"exit_code,omitempty"`
}

func eventFromRecord(r Record) Event {
	return Event{Type: "assessment.result", Record: &r}
}
