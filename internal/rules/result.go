package rules

type Status string

const (
	StatusPass  Status = "PASS"
	StatusFail  Status = "FAIL"
	StatusError Status = "ERROR"
)

type Result struct {
	RuleID  string `json:"rule_id"`
	Repo    string `json:"repo"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	// Evidence contains simple key-value string pairs supporting the result,
	// such as the matched badge URL or citation file.
	Evidence map[string]string `json:"evidence,omitempty"`
}

// Passed reports whether the criterion is met.
func (r Result) Passed() bool {
	return r.Status == StatusPass
}
