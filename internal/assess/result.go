package assess

import (
	"net/url"
	"sort"
	"strings"
)

// Canonical FAIR recommendation names, in badge order.
const (
	CriterionRepository = "repository"
	CriterionLicense    = "license"
	CriterionRegistry   = "registry"
	CriterionCitation   = "citation"
	CriterionChecklist  = "checklist"
)

// CriteriaOrder is the badge order of the five FAIR recommendations.
var CriteriaOrder = []string{
	CriterionRepository,
	CriterionLicense,
	CriterionRegistry,
	CriterionCitation,
	CriterionChecklist,
}

// Result is what a Scorer produces: a criteria mapping plus the assessed
// location. It is owned by a single request and never cached.
type Result struct {
	URL      string
	Branch   string
	Criteria map[string]bool
	// Details optionally explains individual criteria outcomes.
	Details map[string]string
}

// Response is the HTTP/CLI representation of a Result. Criteria is the
// scorer's mapping unmodified; every other field is derived from it.
type Response struct {
	URL       string            `json:"url"`
	Branch    string            `json:"branch,omitempty"`
	Criteria  map[string]bool   `json:"criteria"`
	Details   map[string]string `json:"details,omitempty"`
	Score     int               `json:"score"`
	MaxScore  int               `json:"max_score"`
	Compliant bool              `json:"compliant"`
	Badge     string            `json:"badge"`
}

// CheckResponse is the flat five-recommendation shape served on /check.
type CheckResponse struct {
	Repository bool   `json:"repository"`
	License    bool   `json:"license"`
	Registry   bool   `json:"registry"`
	Citation   bool   `json:"citation"`
	Checklist  bool   `json:"checklist"`
	Score      int    `json:"score"`
	URL        string `json:"url"`
}

// NewResponse derives score, compliance and badge from r.
func NewResponse(r Result) Response {
	criteria := r.Criteria
	if criteria == nil {
		criteria = map[string]bool{}
	}
	score := 0
	for _, ok := range criteria {
		if ok {
			score++
		}
	}
	return Response{
		URL:       r.URL,
		Branch:    r.Branch,
		Criteria:  criteria,
		Details:   r.Details,
		Score:     score,
		MaxScore:  len(criteria),
		Compliant: len(criteria) > 0 && score == len(criteria),
		Badge:     BadgeURL(criteria),
	}
}

// NewCheckResponse flattens r into the five-recommendation shape. Criteria the
// scorer did not report read as false.
func NewCheckResponse(r Result, requestedURL string) CheckResponse {
	resp := CheckResponse{
		Repository: r.Criteria[CriterionRepository],
		License:    r.Criteria[CriterionLicense],
		Registry:   r.Criteria[CriterionRegistry],
		Citation:   r.Criteria[CriterionCitation],
		Checklist:  r.Criteria[CriterionChecklist],
		URL:        requestedURL,
	}
	for _, ok := range []bool{resp.Repository, resp.License, resp.Registry, resp.Citation, resp.Checklist} {
		if ok {
			resp.Score++
		}
	}
	return resp
}

// OrderedCriteria returns the criteria names of m with the canonical FAIR
// names first (in badge order) and any others sorted after them.
func OrderedCriteria(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, name := range CriteriaOrder {
		if _, ok := m[name]; ok {
			out = append(out, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range m {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

const (
	badgeFilled = "●"
	badgeOpen   = "○"
)

// BadgeURL renders the fair-software.eu shields.io badge for criteria.
func BadgeURL(criteria map[string]bool) string {
	var dots strings.Builder
	score := 0
	for _, name := range OrderedCriteria(criteria) {
		if criteria[name] {
			score++
			dots.WriteString(badgeFilled)
		} else {
			dots.WriteString(badgeOpen)
		}
	}
	return "https://img.shields.io/badge/fair--software.eu-" + url.PathEscape(dots.String()) + "-" + BadgeColor(score, len(criteria))
}

// BadgeColor maps a score to a shields.io colour. For the five FAIR criteria:
// 0-1 red, 2-3 orange, 4 yellow, 5 green. Other criteria counts scale to the
// same bands.
func BadgeColor(score, max int) string {
	if max <= 0 {
		return "red"
	}
	if max != len(CriteriaOrder) {
		score = score * len(CriteriaOrder) / max
	}
	switch {
	case score >= 5:
		return "green"
	case score == 4:
		return "yellow"
	case score >= 2:
		return "orange"
	default:
		return "red"
	}
}
