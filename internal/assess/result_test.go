package assess

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewResponse_PassesCriteriaThrough(t *testing.T) {
	criteria := map[string]bool{"open_source": true, "has_license": true, "has_registry": false}
	resp := NewResponse(Result{URL: "https://example.com/org/repo", Criteria: criteria})

	assert.Equal(t, map[string]bool{"open_source": true, "has_license": true, "has_registry": false}, resp.Criteria)
	assert.Equal(t, 2, resp.Score)
	assert.Equal(t, 3, resp.MaxScore)
	assert.False(t, resp.Compliant)
	assert.Equal(t, "https://example.com/org/repo", resp.URL)
}

func TestNewResponse_AllPassIsCompliant(t *testing.T) {
	resp := NewResponse(Result{Criteria: map[string]bool{
		CriterionRepository: true,
		CriterionLicense:    true,
		CriterionRegistry:   true,
		CriterionCitation:   true,
		CriterionChecklist:  true,
	}})
	assert.True(t, resp.Compliant)
	assert.Equal(t, 5, resp.Score)
	assert.Equal(t, "https://img.shields.io/badge/fair--software.eu-%E2%97%8F%E2%97%8F%E2%97%8F%E2%97%8F%E2%97%8F-green", resp.Badge)
}

func TestNewResponse_EmptyCriteriaIsNotCompliant(t *testing.T) {
	resp := NewResponse(Result{})
	assert.NotNil(t, resp.Criteria)
	assert.False(t, resp.Compliant)
	assert.Equal(t, 0, resp.MaxScore)
}

func TestBadgeURL_UsesCanonicalOrder(t *testing.T) {
	criteria := map[string]bool{
		CriterionChecklist:  false,
		CriterionCitation:   true,
		CriterionRegistry:   false,
		CriterionLicense:    true,
		CriterionRepository: true,
	}
	// ●●○●○
	want := "https://img.shields.io/badge/fair--software.eu-%E2%97%8F%E2%97%8F%E2%97%8B%E2%97%8F%E2%97%8B-orange"
	assert.Equal(t, want, BadgeURL(criteria))
}

func TestBadgeColor(t *testing.T) {
	tests := []struct {
		score, max int
		want       string
	}{
		{0, 5, "red"},
		{1, 5, "red"},
		{2, 5, "orange"},
		{3, 5, "orange"},
		{4, 5, "yellow"},
		{5, 5, "green"},
		{3, 3, "green"},
		{0, 0, "red"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.score, tt.max), func(t *testing.T) {
			assert.Equal(t, tt.want, BadgeColor(tt.score, tt.max))
		})
	}
}

func TestOrderedCriteria(t *testing.T) {
	got := OrderedCriteria(map[string]bool{"zeta": true, CriterionLicense: false, "alpha": true, CriterionRepository: true})
	assert.Equal(t, []string{CriterionRepository, CriterionLicense, "alpha", "zeta"}, got)
}

func TestNewCheckResponse(t *testing.T) {
	res := Result{Criteria: map[string]bool{
		CriterionRepository: true,
		CriterionLicense:    true,
		CriterionCitation:   true,
	}}
	got := NewCheckResponse(res, "https://github.com/acme/widget")
	assert.Equal(t, CheckResponse{
		Repository: true,
		License:    true,
		Citation:   true,
		Score:      3,
		URL:        "https://github.com/acme/widget",
	}, got)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   Kind
		wantStatus int
		wantMsg    string
	}{
		{name: "input", err: &InputError{Message: "bad"}, wantKind: KindInput, wantStatus: http.StatusBadRequest, wantMsg: "bad"},
		{name: "wrapped scoring", err: fmt.Errorf("ctx: %w", &ScoringError{Message: "repository not found", Err: errors.New("GET https://api.github.com/repos/x: 404")}), wantKind: KindScoring, wantStatus: http.StatusBadRequest, wantMsg: "repository not found"},
		{name: "unavailable", err: &UnavailableError{Message: "rate limited"}, wantKind: KindUnavailable, wantStatus: http.StatusServiceUnavailable, wantMsg: "rate limited"},
		{name: "deadline", err: fmt.Errorf("fetch: %w", context.DeadlineExceeded), wantKind: KindUnavailable, wantStatus: http.StatusServiceUnavailable, wantMsg: "assessment timed out"},
		{name: "canceled", err: fmt.Errorf("fetch: %w", context.Canceled), wantKind: KindCanceled, wantStatus: http.StatusServiceUnavailable, wantMsg: "assessment canceled"},
		{name: "internal", err: errors.New("nil pointer in /src/secret/path.go"), wantKind: KindInternal, wantStatus: http.StatusInternalServerError, wantMsg: InternalMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.err)
			assert.Equal(t, tt.wantKind, c.Kind)
			assert.Equal(t, tt.wantStatus, c.StatusCode)
			assert.Equal(t, tt.wantMsg, c.Message)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	inner := errors.New("boom")
	assert.Equal(t, "not found: boom", (&ScoringError{Message: "not found", Err: inner}).Error())
	assert.Equal(t, "not found", (&ScoringError{Message: "not found"}).Error())
	assert.Equal(t, "down: boom", (&UnavailableError{Message: "down", Err: inner}).Error())
	assert.ErrorIs(t, &UnavailableError{Message: "down", Err: inner}, inner)
}
