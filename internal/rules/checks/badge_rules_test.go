package checks

import (
	"context"
	"testing"

	"fairapi/internal/data"
	"fairapi/internal/data/models"
	"fairapi/internal/rules"

	"github.com/google/go-github/v81/github"
)

func TestBadgeRules_Evaluate(t *testing.T) {
	repo := &github.Repository{FullName: github.Ptr("acme/repo")}

	badges := func(urls ...string) map[data.DependencyKey]any {
		return map[data.DependencyKey]any{data.DepRepoReadmeBadges: models.BadgeSet{URLs: urls}}
	}

	tests := []struct {
		name           string
		rule           rules.Rule
		data           map[data.DependencyKey]any
		expectedStatus rules.Status
		expectedBadge  string
	}{
		{
			name:           "registry PASS with PyPI badge",
			rule:           &RegistryBadgeRule{},
			data:           badges("https://github.com/acme/repo/actions", "https://img.shields.io/pypi/v/repo.svg"),
			expectedStatus: rules.StatusPass,
			expectedBadge:  "https://img.shields.io/pypi/v/repo.svg",
		},
		{
			name:           "registry FAIL without registry badge",
			rule:           &RegistryBadgeRule{},
			data:           badges("https://img.shields.io/badge/license-MIT-blue"),
			expectedStatus: rules.StatusFail,
		},
		{
			name:           "registry FAIL with empty README",
			rule:           &RegistryBadgeRule{},
			data:           badges(),
			expectedStatus: rules.StatusFail,
		},
		{
			name:           "checklist PASS with best practices badge",
			rule:           &ChecklistBadgeRule{},
			data:           badges("https://bestpractices.coreinfrastructure.org/projects/4630/badge"),
			expectedStatus: rules.StatusPass,
			expectedBadge:  "https://bestpractices.coreinfrastructure.org/projects/4630/badge",
		},
		{
			name:           "checklist FAIL with registry badge only",
			rule:           &ChecklistBadgeRule{},
			data:           badges("https://img.shields.io/pypi/v/repo.svg"),
			expectedStatus: rules.StatusFail,
		},
		{
			name:           "ERROR when dependency missing",
			rule:           &RegistryBadgeRule{},
			data:           map[data.DependencyKey]any{},
			expectedStatus: rules.StatusError,
		},
		{
			name:           "ERROR when nil",
			rule:           &ChecklistBadgeRule{},
			data:           map[data.DependencyKey]any{data.DepRepoReadmeBadges: nil},
			expectedStatus: rules.StatusError,
		},
		{
			name:           "ERROR when wrong type",
			rule:           &ChecklistBadgeRule{},
			data:           map[data.DependencyKey]any{data.DepRepoReadmeBadges: []string{"x"}},
			expectedStatus: rules.StatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.rule.Evaluate(context.Background(), repo, data.NewMapDataContext(tt.data))
			if err != nil {
				t.Fatalf("Evaluate error: %v", err)
			}
			if res.Status != tt.expectedStatus {
				t.Fatalf("want %v, got %v (message: %s)", tt.expectedStatus, res.Status, res.Message)
			}
			if res.Evidence["badge"] != tt.expectedBadge {
				t.Fatalf("want badge evidence %q, got %q", tt.expectedBadge, res.Evidence["badge"])
			}
		})
	}
}

func TestCitationRule_Evaluate(t *testing.T) {
	rule := &CitationRule{}
	repo := &github.Repository{FullName: github.Ptr("acme/repo")}

	tests := []struct {
		name           string
		data           map[data.DependencyKey]any
		expectedStatus rules.Status
		expectedFile   string
		expectedBadge  string
	}{
		{
			name: "PASS with CITATION.cff",
			data: map[data.DependencyKey]any{
				data.DepRepoRootFiles:    models.RootFiles{Names: []string{"README.md", "CITATION.cff"}},
				data.DepRepoReadmeBadges: models.BadgeSet{},
			},
			expectedStatus: rules.StatusPass,
			expectedFile:   "CITATION.cff",
		},
		{
			name: "PASS with codemeta.json in other casing",
			data: map[data.DependencyKey]any{
				data.DepRepoRootFiles:    models.RootFiles{Names: []string{"CodeMeta.json"}},
				data.DepRepoReadmeBadges: models.BadgeSet{},
			},
			expectedStatus: rules.StatusPass,
			expectedFile:   "codemeta.json",
		},
		{
			name: "PASS with Zenodo badge only",
			data: map[data.DependencyKey]any{
				data.DepRepoRootFiles:    models.RootFiles{Names: []string{"README.md"}},
				data.DepRepoReadmeBadges: models.BadgeSet{URLs: []string{"https://zenodo.org/badge/DOI/10.5281/zenodo.1234.svg"}},
			},
			expectedStatus: rules.StatusPass,
			expectedBadge:  "https://zenodo.org/badge/DOI/10.5281/zenodo.1234.svg",
		},
		{
			name: "FAIL without file or badge",
			data: map[data.DependencyKey]any{
				data.DepRepoRootFiles:    models.RootFiles{Names: []string{"README.md", "LICENSE"}},
				data.DepRepoReadmeBadges: models.BadgeSet{URLs: []string{"https://img.shields.io/pypi/v/x"}},
			},
			expectedStatus: rules.StatusFail,
		},
		{
			name: "ERROR when root files missing",
			data: map[data.DependencyKey]any{
				data.DepRepoReadmeBadges: models.BadgeSet{},
			},
			expectedStatus: rules.StatusError,
		},
		{
			name: "ERROR when root files wrong type",
			data: map[data.DependencyKey]any{
				data.DepRepoRootFiles:    []string{"CITATION.cff"},
				data.DepRepoReadmeBadges: models.BadgeSet{},
			},
			expectedStatus: rules.StatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := rule.Evaluate(context.Background(), repo, data.NewMapDataContext(tt.data))
			if err != nil {
				t.Fatalf("Evaluate error: %v", err)
			}
			if res.Status != tt.expectedStatus {
				t.Fatalf("want %v, got %v (message: %s)", tt.expectedStatus, res.Status, res.Message)
			}
			if res.Evidence["file"] != tt.expectedFile {
				t.Fatalf("want file evidence %q, got %q", tt.expectedFile, res.Evidence["file"])
			}
			if res.Evidence["badge"] != tt.expectedBadge {
				t.Fatalf("want badge evidence %q, got %q", tt.expectedBadge, res.Evidence["badge"])
			}
		})
	}
}

func TestRegisteredCriteria(t *testing.T) {
	want := []string{"repository", "license", "registry", "citation", "checklist"}
	got := rules.List()
	if len(got) != len(want) {
		t.Fatalf("expected %d registered rules, got %d", len(want), len(got))
	}
	for i, r := range got {
		if r.ID() != want[i] {
			t.Fatalf("rule %d: want %q, got %q", i, want[i], r.ID())
		}
		if r.Title() == "" || r.Description() == "" {
			t.Fatalf("rule %q is missing title or description", r.ID())
		}
	}
}
