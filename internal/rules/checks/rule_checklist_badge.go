package checks

import (
	"context"

	"fairapi/internal/assess"
	"fairapi/internal/data"
	"fairapi/internal/readme"
	"fairapi/internal/rules"

	"github.com/google/go-github/v81/github"
)

type ChecklistBadgeRule struct{}

func init() {
	rules.Register(&ChecklistBadgeRule{})
}

func (r *ChecklistBadgeRule) ID() string {
	return assess.CriterionChecklist
}

func (r *ChecklistBadgeRule) Title() string {
	return "Software Quality Checklist"
}

func (r *ChecklistBadgeRule) Description() string {
	return "Verifies that the README carries an OpenSSF (formerly CII) Best Practices badge."
}

func (r *ChecklistBadgeRule) Dependencies(ctx context.Context, repo *github.Repository) ([]data.DependencyKey, error) {
	return badgeDependencies(ctx, repo)
}

func (r *ChecklistBadgeRule) Evaluate(ctx context.Context, repo *github.Repository, dc data.DataContext) (rules.Result, error) {
	return evaluateBadges(repo, r.ID(), dc, readme.ChecklistBadges, "checklist"), nil
}
