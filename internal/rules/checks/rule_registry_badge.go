package checks

import (
	"context"

	"fairapi/internal/assess"
	"fairapi/internal/data"
	"fairapi/internal/readme"
	"fairapi/internal/rules"

	"github.com/google/go-github/v81/github"
)

// RegistryBadgeRule checks that the software is published in a community
// registry, as evidenced by a registry badge in the README.
type RegistryBadgeRule struct{}

func init() {
	rules.Register(&RegistryBadgeRule{})
}

func (r *RegistryBadgeRule) ID() string {
	return assess.CriterionRegistry
}

func (r *RegistryBadgeRule) Title() string {
	return "Community Registry"
}

func (r *RegistryBadgeRule) Description() string {
	return "Verifies that the README carries a badge of a community registry such as PyPI, npm, Conda, CRAN, crates.io, Maven Central, ASCL, the Research Software Directory or the Go package index."
}

func (r *RegistryBadgeRule) Dependencies(ctx context.Context, repo *github.Repository) ([]data.DependencyKey, error) {
	return badgeDependencies(ctx, repo)
}

func (r *RegistryBadgeRule) Evaluate(ctx context.Context, repo *github.Repository, dc data.DataContext) (rules.Result, error) {
	return evaluateBadges(repo, r.ID(), dc, readme.RegistryBadges, "registry"), nil
}
