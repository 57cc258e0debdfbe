package checks

import (
	"context"

	"fairapi/internal/assess"
	"fairapi/internal/data"
	"fairapi/internal/data/models"
	"fairapi/internal/rules"

	"github.com/google/go-github/v81/github"
)

type LicenseExistsRule struct{}

func (r *LicenseExistsRule) ID() string {
	return assess.CriterionLicense
}

func (r *LicenseExistsRule) Title() string {
	return "License"
}

func (r *LicenseExistsRule) Description() string {
	return "Verifies that the repository has a license that GitHub can detect."
}

func (r *LicenseExistsRule) Dependencies(ctx context.Context, repo *github.Repository) ([]data.DependencyKey, error) {
	return []data.DependencyKey{data.DepRepoLicense}, nil
}

func (r *LicenseExistsRule) Evaluate(ctx context.Context, repo *github.Repository, dc data.DataContext) (rules.Result, error) {
	val, ok := dc.Get(data.DepRepoLicense)
	if !ok {
		return rules.ErrorResult(repo, r.ID(), "Dependency missing"), nil
	}
	if val == nil {
		return rules.ErrorResult(repo, r.ID(), "Dependency is nil"), nil
	}

	info, ok := val.(models.LicenseInfo)
	if !ok {
		return rules.ErrorResult(repo, r.ID(), "Invalid dependency type"), nil
	}

	if !info.Found {
		return rules.FailResult(repo, r.ID(), "No license found"), nil
	}

	label := info.Label()
	res := rules.PassResultWithMessage(repo, r.ID(), "License found ("+label+")")
	res = rules.WithEvidence(res, "license", label)
	if info.Path != "" {
		res = rules.WithEvidence(res, "path", info.Path)
	}
	return res, nil
}

func init() {
	rules.Register(&LicenseExistsRule{})
}
