package checks

import (
	"context"

	"fairapi/internal/assess"
	"fairapi/internal/data"
	"fairapi/internal/rules"

	"github.com/google/go-github/v81/github"
)

// RepositoryPublicRule checks that the source code is in a publicly accessible
// repository.
type RepositoryPublicRule struct{}

func init() {
	rules.Register(&RepositoryPublicRule{})
}

func (r *RepositoryPublicRule) ID() string {
	return assess.CriterionRepository
}

func (r *RepositoryPublicRule) Title() string {
	return "Publicly Accessible Repository"
}

func (r *RepositoryPublicRule) Description() string {
	return "Verifies that the software is in a publicly accessible repository with version control."
}

func (r *RepositoryPublicRule) Dependencies(ctx context.Context, repo *github.Repository) ([]data.DependencyKey, error) {
	return []data.DependencyKey{
		data.DepRepoMetadata,
	}, nil
}

func (r *RepositoryPublicRule) Evaluate(ctx context.Context, repo *github.Repository, dc data.DataContext) (rules.Result, error) {
	// Use metadata from context if available, otherwise fallback to repo argument
	var targetRepo *github.Repository
	if val, ok := dc.Get(data.DepRepoMetadata); ok && val != nil {
		if meta, ok := val.(*github.Repository); ok {
			targetRepo = meta
		}
	}

	if targetRepo == nil {
		targetRepo = repo
	}

	if targetRepo == nil {
		return rules.ErrorResult(repo, r.ID(), "Repository metadata not available"), nil
	}

	isPublic := false
	visibility := "unknown"
	if targetRepo.Visibility != nil {
		visibility = targetRepo.GetVisibility()
		isPublic = visibility == "public"
	} else if targetRepo.Private != nil {
		isPublic = !targetRepo.GetPrivate()
		if isPublic {
			visibility = "public"
		} else {
			visibility = "private"
		}
	}

	if !isPublic {
		res := rules.FailResult(repo, r.ID(), "Repository is not publicly accessible")
		return rules.WithEvidence(res, "visibility", visibility), nil
	}

	res := rules.PassResultWithMessage(repo, r.ID(), "Repository is public")
	return rules.WithEvidence(res, "visibility", visibility), nil
}
