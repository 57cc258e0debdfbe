package rules

import (
	"context"

	"fairapi/internal/data"
	"fairapi/internal/data/models"

	"github.com/google/go-github/v81/github"
)

// SkipReasonWrapper wraps a Rule so that a failure is reported as a pass when
// the repository config gives a reason to skip the criterion.
type SkipReasonWrapper struct {
	Rule
}

// Unwrap returns the wrapped rule.
func (w *SkipReasonWrapper) Unwrap() Rule {
	return w.Rule
}

// Dependencies returns the inner rule's dependencies plus the repository config.
func (w *SkipReasonWrapper) Dependencies(ctx context.Context, repo *github.Repository) ([]data.DependencyKey, error) {
	deps, err := w.Rule.Dependencies(ctx, repo)
	if err != nil {
		return nil, err
	}
	for _, d := range deps {
		if d == data.DepRepoConfigFile {
			return deps, nil
		}
	}
	out := make([]data.DependencyKey, 0, len(deps)+1)
	out = append(out, deps...)
	return append(out, data.DepRepoConfigFile), nil
}

// Evaluate calls the inner rule's Evaluate and then applies the skip reason.
func (w *SkipReasonWrapper) Evaluate(ctx context.Context, repo *github.Repository, dc data.DataContext) (Result, error) {
	result, err := w.Rule.Evaluate(ctx, repo, dc)
	if err != nil {
		return result, err
	}
	if result.Status != StatusFail {
		return result, nil
	}

	val, ok := dc.Get(data.DepRepoConfigFile)
	if !ok || val == nil {
		return result, nil
	}
	cfg, ok := val.(models.RepoConfig)
	if !ok {
		return ErrorResult(repo, w.ID(), "Invalid dependency type"), nil
	}
	reason := cfg.SkipReason(w.ID())
	if reason == "" {
		return result, nil
	}

	skipped := PassResultWithMessage(repo, w.ID(), "Skipped: "+reason)
	skipped = WithEvidence(skipped, "skip_reason", reason)
	return WithEvidence(skipped, "config_file", cfg.Path), nil
}
