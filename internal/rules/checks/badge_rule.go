package checks

import (
	"context"

	"fairapi/internal/data"
	"fairapi/internal/data/models"
	"fairapi/internal/readme"
	"fairapi/internal/rules"

	"github.com/google/go-github/v81/github"
)

// evaluateBadges passes when the README badges contain one of badges.
// what names the kind of badge in messages.
func evaluateBadges(repo *github.Repository, ruleID string, dc data.DataContext, badges []readme.Badge, what string) rules.Result {
	val, ok := dc.Get(data.DepRepoReadmeBadges)
	if !ok {
		return rules.ErrorResult(repo, ruleID, "Dependency missing")
	}
	if val == nil {
		return rules.ErrorResult(repo, ruleID, "Dependency is nil")
	}
	set, ok := val.(models.BadgeSet)
	if !ok {
		return rules.ErrorResult(repo, ruleID, "Invalid dependency type")
	}

	badge, url, found := readme.FindBadge(set.URLs, badges)
	if !found {
		return rules.FailResult(repo, ruleID, "No "+what+" badge found in README")
	}
	res := rules.PassResultWithMessage(repo, ruleID, badge.Name+" badge found in README")
	return rules.WithEvidence(res, "badge", url)
}

func badgeDependencies(context.Context, *github.Repository) ([]data.DependencyKey, error) {
	return []data.DependencyKey{data.DepRepoReadmeBadges}, nil
}
