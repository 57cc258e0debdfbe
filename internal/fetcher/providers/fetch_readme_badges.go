package providers

import (
	"context"
	"fmt"

	"fairapi/internal/data"
	"fairapi/internal/data/models"
	"fairapi/internal/fetcher"
	"fairapi/internal/readme"

	"github.com/google/go-github/v81/github"
)

type readmeBadgesFetcher struct{}

func (r *readmeBadgesFetcher) Key() data.DependencyKey { return data.DepRepoReadmeBadges }

func (r *readmeBadgesFetcher) Scope() data.FetchScope { return data.ScopeRevision }

// Fetch derives badges from already fetched dependencies and makes no API
// calls of its own.
func (r *readmeBadgesFetcher) Fetch(ctx context.Context, repo *github.Repository, params map[string]string, f *fetcher.Fetcher) (any, error) {
	val, err := f.Fetch(ctx, repo, data.DepRepoReadme, params)
	if err != nil {
		return nil, err
	}
	rd, ok := val.(models.Readme)
	if !ok {
		return nil, fmt.Errorf("unexpected type %T for %s", val, data.DepRepoReadme)
	}

	val, err = f.Fetch(ctx, repo, data.DepRepoConfigFile, params)
	if err != nil {
		return nil, err
	}
	cfg, ok := val.(models.RepoConfig)
	if !ok {
		return nil, fmt.Errorf("unexpected type %T for %s", val, data.DepRepoConfigFile)
	}

	urls, err := readme.ExtractURLs(rd, cfg.ShouldIgnoreCommentedBadges())
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", rd.Path, err)
	}
	return models.BadgeSet{URLs: urls}, nil
}

func init() {
	fetcher.RegisterDataFetcher(&readmeBadgesFetcher{})
}
