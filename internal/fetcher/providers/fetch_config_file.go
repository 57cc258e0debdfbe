package providers

import (
	"context"

	"fairapi/internal/data"
	"fairapi/internal/data/models"
	"fairapi/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

type configFileFetcher struct{}

func (c *configFileFetcher) Key() data.DependencyKey { return data.DepRepoConfigFile }

func (c *configFileFetcher) Scope() data.FetchScope { return data.ScopeRevision }

// Fetch returns the parsed repository config; a missing file yields the zero
// RepoConfig and an invalid one a parse error.
func (c *configFileFetcher) Fetch(ctx context.Context, repo *github.Repository, params map[string]string, f *fetcher.Fetcher) (any, error) {
	ref, dir := revision(params)
	filePath := joinPath(dir, models.DefaultConfigFile)

	text, found, err := getFile(ctx, f, repo, filePath, ref)
	if err != nil {
		return nil, err
	}
	if !found {
		return models.RepoConfig{}, nil
	}
	return models.ParseRepoConfig(filePath, []byte(text))
}

func init() {
	fetcher.RegisterDataFetcher(&configFileFetcher{})
}
