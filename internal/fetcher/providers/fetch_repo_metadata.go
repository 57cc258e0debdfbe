package providers

import (
	"context"

	"fairapi/internal/data"
	"fairapi/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

type repoMetadataFetcher struct{}

func (r *repoMetadataFetcher) Key() data.DependencyKey { return data.DepRepoMetadata }

func (r *repoMetadataFetcher) Scope() data.FetchScope { return data.ScopeRepo }

func (r *repoMetadataFetcher) Fetch(ctx context.Context, repo *github.Repository, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	var result *github.Repository
	err := f.Call(ctx, func(ctx context.Context) (*github.Response, error) {
		var resp *github.Response
		var err error
		result, resp, err = f.Client().Client.Repositories.Get(ctx, repo.GetOwner().GetLogin(), repo.GetName())
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func init() {
	fetcher.RegisterDataFetcher(&repoMetadataFetcher{})
}
