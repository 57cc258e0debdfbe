package providers

import (
	"context"

	"fairapi/internal/data"
	"fairapi/internal/data/models"
	"fairapi/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

type rootFilesFetcher struct{}

func (r *rootFilesFetcher) Key() data.DependencyKey { return data.DepRepoRootFiles }

func (r *rootFilesFetcher) Scope() data.FetchScope { return data.ScopeRevision }

// Fetch lists the assessed directory. A missing directory is an error: the
// reference points at a path that does not exist at the ref. A path naming a
// file yields *fetcher.NotDirectoryError.
func (r *rootFilesFetcher) Fetch(ctx context.Context, repo *github.Repository, params map[string]string, f *fetcher.Fetcher) (any, error) {
	ref, dir := revision(params)

	var entries []*github.RepositoryContent
	err := f.Call(ctx, func(ctx context.Context) (*github.Response, error) {
		var resp *github.Response
		var err error
		_, entries, resp, err = f.Client().Client.Repositories.GetContents(ctx, repo.GetOwner().GetLogin(), repo.GetName(), dir, contentOptions(ref))
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	if entries == nil && dir != "" {
		return nil, &fetcher.NotDirectoryError{Key: data.DepRepoRootFiles, Path: dir}
	}

	files := models.RootFiles{Names: make([]string, 0, len(entries))}
	for _, e := range entries {
		if e.GetName() != "" {
			files.Names = append(files.Names, e.GetName())
		}
	}
	return files, nil
}

func init() {
	fetcher.RegisterDataFetcher(&rootFilesFetcher{})
}
