package providers

import (
	"context"
	"fmt"
	"net/http"

	"fairapi/internal/data"
	"fairapi/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

type branchFetcher struct{}

func (b *branchFetcher) Key() data.DependencyKey { return data.DepRepoBranch }

func (b *branchFetcher) Scope() data.FetchScope { return data.ScopeRevision }

// Fetch returns the *github.Branch named by the ref param, or a
// *fetcher.NotFoundError when the branch does not exist.
func (b *branchFetcher) Fetch(ctx context.Context, repo *github.Repository, params map[string]string, f *fetcher.Fetcher) (any, error) {
	ref, _ := revision(params)
	if ref == "" {
		return nil, fmt.Errorf("%s: missing %q param", data.DepRepoBranch, data.ParamRef)
	}

	var branch *github.Branch
	status := 0
	err := f.Call(ctx, func(ctx context.Context) (*github.Response, error) {
		var resp *github.Response
		var err error
		branch, resp, err = f.Client().Client.Repositories.GetBranch(ctx, repo.GetOwner().GetLogin(), repo.GetName(), ref, 1)
		if resp != nil {
			status = resp.StatusCode
		}
		return resp, err
	})
	if err != nil {
		// GetBranch reports non-200 statuses as plain errors.
		if status == http.StatusNotFound || fetcher.IsNotFound(err) {
			return nil, &fetcher.NotFoundError{Key: data.DepRepoBranch, Object: "branch " + ref}
		}
		return nil, err
	}
	return branch, nil
}

func init() {
	fetcher.RegisterDataFetcher(&branchFetcher{})
}
