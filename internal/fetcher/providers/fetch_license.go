package providers

import (
	"context"

	"fairapi/internal/data"
	"fairapi/internal/data/models"
	"fairapi/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

type licenseFetcher struct{}

func (l *licenseFetcher) Key() data.DependencyKey { return data.DepRepoLicense }

func (l *licenseFetcher) Scope() data.FetchScope { return data.ScopeRepo }

func (l *licenseFetcher) Fetch(ctx context.Context, repo *github.Repository, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	info := models.LicenseInfo{}

	var lic *github.RepositoryLicense
	err := f.Call(ctx, func(ctx context.Context) (*github.Response, error) {
		var resp *github.Response
		var err error
		lic, resp, err = f.Client().Client.Repositories.License(ctx, repo.GetOwner().GetLogin(), repo.GetName())
		return resp, err
	})
	if err != nil {
		if fetcher.IsNotFound(err) {
			return info, nil
		}
		return nil, err
	}

	info.Found = true
	info.Path = lic.GetPath()
	info.SPDXID = lic.GetLicense().GetSPDXID()
	info.Name = lic.GetLicense().GetName()
	return info, nil
}

func init() {
	fetcher.RegisterDataFetcher(&licenseFetcher{})
}
