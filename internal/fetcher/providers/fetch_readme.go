package providers

import (
	"context"
	"fmt"
	"strings"

	"fairapi/internal/data"
	"fairapi/internal/data/models"
	"fairapi/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

type readmeFetcher struct{}

func (d *readmeFetcher) Key() data.DependencyKey {
	return data.DepRepoReadme
}

func (d *readmeFetcher) Scope() data.FetchScope {
	return data.ScopeRevision
}

func (d *readmeFetcher) Fetch(ctx context.Context, repo *github.Repository, params map[string]string, f *fetcher.Fetcher) (any, error) {
	ref, dir := revision(params)
	if dir != "" {
		return d.fetchInDir(ctx, repo, params, f)
	}

	readme := models.Readme{}

	var content *github.RepositoryContent
	err := f.Call(ctx, func(ctx context.Context) (*github.Response, error) {
		var resp *github.Response
		var err error
		content, resp, err = f.Client().Client.Repositories.GetReadme(ctx, repo.GetOwner().GetLogin(), repo.GetName(), contentOptions(ref))
		return resp, err
	})
	if err != nil {
		if fetcher.IsNotFound(err) {
			return readme, nil
		}
		return nil, err
	}

	text, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", content.GetPath(), err)
	}
	readme.Found = true
	readme.Path = content.GetPath()
	readme.Content = text
	readme.Format = models.FormatForPath(readme.Path)
	return readme, nil
}

// fetchInDir resolves the README of a subdirectory from its listing, since the
// readme endpoint only looks at the repository root.
func (d *readmeFetcher) fetchInDir(ctx context.Context, repo *github.Repository, params map[string]string, f *fetcher.Fetcher) (any, error) {
	ref, dir := revision(params)

	val, err := f.Fetch(ctx, repo, data.DepRepoRootFiles, params)
	if err != nil {
		return nil, err
	}
	files, ok := val.(models.RootFiles)
	if !ok {
		return nil, fmt.Errorf("unexpected type %T for %s", val, data.DepRepoRootFiles)
	}

	name, ok := pickReadme(files.Names)
	if !ok {
		return models.Readme{}, nil
	}
	filePath := joinPath(dir, name)
	text, found, err := getFile(ctx, f, repo, filePath, ref)
	if err != nil {
		return nil, err
	}
	if !found {
		return models.Readme{}, nil
	}
	return models.Readme{Found: true, Path: filePath, Content: text, Format: models.FormatForPath(filePath)}, nil
}

// pickReadme prefers README.md, then any README.* and finally a bare README.
func pickReadme(names []string) (string, bool) {
	var fallback string
	for _, n := range names {
		lower := strings.ToLower(n)
		switch {
		case lower == "readme.md":
			return n, true
		case strings.HasPrefix(lower, "readme.") && fallback == "":
			fallback = n
		case lower == "readme" && fallback == "":
			fallback = n
		}
	}
	return fallback, fallback != ""
}

func init() {
	fetcher.RegisterDataFetcher(&readmeFetcher{})
}
