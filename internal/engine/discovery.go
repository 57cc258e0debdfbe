package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fairapi/internal/assess"
	"fairapi/internal/data"
	"fairapi/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

type RepositoryRef struct {
	Owner string
	Name  string
	ID    int64
	Repo  *github.Repository // Full metadata as returned by GitHub
}

func (r RepositoryRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// stubRepository is the minimal repository object providers need to address
// the API before metadata is known.
func stubRepository(ref assess.Reference) *github.Repository {
	return &github.Repository{
		Name:     github.Ptr(ref.Name),
		FullName: github.Ptr(ref.FullName()),
		Owner:    &github.User{Login: github.Ptr(ref.Owner)},
	}
}

// ResolveRepository looks up ref through f and determines the branch to
// assess: the requested branch, validated to exist, or the repository default
// branch. The metadata lands in the fetcher cache, so rules depending on
// data.DepRepoMetadata reuse it.
func ResolveRepository(ctx context.Context, f *fetcher.Fetcher, ref assess.Reference) (RepositoryRef, string, error) {
	if ctx == nil {
		return RepositoryRef{}, "", errors.New("context is nil")
	}
	if f == nil {
		return RepositoryRef{}, "", errors.New("fetcher is nil")
	}
	if ref.Owner == "" || ref.Name == "" {
		return RepositoryRef{}, "", &assess.InputError{Message: "repository owner and name are required"}
	}

	val, err := f.Fetch(ctx, stubRepository(ref), data.DepRepoMetadata, nil)
	if err != nil {
		return RepositoryRef{}, "", classifyDependencyError(data.DepRepoMetadata, ref, err)
	}
	meta, ok := val.(*github.Repository)
	if !ok || meta == nil {
		return RepositoryRef{}, "", fmt.Errorf("%s: unexpected value type %T", data.DepRepoMetadata, val)
	}

	repo := RepositoryRef{
		Owner: meta.GetOwner().GetLogin(),
		Name:  meta.GetName(),
		ID:    meta.GetID(),
		Repo:  meta,
	}
	// Metadata may omit the owner on minimal responses; keep the requested names.
	if repo.Owner == "" || repo.Name == "" {
		repo.Owner, repo.Name = ref.Owner, ref.Name
		meta.Owner = &github.User{Login: github.Ptr(ref.Owner)}
		meta.Name = github.Ptr(ref.Name)
	}
	if meta.FullName == nil {
		meta.FullName = github.Ptr(repo.FullName())
	}

	branch := strings.TrimSpace(ref.Branch)
	if branch == "" {
		branch = meta.GetDefaultBranch()
		if branch == "" {
			return RepositoryRef{}, "", &assess.ScoringError{Message: fmt.Sprintf("repository %s has no default branch", ref.FullName())}
		}
		return repo, branch, nil
	}

	params := map[string]string{data.ParamRef: branch}
	if _, err := f.Fetch(ctx, meta, data.DepRepoBranch, params); err != nil {
		return RepositoryRef{}, "", classifyDependencyError(data.DepRepoBranch, ref, err)
	}
	return repo, branch, nil
}
