package providers

import (
	"context"
	"fmt"
	"path"
	"strings"

	"fairapi/internal/data"
	"fairapi/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

// revision extracts the ref and the cleaned subdirectory from request params.
func revision(params map[string]string) (ref, dir string) {
	ref = strings.TrimSpace(params[data.ParamRef])
	dir = strings.Trim(path.Clean("/"+strings.TrimSpace(params[data.ParamPath])), "/")
	return ref, dir
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

func contentOptions(ref string) *github.RepositoryContentGetOptions {
	if ref == "" {
		return nil
	}
	return &github.RepositoryContentGetOptions{Ref: ref}
}

// getFile downloads and decodes one file. A missing file yields found=false
// and no error.
func getFile(ctx context.Context, f *fetcher.Fetcher, repo *github.Repository, filePath, ref string) (content string, found bool, err error) {
	var file *github.RepositoryContent
	err = f.Call(ctx, func(ctx context.Context) (*github.Response, error) {
		var resp *github.Response
		var callErr error
		file, _, resp, callErr = f.Client().Client.Repositories.GetContents(ctx, repo.GetOwner().GetLogin(), repo.GetName(), filePath, contentOptions(ref))
		return resp, callErr
	})
	if err != nil {
		if fetcher.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, err
	}
	if file == nil {
		// filePath names a directory.
		return "", false, nil
	}
	content, err = file.GetContent()
	if err != nil {
		return "", false, fmt.Errorf("decode %s: %w", filePath, err)
	}
	return content, true, nil
}
