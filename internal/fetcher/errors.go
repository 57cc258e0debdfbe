package fetcher

import (
	"errors"
	"fmt"
	"net/http"

	"fairapi/internal/data"

	"github.com/google/go-github/v81/github"
)

// NotFoundError reports that the object behind a dependency does not exist.
type NotFoundError struct {
	Key    data.DependencyKey
	Object string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s not found", e.Key, e.Object)
}

// IsNotFound reports whether err is a *NotFoundError or a GitHub 404 response.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return true
	}
	var errResp *github.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound
}

// NotDirectoryError reports that an assessed path names a file rather than a
// directory, as with a /blob/ reference.
type NotDirectoryError struct {
	Key  data.DependencyKey
	Path string
}

func (e *NotDirectoryError) Error() string {
	return fmt.Sprintf("%s: %q is a file, not a directory", e.Key, e.Path)
}
