package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v81/github"

	"fairapi/internal/assess"
	"fairapi/internal/data"
	"fairapi/internal/data/models"
	"fairapi/internal/fetcher"
)

func errorResponse(code int, msg string) *github.ErrorResponse {
	return &github.ErrorResponse{
		Response: &http.Response{StatusCode: code, Status: fmt.Sprintf("%d %s", code, http.StatusText(code))},
		Message:  msg,
	}
}

// apiResponse is a response carrying the request go-github error types print.
func apiResponse(code int) *http.Response {
	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Request:    &http.Request{Method: http.MethodGet, URL: &url.URL{Scheme: "https", Host: "api.github.com", Path: "/repos/acme/widget"}},
	}
}

func TestClassifyDependencyError(t *testing.T) {
	ref := assess.Reference{Platform: assess.PlatformGitHub, Host: "github.com", Owner: "acme", Name: "widget", Branch: "dev", Path: "pkg"}
	root := ref
	root.Path = ""

	tests := []struct {
		name     string
		key      data.DependencyKey
		ref      assess.Reference
		err      error
		kind     assess.Kind
		contains string
	}{
		{name: "metadata 404", key: data.DepRepoMetadata, ref: ref, err: errorResponse(404, "Not Found"), kind: assess.KindScoring, contains: "acme/widget not found"},
		{name: "metadata 403", key: data.DepRepoMetadata, ref: ref, err: errorResponse(403, "Forbidden"), kind: assess.KindScoring, contains: "not accessible"},
		{name: "branch missing", key: data.DepRepoBranch, ref: ref, err: &fetcher.NotFoundError{Key: data.DepRepoBranch, Object: "branch dev"}, kind: assess.KindScoring, contains: `branch "dev"`},
		{name: "path missing", key: data.DepRepoRootFiles, ref: ref, err: errorResponse(404, "Not Found"), kind: assess.KindScoring, contains: `path "pkg"`},
		{name: "path names a file", key: data.DepRepoReadmeBadges, ref: ref, err: &fetcher.NotDirectoryError{Key: data.DepRepoRootFiles, Path: "pkg"}, kind: assess.KindScoring, contains: `path "pkg" in acme/widget is a file`},
		{name: "empty repository", key: data.DepRepoRootFiles, ref: root, err: errorResponse(404, "This repository is empty."), kind: assess.KindScoring, contains: "is empty"},
		{name: "invalid config", key: data.DepRepoConfigFile, ref: ref, err: &models.ConfigError{Path: ".howfairis.yml", Err: errors.New("bad")}, kind: assess.KindScoring, contains: "invalid .howfairis.yml"},
		{name: "legal", key: data.DepRepoLicense, ref: ref, err: errorResponse(451, "DMCA"), kind: assess.KindScoring, contains: "legal"},
		{name: "rate limit", key: data.DepRepoReadme, ref: ref, err: &github.RateLimitError{Response: apiResponse(403), Message: "API rate limit exceeded"}, kind: assess.KindUnavailable, contains: "rate limit"},
		{name: "secondary rate limit", key: data.DepRepoReadme, ref: ref, err: &github.AbuseRateLimitError{Response: apiResponse(403), Message: "slow down"}, kind: assess.KindUnavailable, contains: "rate limit"},
		{name: "budget exhausted", key: data.DepRepoReadme, ref: ref, err: fmt.Errorf("fetch: %w", &fetcher.ExhaustedError{Until: time.Now().Add(time.Hour)}), kind: assess.KindUnavailable, contains: "rate limit"},
		{name: "timeout", key: data.DepRepoReadme, ref: ref, err: context.DeadlineExceeded, kind: assess.KindUnavailable, contains: "timed out"},
		{name: "network", key: data.DepRepoReadme, ref: ref, err: &url.Error{Op: "Get", URL: "https://api.github.com/", Err: errors.New("connection refused")}, kind: assess.KindUnavailable, contains: "unreachable"},
		{name: "server error", key: data.DepRepoLicense, ref: ref, err: errorResponse(502, "Bad Gateway"), kind: assess.KindUnavailable, contains: "unavailable"},
		{name: "other 404 is internal", key: data.DepRepoReadme, ref: ref, err: errorResponse(404, "Not Found"), kind: assess.KindInternal},
		{name: "unexpected error is internal", key: data.DepRepoLicense, ref: ref, err: errors.New("boom"), kind: assess.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyDependencyError(tt.key, tt.ref, tt.err)
			wantKind(t, got, tt.kind, tt.contains)
		})
	}
}

func TestClassifyDependencyError_PassesCancellationThrough(t *testing.T) {
	err := classifyDependencyError(data.DepRepoMetadata, assess.Reference{}, context.Canceled)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPresentDependencyError_HidesRequestURL(t *testing.T) {
	er := &github.ErrorResponse{Response: apiResponse(403), Message: "Resource not accessible by integration"}

	got := presentDependencyError(er)
	if want := "GitHub API request failed (403 Forbidden): Resource not accessible by integration"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestScrubGitHubRequestFromErrorString_StripsURLPrefix(t *testing.T) {
	s := "GET https://api.github.com/repos/acme/foo/readme: 403 some message []"
	out := scrubGitHubRequestFromErrorString(s)
	if want := "403 some message []"; out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
	if got := scrubGitHubRequestFromErrorString("plain error"); got != "" {
		t.Fatalf("expected empty result for non-request error, got %q", got)
	}
}
