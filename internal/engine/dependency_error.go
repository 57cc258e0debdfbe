package engine

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"fairapi/internal/assess"
	"fairapi/internal/data"
	"fairapi/internal/data/models"
	"fairapi/internal/fetcher"

	"github.com/google/go-github/v81/github"
)

// classifyDependencyError maps a failed dependency fetch onto the assessment
// error kinds: *assess.ScoringError when the reference cannot be assessed,
// *assess.UnavailableError when GitHub cannot serve the request right now, and
// a plain error (an internal fault) otherwise.
func classifyDependencyError(key data.DependencyKey, ref assess.Reference, err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	if unavailable := unavailableError(err); unavailable != nil {
		return unavailable
	}

	var cfgErr *models.ConfigError
	if errors.As(err, &cfgErr) {
		return &assess.ScoringError{Message: fmt.Sprintf("invalid %s: %v", cfgErr.Path, cfgErr.Err)}
	}

	var notDir *fetcher.NotDirectoryError
	if errors.As(err, &notDir) {
		return &assess.ScoringError{Message: fmt.Sprintf("path %q in %s is a file, not a directory", notDir.Path, ref.FullName())}
	}

	if fetcher.IsNotFound(err) {
		switch key {
		case data.DepRepoMetadata:
			return &assess.ScoringError{Message: fmt.Sprintf("repository %s not found or not accessible", ref.FullName())}
		case data.DepRepoBranch:
			return &assess.ScoringError{Message: fmt.Sprintf("branch %q not found in %s", ref.Branch, ref.FullName())}
		case data.DepRepoRootFiles:
			if ref.Path == "" {
				return &assess.ScoringError{Message: fmt.Sprintf("repository %s is empty", ref.FullName())}
			}
			return &assess.ScoringError{Message: fmt.Sprintf("path %q not found in %s", ref.Path, ref.FullName())}
		}
	}

	var er *github.ErrorResponse
	if errors.As(err, &er) && er.Response != nil {
		switch code := er.Response.StatusCode; {
		case code == http.StatusForbidden && key == data.DepRepoMetadata:
			return &assess.ScoringError{Message: fmt.Sprintf("repository %s is not accessible", ref.FullName())}
		case code == http.StatusUnavailableForLegalReasons:
			return &assess.ScoringError{Message: fmt.Sprintf("repository %s is unavailable for legal reasons", ref.FullName())}
		case code >= 500:
			return &assess.UnavailableError{Message: "GitHub API is unavailable", Err: err}
		}
	}

	return fmt.Errorf("%s: %s", key, presentDependencyError(err))
}

// unavailableError returns a *assess.UnavailableError when err means GitHub
// refused or failed to serve the request, or nil.
func unavailableError(err error) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var exhausted *fetcher.ExhaustedError
	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr), errors.As(err, &exhausted):
		return &assess.UnavailableError{Message: "GitHub API rate limit exceeded, try again later", Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &assess.UnavailableError{Message: "GitHub API request timed out", Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &assess.UnavailableError{Message: "GitHub API is unreachable", Err: err}
	}
	return nil
}

// presentDependencyError renders err without the request URL go-github puts
// in front of API errors.
func presentDependencyError(err error) string {
	if err == nil {
		return "unknown error"
	}

	// Prefer structured GitHub error types to avoid leaking full request URLs.
	var er *github.ErrorResponse
	if errors.As(err, &er) {
		msg := strings.TrimSpace(er.Message)
		if msg == "" {
			msg = "GitHub API request failed"
		}
		if er.Response != nil {
			status := fmt.Sprintf("%d %s", er.Response.StatusCode, http.StatusText(er.Response.StatusCode))
			return fmt.Sprintf("GitHub API request failed (%s): %s", status, msg)
		}
		return fmt.Sprintf("GitHub API request failed: %s", msg)
	}

	// Fallback: best-effort scrub to avoid printing full request details.
	s := strings.TrimSpace(err.Error())
	if scrubbed := scrubGitHubRequestFromErrorString(s); scrubbed != "" {
		return scrubbed
	}
	return s
}

func scrubGitHubRequestFromErrorString(s string) string {
	// Typical go-github error format:
	//   GET https://api.github.com/...: 403 Some message. [..]
	// We want to drop the leading "GET https://...: " part.
	methods := []string{"GET ", "POST ", "PUT ", "PATCH ", "DELETE "}
	for _, m := range methods {
		if strings.HasPrefix(s, m) {
			if i := strings.Index(s, "://"); i >= 0 {
				if j := strings.Index(s[i:], ": "); j >= 0 {
					return strings.TrimSpace(s[i+j+2:])
				}
			}
			if j := strings.Index(s, ": "); j >= 0 {
				return strings.TrimSpace(s[j+2:])
			}
			break
		}
	}
	return ""
}
