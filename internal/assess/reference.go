package assess

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// Platform is the code hosting platform a repository lives on.
type Platform string

const (
	PlatformGitHub  Platform = "github"
	PlatformGitLab  Platform = "gitlab"
	PlatformUnknown Platform = "unknown"
)

var knownHosts = map[string]Platform{
	"github.com":     PlatformGitHub,
	"www.github.com": PlatformGitHub,
	"gitlab.com":     PlatformGitLab,
	"www.gitlab.com": PlatformGitLab,
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Reference is a parsed repository reference.
type Reference struct {
	Platform Platform
	Host     string
	Owner    string
	Name     string
	// Path is a sub-directory inside the repository ("" = root).
	Path string
	// Branch is the requested branch ("" = the repository default branch).
	Branch string
}

// FullName returns OWNER/NAME.
func (r Reference) FullName() string {
	return r.Owner + "/" + r.Name
}

// URL returns the canonical https URL of the repository.
func (r Reference) URL() string {
	u := "https://" + r.Host + "/" + r.Owner + "/" + r.Name
	if r.Path != "" {
		sep := "/tree/"
		if r.Platform == PlatformGitLab {
			sep = "/-/tree/"
		}
		u += sep + r.branchOr("HEAD") + "/" + r.Path
	}
	return u
}

func (r Reference) branchOr(fallback string) string {
	if r.Branch != "" {
		return r.Branch
	}
	return fallback
}

// ParseReference parses a repository reference and an optional branch.
//
// Accepted forms:
//
//	https://github.com/OWNER/NAME
//	http://github.com/OWNER/NAME.git
//	github.com/OWNER/NAME
//	https://github.com/OWNER/NAME/tree/BRANCH/sub/dir
//	https://github.com/OWNER/NAME/blob/BRANCH/sub/dir
//	https://gitlab.com/GROUP/SUBGROUP/NAME/-/tree/BRANCH
//	OWNER/NAME (GitHub shorthand)
//
// An explicit branch argument takes precedence over a branch in the URL.
// A URL cannot tell a branch containing "/" from a path, so /tree/feature/login
// reads as branch "feature" and path "login". Passing branch "feature/login"
// resolves this: when the URL segments start with the explicit branch, the
// remainder becomes the path.
// Hosts other than GitHub and GitLab parse with PlatformUnknown; rejecting
// them is the scorer's decision.
func ParseReference(raw, branch string) (Reference, error) {
	raw = strings.TrimSpace(raw)
	branch = strings.TrimSpace(branch)
	if raw == "" {
		return Reference{}, &InputError{Message: "repository reference is required"}
	}
	if strings.ContainsAny(raw, " \t\r\n") {
		return Reference{}, &InputError{Message: fmt.Sprintf("invalid repository reference %q: contains whitespace", raw)}
	}

	if !strings.Contains(raw, "://") {
		first, _, _ := strings.Cut(raw, "/")
		switch {
		case strings.Contains(first, "."):
			// Host without scheme, e.g. github.com/OWNER/NAME.
			raw = "https://" + raw
		case strings.Count(raw, "/") == 1:
			raw = "https://github.com/" + raw
		default:
			return Reference{}, &InputError{Message: fmt.Sprintf("invalid repository reference %q: expected a URL like https://github.com/OWNER/NAME", raw)}
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Reference{}, &InputError{Message: fmt.Sprintf("invalid repository reference %q: not a URL", raw)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Reference{}, &InputError{Message: fmt.Sprintf("invalid repository reference %q: scheme must be http or https", raw)}
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return Reference{}, &InputError{Message: fmt.Sprintf("invalid repository reference %q: missing host", raw)}
	}

	platform, ok := knownHosts[host]
	if !ok {
		platform = PlatformUnknown
	}
	host = strings.TrimPrefix(host, "www.")

	parts := strings.FieldsFunc(strings.Trim(u.Path, "/"), func(r rune) bool { return r == '/' })

	var ref Reference
	switch platform {
	case PlatformGitLab:
		ref, err = splitGitLabPath(parts)
	default:
		ref, err = splitGitHubPath(parts)
	}
	if err != nil {
		return Reference{}, &InputError{Message: fmt.Sprintf("invalid repository reference %q: %v", raw, err)}
	}
	ref.Platform = platform
	ref.Host = host
	if branch != "" {
		if ref.Branch != "" {
			ref.Path = trimBranchPrefix(path.Join(ref.Branch, ref.Path), branch, ref.Path)
		}
		ref.Branch = branch
	}
	return ref, nil
}

// trimBranchPrefix returns what follows branch in segments, or fallback when
// segments does not start with branch.
func trimBranchPrefix(segments, branch, fallback string) string {
	if segments == branch {
		return ""
	}
	if rest, ok := strings.CutPrefix(segments, branch+"/"); ok {
		return rest
	}
	return fallback
}

func splitGitHubPath(parts []string) (Reference, error) {
	if len(parts) < 2 {
		return Reference{}, fmt.Errorf("expected OWNER/NAME in path")
	}
	ref := Reference{Owner: parts[0], Name: strings.TrimSuffix(parts[1], ".git")}
	if err := validateNames(ref.Owner, ref.Name); err != nil {
		return Reference{}, err
	}

	rest := parts[2:]
	if len(rest) == 0 {
		return ref, nil
	}
	if rest[0] != "tree" && rest[0] != "blob" {
		return Reference{}, fmt.Errorf("unexpected path segment %q after OWNER/NAME", rest[0])
	}
	if len(rest) < 2 {
		return Reference{}, fmt.Errorf("missing branch after /%s/", rest[0])
	}
	ref.Branch = rest[1]
	ref.Path = strings.Join(rest[2:], "/")
	return ref, nil
}

func splitGitLabPath(parts []string) (Reference, error) {
	// GitLab nests groups: everything before the last segment (or before the
	// "-" separator) is the namespace.
	var tail []string
	for i, p := range parts {
		if p == "-" {
			tail = parts[i+1:]
			parts = parts[:i]
			break
		}
	}
	if len(parts) < 2 {
		return Reference{}, fmt.Errorf("expected GROUP/NAME in path")
	}
	name := strings.TrimSuffix(parts[len(parts)-1], ".git")
	groups := parts[:len(parts)-1]
	if err := validateNames(append(append([]string{}, groups...), name)...); err != nil {
		return Reference{}, err
	}
	ref := Reference{Owner: strings.Join(groups, "/"), Name: name}

	if len(tail) == 0 {
		return ref, nil
	}
	if tail[0] != "tree" && tail[0] != "blob" {
		return Reference{}, fmt.Errorf("unexpected path segment %q after /-/", tail[0])
	}
	if len(tail) < 2 {
		return Reference{}, fmt.Errorf("missing branch after /-/%s/", tail[0])
	}
	ref.Branch = tail[1]
	ref.Path = strings.Join(tail[2:], "/")
	return ref, nil
}

func validateNames(names ...string) error {
	for _, n := range names {
		if n == "" || n == "." || n == ".." || !namePattern.MatchString(n) {
			return fmt.Errorf("invalid name %q", n)
		}
	}
	return nil
}
