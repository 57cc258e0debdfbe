package assess

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		branch string
		want   Reference
	}{
		{
			name: "https github url",
			raw:  "https://github.com/fair-software/howfairis",
			want: Reference{Platform: PlatformGitHub, Host: "github.com", Owner: "fair-software", Name: "howfairis"},
		},
		{
			name: "http with .git suffix and trailing slash",
			raw:  "http://github.com/fair-software/howfairis.git/",
			want: Reference{Platform: PlatformGitHub, Host: "github.com", Owner: "fair-software", Name: "howfairis"},
		},
		{
			name: "no scheme",
			raw:  "github.com/acme/widget",
			want: Reference{Platform: PlatformGitHub, Host: "github.com", Owner: "acme", Name: "widget"},
		},
		{
			name: "www host",
			raw:  "https://www.github.com/acme/widget",
			want: Reference{Platform: PlatformGitHub, Host: "github.com", Owner: "acme", Name: "widget"},
		},
		{
			name: "shorthand",
			raw:  " acme/widget ",
			want: Reference{Platform: PlatformGitHub, Host: "github.com", Owner: "acme", Name: "widget"},
		},
		{
			name: "tree url with path",
			raw:  "https://github.com/acme/mono/tree/develop/packages/core",
			want: Reference{Platform: PlatformGitHub, Host: "github.com", Owner: "acme", Name: "mono", Branch: "develop", Path: "packages/core"},
		},
		{
			name:   "explicit branch wins over url branch",
			raw:    "https://github.com/acme/mono/tree/develop",
			branch: "main",
			want:   Reference{Platform: PlatformGitHub, Host: "github.com", Owner: "acme", Name: "mono", Branch: "main"},
		},
		{
			name:   "explicit branch with slash consumes url segments",
			raw:    "https://github.com/acme/mono/tree/feature/login/packages/core",
			branch: "feature/login",
			want:   Reference{Platform: PlatformGitHub, Host: "github.com", Owner: "acme", Name: "mono", Branch: "feature/login", Path: "packages/core"},
		},
		{
			name:   "explicit branch with slash naming whole tree",
			raw:    "https://github.com/acme/mono/tree/feature/login",
			branch: "feature/login",
			want:   Reference{Platform: PlatformGitHub, Host: "github.com", Owner: "acme", Name: "mono", Branch: "feature/login"},
		},
		{
			name: "slash branch without explicit branch splits at first segment",
			raw:  "https://github.com/acme/mono/tree/feature/login",
			want: Reference{Platform: PlatformGitHub, Host: "github.com", Owner: "acme", Name: "mono", Branch: "feature", Path: "login"},
		},
		{
			name:   "explicit branch unrelated to url keeps path",
			raw:    "https://github.com/acme/mono/tree/develop/docs",
			branch: "main",
			want:   Reference{Platform: PlatformGitHub, Host: "github.com", Owner: "acme", Name: "mono", Branch: "main", Path: "docs"},
		},
		{
			name: "blob url keeps file path",
			raw:  "https://github.com/acme/widget/blob/main/README.md",
			want: Reference{Platform: PlatformGitHub, Host: "github.com", Owner: "acme", Name: "widget", Branch: "main", Path: "README.md"},
		},
		{
			name: "gitlab nested groups",
			raw:  "https://gitlab.com/group/sub/project/-/tree/main/docs",
			want: Reference{Platform: PlatformGitLab, Host: "gitlab.com", Owner: "group/sub", Name: "project", Branch: "main", Path: "docs"},
		},
		{
			name: "unknown host parses",
			raw:  "https://example.com/org/repo",
			want: Reference{Platform: PlatformUnknown, Host: "example.com", Owner: "org", Name: "repo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReference(tt.raw, tt.branch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReference_InputErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "whitespace only", raw: "   "},
		{name: "inner whitespace", raw: "https://github.com/acme/wid get"},
		{name: "single word", raw: "widget"},
		{name: "too many segments without host", raw: "a/b/c"},
		{name: "bad scheme", raw: "ftp://github.com/acme/widget"},
		{name: "owner only", raw: "https://github.com/acme"},
		{name: "bad characters", raw: "https://github.com/acme/wid$get"},
		{name: "unexpected segment", raw: "https://github.com/acme/widget/issues"},
		{name: "tree without branch", raw: "https://github.com/acme/widget/tree"},
		{name: "missing host", raw: "https:///acme/widget"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReference(tt.raw, "")
			require.Error(t, err)
			var inputErr *InputError
			assert.True(t, errors.As(err, &inputErr), "expected *InputError, got %T", err)
		})
	}
}

func TestReference_URL(t *testing.T) {
	ref := Reference{Platform: PlatformGitHub, Host: "github.com", Owner: "acme", Name: "widget"}
	assert.Equal(t, "https://github.com/acme/widget", ref.URL())
	assert.Equal(t, "acme/widget", ref.FullName())

	ref.Path = "docs"
	assert.Equal(t, "https://github.com/acme/widget/tree/HEAD/docs", ref.URL())

	ref.Branch = "main"
	assert.Equal(t, "https://github.com/acme/widget/tree/main/docs", ref.URL())

	gl := Reference{Platform: PlatformGitLab, Host: "gitlab.com", Owner: "g", Name: "p", Path: "x", Branch: "dev"}
	assert.Equal(t, "https://gitlab.com/g/p/-/tree/dev/x", gl.URL())
}
