package readme

import (
	"regexp"
	"strings"
)

// Badge recognises one kind of README badge by URL.
type Badge struct {
	Name string
	// Prefixes are compared against the URL with its scheme and a leading
	// "www." removed, case-insensitively.
	Prefixes []string
	Pattern  *regexp.Regexp
}

// Match reports whether rawURL is a badge of this kind.
func (b Badge) Match(rawURL string) bool {
	u := normalizeURL(rawURL)
	for _, p := range b.Prefixes {
		if strings.HasPrefix(u, p) {
			return true
		}
	}
	return b.Pattern != nil && b.Pattern.MatchString(u)
}

func normalizeURL(rawURL string) string {
	u := strings.ToLower(strings.TrimSpace(rawURL))
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	return strings.TrimPrefix(u, "www.")
}

// RegistryBadges are badges linking a package published in a community registry.
var RegistryBadges = []Badge{
	{Name: "PyPI", Prefixes: []string{"img.shields.io/pypi/v/", "badge.fury.io/py/"}},
	{Name: "npm", Prefixes: []string{"img.shields.io/npm/v/", "badge.fury.io/js/"}},
	{Name: "Conda", Prefixes: []string{"anaconda.org/conda-forge/", "img.shields.io/conda/vn/", "img.shields.io/conda/v/"}},
	{Name: "CRAN", Prefixes: []string{"r-pkg.org/badges/version", "cranlogs.r-pkg.org/badges/", "img.shields.io/cran/v/"}},
	{Name: "crates.io", Prefixes: []string{"img.shields.io/crates/v/", "img.shields.io/crates/d/"}},
	{Name: "Maven Central", Prefixes: []string{"img.shields.io/maven-central/v/", "maven-badges.herokuapp.com/maven-central/"}},
	{Name: "Bintray", Prefixes: []string{"api.bintray.com/packages/"}},
	{Name: "ASCL", Prefixes: []string{"img.shields.io/badge/ascl-", "ascl.net/"}},
	{Name: "Research Software Directory", Prefixes: []string{"img.shields.io/badge/rsd-"}},
	{Name: "Go reference", Prefixes: []string{"pkg.go.dev/badge/"}},
	{Name: "RubyGems", Prefixes: []string{"img.shields.io/gem/v/", "badge.fury.io/rb/"}},
	{Name: "NuGet", Prefixes: []string{"img.shields.io/nuget/v/", "badge.fury.io/nu/"}},
}

// CitationBadges are badges pointing at an archived, citable release.
var CitationBadges = []Badge{
	{
		Name:     "Zenodo",
		Prefixes: []string{"zenodo.org/badge/"},
		Pattern:  regexp.MustCompile(`^(img\.shields\.io/badge/doi/|doi\.org/)10\.5281/zenodo\.\d+`),
	},
}

// ChecklistBadges are software quality checklist badges.
var ChecklistBadges = []Badge{
	{
		Name:    "OpenSSF Best Practices",
		Pattern: regexp.MustCompile(`^(bestpractices\.coreinfrastructure\.org|bestpractices\.dev)/([a-z]{2}(-[a-z]{2})?/)?projects/\d+`),
	},
}

// FindBadge returns the first URL matching any of badges, with the badge that
// matched.
func FindBadge(urls []string, badges []Badge) (Badge, string, bool) {
	for _, u := range urls {
		for _, b := range badges {
			if b.Match(u) {
				return b, u, true
			}
		}
	}
	return Badge{}, "", false
}
