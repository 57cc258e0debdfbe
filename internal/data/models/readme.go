package models

import (
	"path"
	"strings"
)

// ReadmeFormat is the markup flavour of a README, derived from its file extension.
type ReadmeFormat string

const (
	ReadmeMarkdown ReadmeFormat = "markdown"
	ReadmeRST      ReadmeFormat = "rst"
	ReadmeText     ReadmeFormat = "text"
)

// Readme captures the README resolved at the assessed ref and path.
//
// Found is false when the repository has no README there; Content is then empty.
type Readme struct {
	Found   bool
	Path    string
	Content string
	Format  ReadmeFormat
}

// FormatForPath guesses the README format from its file name.
func FormatForPath(p string) ReadmeFormat {
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".markdown", ".mdown", ".mkd":
		return ReadmeMarkdown
	case ".rst":
		return ReadmeRST
	default:
		return ReadmeText
	}
}

// BadgeSet holds the distinct image and link URLs found in a README, in
// document order.
type BadgeSet struct {
	URLs []string
}

// Any reports whether any URL satisfies match and returns the first one that does.
func (b BadgeSet) Any(match func(string) bool) (string, bool) {
	for _, u := range b.URLs {
		if match(u) {
			return u, true
		}
	}
	return "", false
}
