// Package readme extracts badge and link URLs from repository READMEs and
// recognises the badges that count towards the FAIR criteria.
package readme

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"fairapi/internal/data/models"
)

// The goldmark instance is configured once and shared; Convert keeps its
// state per call.
var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			// Badges are frequently written as raw <a><img></a> HTML.
			goldmark.WithRendererOptions(html.WithUnsafe()),
		)
	})
	return markdownInstance
}

var (
	urlPattern         = regexp.MustCompile(`https?://[^\s<>"'()\[\]{}` + "`" + `]+`)
	htmlCommentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)
	rstCommentPattern  = regexp.MustCompile(`^\.\.(\s|$)`)
)

// ExtractURLs returns the distinct image and link URLs in a README, in
// document order.
//
// Markdown is rendered to HTML and queried for img[src] and a[href]; HTML
// comments never yield elements there. Other formats are scanned as text.
// When ignoreCommented is false, URLs inside comments are added as well.
func ExtractURLs(readme models.Readme, ignoreCommented bool) ([]string, error) {
	if !readme.Found || strings.TrimSpace(readme.Content) == "" {
		return nil, nil
	}

	var out urlList
	switch readme.Format {
	case models.ReadmeMarkdown:
		urls, err := markdownURLs(readme.Content)
		if err != nil {
			return nil, err
		}
		out.add(urls...)
		if !ignoreCommented {
			out.add(textURLs(readme.Content)...)
		}
	case models.ReadmeRST:
		content := readme.Content
		if ignoreCommented {
			content = stripRSTComments(content)
		}
		out.add(textURLs(content)...)
	default:
		content := readme.Content
		if ignoreCommented {
			content = htmlCommentPattern.ReplaceAllString(content, "")
		}
		out.add(textURLs(content)...)
	}
	return out.urls, nil
}

func markdownURLs(content string) ([]string, error) {
	var buf bytes.Buffer
	if err := getMarkdown().Convert([]byte(content), &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return nil, fmt.Errorf("parse rendered markdown: %w", err)
	}

	var urls []string
	doc.Find("img[src], a[href]").Each(func(_ int, sel *goquery.Selection) {
		for _, attr := range []string{"src", "href"} {
			if v := getAttr(sel, attr); isHTTPURL(v) {
				urls = append(urls, v)
			}
		}
	})
	return urls, nil
}

func textURLs(content string) []string {
	matches := urlPattern.FindAllString(content, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimRight(m, ".,;:!>"))
	}
	return out
}

// stripRSTComments drops reStructuredText comment blocks: a line starting
// with ".." that is not a directive, target or substitution, together with its
// indented continuation lines.
func stripRSTComments(content string) string {
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	inComment := false
	for _, line := range lines {
		if inComment {
			if strings.TrimSpace(line) == "" || line[0] == ' ' || line[0] == '\t' {
				continue
			}
			inComment = false
		}
		if isRSTComment(line) {
			inComment = true
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isRSTComment(line string) bool {
	if !rstCommentPattern.MatchString(line) {
		return false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, ".."))
	switch {
	case strings.Contains(rest, "::"):
		return false
	case strings.HasPrefix(rest, "_"), strings.HasPrefix(rest, "|"), strings.HasPrefix(rest, "["):
		return false
	}
	return true
}

func getAttr(sel *goquery.Selection, attrName string) string {
	val, exists := sel.Attr(attrName)
	if exists {
		return strings.TrimSpace(val)
	}
	return ""
}

func isHTTPURL(v string) bool {
	lower := strings.ToLower(v)
	return strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://")
}

type urlList struct {
	urls []string
	seen map[string]struct{}
}

func (l *urlList) add(urls ...string) {
	if l.seen == nil {
		l.seen = make(map[string]struct{})
	}
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, dup := l.seen[u]; dup {
			continue
		}
		l.seen[u] = struct{}{}
		l.urls = append(l.urls, u)
	}
}
