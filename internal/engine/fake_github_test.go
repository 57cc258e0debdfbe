package engine

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	gh "fairapi/internal/github"
)

// fakeRepo describes one repository served by fakeGitHub.
type fakeRepo struct {
	private       bool
	defaultBranch string
	branches      []string
	license       string // SPDX id, "" = no license
	// files maps a directory ("" = root) to file name -> content.
	files map[string]map[string]string
}

// fakeGitHub is a minimal REST API serving the endpoints the providers use.
type fakeGitHub struct {
	repos    map[string]*fakeRepo // "owner/name"
	requests atomic.Int32
	// override, when set, answers every request instead of the fake.
	override http.HandlerFunc
}

func newFakeGitHub() *fakeGitHub {
	return &fakeGitHub{repos: make(map[string]*fakeRepo)}
}

func (g *fakeGitHub) add(fullName string, repo *fakeRepo) *fakeRepo {
	if repo.defaultBranch == "" {
		repo.defaultBranch = "main"
	}
	if repo.files == nil {
		repo.files = map[string]map[string]string{}
	}
	g.repos[fullName] = repo
	return repo
}

func (g *fakeGitHub) client(t *testing.T) *gh.Client {
	t.Helper()
	server := httptest.NewServer(g)
	t.Cleanup(server.Close)

	client, err := gh.NewClient(context.Background(), "", gh.WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func (g *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.requests.Add(1)
	if g.override != nil {
		g.override(w, r)
		return
	}

	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/repos/"), "/", 4)
	if !strings.HasPrefix(r.URL.Path, "/repos/") || len(parts) < 2 {
		writeNotFound(w)
		return
	}
	fullName := parts[0] + "/" + parts[1]
	repo, ok := g.repos[fullName]
	if !ok {
		writeNotFound(w)
		return
	}
	ref := r.URL.Query().Get("ref")
	if ref == "" {
		ref = repo.defaultBranch
	}
	if !repo.hasBranch(ref) {
		writeNotFound(w)
		return
	}

	switch {
	case len(parts) == 2:
		visibility := "public"
		if repo.private {
			visibility = "private"
		}
		writeJSON(w, map[string]any{
			"id":             1,
			"name":           parts[1],
			"full_name":      fullName,
			"owner":          map[string]any{"login": parts[0]},
			"private":        repo.private,
			"visibility":     visibility,
			"default_branch": repo.defaultBranch,
		})
	case parts[2] == "branches" && len(parts) == 4:
		if !repo.hasBranch(parts[3]) {
			writeNotFound(w)
			return
		}
		writeJSON(w, map[string]any{"name": parts[3]})
	case parts[2] == "license":
		if repo.license == "" {
			writeNotFound(w)
			return
		}
		writeJSON(w, map[string]any{
			"name":    "LICENSE",
			"path":    "LICENSE",
			"license": map[string]any{"spdx_id": repo.license, "name": repo.license},
		})
	case parts[2] == "readme":
		for name, content := range repo.files[""] {
			if strings.HasPrefix(strings.ToLower(name), "readme") {
				writeJSON(w, fileEntry(name, content))
				return
			}
		}
		writeNotFound(w)
	case parts[2] == "contents":
		p := ""
		if len(parts) == 4 {
			p = strings.Trim(parts[3], "/")
		}
		repo.serveContents(w, p)
	default:
		writeNotFound(w)
	}
}

func (r *fakeRepo) hasBranch(name string) bool {
	if name == r.defaultBranch {
		return true
	}
	for _, b := range r.branches {
		if b == name {
			return true
		}
	}
	return false
}

func (r *fakeRepo) serveContents(w http.ResponseWriter, p string) {
	if dir, ok := r.files[p]; ok {
		entries := make([]map[string]any, 0, len(dir))
		for name := range dir {
			entries = append(entries, map[string]any{"type": "file", "name": name, "path": joinTestPath(p, name)})
		}
		writeJSON(w, entries)
		return
	}
	dir, name := "", p
	if i := strings.LastIndex(p, "/"); i >= 0 {
		dir, name = p[:i], p[i+1:]
	}
	if content, ok := r.files[dir][name]; ok {
		writeJSON(w, fileEntry(joinTestPath(dir, name), content))
		return
	}
	writeNotFound(w)
}

func fileEntry(path, content string) map[string]any {
	return map[string]any{
		"type":     "file",
		"name":     path[strings.LastIndex(path, "/")+1:],
		"path":     path,
		"encoding": "base64",
		"content":  base64.StdEncoding.EncodeToString([]byte(content)),
	}
}

func joinTestPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, `{"message":"Not Found"}`)
}
