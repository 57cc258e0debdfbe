package cli

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// fakeGitHub serves the REST endpoints the providers read for repositories
// on their default branch "main". files maps root file names to content.
type fakeGitHub struct {
	repos    map[string]fakeRepo
	requests atomic.Int32
}

type fakeRepo struct {
	license string
	files   map[string]string
}

func newFakeGitHub(t *testing.T, repos map[string]fakeRepo) (*fakeGitHub, string) {
	t.Helper()
	g := &fakeGitHub{repos: repos}
	server := httptest.NewServer(g)
	t.Cleanup(server.Close)
	return g, server.URL
}

func (g *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.requests.Add(1)
	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/repos/"), "/", 4)
	if !strings.HasPrefix(r.URL.Path, "/repos/") || len(parts) < 2 {
		notFound(w)
		return
	}
	fullName := parts[0] + "/" + parts[1]
	repo, ok := g.repos[fullName]
	if !ok {
		notFound(w)
		return
	}
	if ref := r.URL.Query().Get("ref"); ref != "" && ref != "main" {
		notFound(w)
		return
	}

	switch {
	case len(parts) == 2:
		respond(w, map[string]any{
			"id":             7,
			"name":           parts[1],
			"full_name":      fullName,
			"owner":          map[string]any{"login": parts[0]},
			"private":        false,
			"visibility":     "public",
			"default_branch": "main",
		})
	case parts[2] == "branches" && len(parts) == 4 && parts[3] == "main":
		respond(w, map[string]any{"name": "main"})
	case parts[2] == "license" && repo.license != "":
		respond(w, map[string]any{
			"name":    "LICENSE",
			"path":    "LICENSE",
			"license": map[string]any{"spdx_id": repo.license, "name": repo.license},
		})
	case parts[2] == "readme":
		for name, content := range repo.files {
			if strings.HasPrefix(strings.ToLower(name), "readme") {
				respond(w, file(name, content))
				return
			}
		}
		notFound(w)
	case parts[2] == "contents" && (len(parts) == 3 || parts[3] == ""):
		entries := make([]map[string]any, 0, len(repo.files))
		for name := range repo.files {
			entries = append(entries, map[string]any{"type": "file", "name": name, "path": name})
		}
		respond(w, entries)
	case parts[2] == "contents":
		if content, ok := repo.files[parts[3]]; ok {
			respond(w, file(parts[3], content))
			return
		}
		notFound(w)
	default:
		notFound(w)
	}
}

func file(name, content string) map[string]any {
	return map[string]any{
		"type":     "file",
		"name":     name,
		"path":     name,
		"encoding": "base64",
		"content":  base64.StdEncoding.EncodeToString([]byte(content)),
	}
}

func respond(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, `{"message":"Not Found"}`)
}
