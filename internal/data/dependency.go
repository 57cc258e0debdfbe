package data

// DependencyKey uniquely identifies a repository data dependency.
type DependencyKey string

// FetchScope controls how a dependency is keyed for caching and deduplication.
type FetchScope string

const (
	// ScopeRepo dependencies are branch independent: one value per repository.
	// Request params do not take part in the cache key.
	ScopeRepo FetchScope = "repo"

	// ScopeRevision dependencies are read from a specific ref and subdirectory,
	// so the "ref" and "path" params are part of the cache key.
	ScopeRevision FetchScope = "revision"
)

// Well-known request params.
const (
	// ParamRef is the branch, tag or commit to read from. Empty means the
	// repository's default branch.
	ParamRef = "ref"
	// ParamPath is the repository subdirectory the assessment is rooted at.
	ParamPath = "path"
)

// DependencyRequest represents a request for a specific dependency with optional parameters.
type DependencyRequest struct {
	Key    DependencyKey
	Params map[string]string
}
