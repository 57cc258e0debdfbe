package fetcher

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"fairapi/internal/data"
	gh "fairapi/internal/github"

	"github.com/google/go-github/v81/github"
)

// Fetcher resolves dependencies for one assessment. Its cache lives as long as
// the Fetcher, so callers create one per assessment; the client and request
// budget are shared.
type Fetcher struct {
	client *gh.Client
	budget *RequestBudget
	group  Group
	cache  *Cache
}

type fetchChainKey struct{}

func NewFetcher(client *gh.Client, budget *RequestBudget) *Fetcher {
	return &Fetcher{
		client: client,
		budget: budget,
		cache:  NewCache(),
	}
}

func (f *Fetcher) Budget() *RequestBudget {
	return f.budget
}

func (f *Fetcher) Client() *gh.Client {
	return f.client
}

// Call acquires one request from the budget, runs fn and feeds the response
// headers back into the budget.
func (f *Fetcher) Call(ctx context.Context, fn func(ctx context.Context) (*github.Response, error)) error {
	if err := f.budget.Acquire(ctx, 1); err != nil {
		return err
	}
	resp, err := fn(ctx)
	if resp != nil {
		f.budget.UpdateFromResponse(resp.Response)
	}
	return err
}

func (f *Fetcher) Fetch(ctx context.Context, repo *github.Repository, key data.DependencyKey, params map[string]string) (any, error) {
	if ctx == nil {
		return nil, fmt.Errorf("Fetch: nil context")
	}
	if f == nil {
		return nil, fmt.Errorf("Fetch: nil Fetcher")
	}
	if f.client == nil || f.client.Client == nil {
		return nil, fmt.Errorf("Fetch: nil GitHub client (use NewFetcher)")
	}
	if f.budget == nil {
		return nil, fmt.Errorf("Fetch: nil request budget (use NewFetcher)")
	}
	if f.cache == nil {
		return nil, fmt.Errorf("Fetch: nil cache (use NewFetcher)")
	}
	if repo == nil {
		return nil, fmt.Errorf("Fetch: nil repo")
	}
	if key == "" {
		return nil, fmt.Errorf("Fetch: empty dependency key")
	}
	if repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return nil, fmt.Errorf("Fetch: repo owner/name is required")
	}

	fetchImpl, ok := ResolveDataFetcher(key)
	if !ok {
		return nil, fmt.Errorf("unsupported dependency key: %s", key)
	}

	flightKey, err := makeFlightKey(repo, fetchImpl.Scope(), key, params)
	if err != nil {
		return nil, err
	}

	ctx, err = withFetchChain(ctx, flightKey)
	if err != nil {
		return nil, err
	}

	if val, ok := f.cache.Get(flightKey); ok {
		return val, nil
	}

	// Dedupe concurrent identical requests.
	val, err, _ := f.group.Do(flightKey, func() (interface{}, error) {
		return fetchImpl.Fetch(ctx, repo, params, f)
	})

	if err == nil {
		f.cache.Set(flightKey, val)
	}

	return val, err
}

func withFetchChain(ctx context.Context, flightKey string) (context.Context, error) {
	chain := getFetchChain(ctx)
	for _, existing := range chain {
		if existing == flightKey {
			return nil, fmt.Errorf("Fetch: dependency cycle detected: %s -> %s", strings.Join(chain, " -> "), flightKey)
		}
	}

	updated := make([]string, 0, len(chain)+1)
	updated = append(updated, chain...)
	updated = append(updated, flightKey)
	return context.WithValue(ctx, fetchChainKey{}, updated), nil
}

func getFetchChain(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	v := ctx.Value(fetchChainKey{})
	chain, ok := v.([]string)
	if !ok {
		return nil
	}
	return chain
}

func makeFlightKey(repo *github.Repository, scope data.FetchScope, key data.DependencyKey, params map[string]string) (string, error) {
	repoID := repo.GetFullName()
	if repoID == "" {
		owner := repo.GetOwner().GetLogin()
		name := repo.GetName()
		if owner == "" || name == "" {
			return "", fmt.Errorf("Fetch: repo owner/name is required for dependency: %s", key)
		}
		repoID = owner + "/" + name
	}
	prefix := strings.ToLower(repoID)

	switch scope {
	case data.ScopeRepo:
		return prefix + ":" + string(key), nil
	case data.ScopeRevision:
		return prefix + ":" + string(key) + ":" + stableParamsKey(params), nil
	default:
		return "", fmt.Errorf("Fetch: unknown fetch scope %q for dependency: %s", scope, key)
	}
}

func stableParamsKey(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return strings.Join(parts, "&")
}
