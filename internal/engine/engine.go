package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"fairapi/internal/assess"
	"fairapi/internal/data"
	"fairapi/internal/fetcher"
	gh "fairapi/internal/github"
	"fairapi/internal/rules"
)

const defaultConcurrency = 4

// Engine is the FAIR scorer: it resolves the repository, fetches the data the
// selected rules declare and evaluates them. It implements assess.Scorer.
//
// An Engine is safe for concurrent use. Every Score call gets its own fetcher
// (and therefore its own cache); only the GitHub client and request budget are
// shared.
type Engine struct {
	client      *gh.Client
	budget      *fetcher.RequestBudget
	concurrency int
	selector    string
	rules       []rules.Rule
	hosts       map[string]bool
	logger      *slog.Logger
}

var _ assess.Scorer = (*Engine)(nil)

type Option func(*Engine)

// WithBudget shares a request budget across engines. By default each engine
// gets its own.
func WithBudget(b *fetcher.RequestBudget) Option {
	return func(e *Engine) {
		if b != nil {
			e.budget = b
		}
	}
}

// WithConcurrency bounds parallel GitHub requests within one assessment.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// WithCriteria selects rules by comma-separated ID; empty selects all.
func WithCriteria(selector string) Option {
	return func(e *Engine) {
		e.selector = selector
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func NewEngine(client *gh.Client, opts ...Option) (*Engine, error) {
	if client == nil || client.Client == nil {
		return nil, errors.New("engine: github client is nil")
	}
	e := &Engine{
		client:      client,
		concurrency: defaultConcurrency,
		logger:      slog.Default(),
		hosts:       map[string]bool{"github.com": true},
	}
	for _, apply := range opts {
		if apply != nil {
			apply(e)
		}
	}
	if e.concurrency <= 0 {
		return nil, fmt.Errorf("engine: concurrency must be >= 1, got %d", e.concurrency)
	}
	if e.budget == nil {
		e.budget = fetcher.NewRequestBudget()
	}

	selected, err := rules.Resolve(e.selector)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if len(selected) == 0 {
		return nil, errors.New("engine: no rules registered")
	}
	e.rules = selected

	// A GitHub Enterprise API base URL makes its web host assessable too.
	if base := client.Client.BaseURL; base != nil && base.Hostname() != "" && base.Hostname() != "api.github.com" {
		e.hosts[strings.ToLower(base.Hostname())] = true
	}
	return e, nil
}

// Rules returns the rules this engine evaluates, in criterion order.
func (e *Engine) Rules() []rules.Rule {
	out := make([]rules.Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Score assesses one repository reference. Unsupported platforms, missing
// repositories, branches or paths are reported as *assess.ScoringError,
// GitHub outages and rate limits as *assess.UnavailableError.
func (e *Engine) Score(ctx context.Context, ref assess.Reference) (assess.Result, error) {
	if ctx == nil {
		return assess.Result{}, errors.New("engine: ctx is nil")
	}
	if ref.Platform != assess.PlatformGitHub && !e.hosts[strings.ToLower(ref.Host)] {
		return assess.Result{}, &assess.ScoringError{Message: fmt.Sprintf("unsupported platform %q: only GitHub repositories can be assessed", ref.Host)}
	}

	start := time.Now()
	f := fetcher.NewFetcher(e.client, e.budget)

	repo, branch, err := ResolveRepository(ctx, f, ref)
	if err != nil {
		return assess.Result{}, err
	}

	params := map[string]string{data.ParamRef: branch}
	if ref.Path != "" {
		params[data.ParamPath] = ref.Path
	}
	plan, err := NewAssessmentPlan(ctx, repo, params, e.rules)
	if err != nil {
		return assess.Result{}, err
	}

	scheduler, err := NewScheduler(f, e.concurrency)
	if err != nil {
		return assess.Result{}, err
	}
	res, err := scheduler.Execute(ctx, plan)
	if err != nil {
		if unavailable := unavailableError(err); unavailable != nil {
			return assess.Result{}, unavailable
		}
		return assess.Result{}, err
	}
	if err := firstDependencyError(plan, ref, res.DepErrs); err != nil {
		return assess.Result{}, err
	}

	results, err := evaluateRules(ctx, plan, res)
	if err != nil {
		return assess.Result{}, err
	}

	assessed := ref
	assessed.Owner, assessed.Name, assessed.Branch = repo.Owner, repo.Name, branch
	out := assess.Result{
		URL:      assessed.URL(),
		Branch:   branch,
		Criteria: make(map[string]bool, len(results)),
		Details:  make(map[string]string, len(results)),
	}
	for _, r := range results {
		out.Criteria[r.RuleID] = r.Passed()
		if r.Message != "" {
			out.Details[r.RuleID] = r.Message
		}
	}

	e.logger.Debug("assessment finished",
		"repo", repo.FullName(),
		"branch", branch,
		"path", ref.Path,
		"criteria", len(out.Criteria),
		"duration", time.Since(start).Truncate(time.Millisecond),
		"rate_remaining", e.budget.Remaining(),
	)
	return out, nil
}

// firstDependencyError fails the assessment when any planned dependency could
// not be fetched. Errors the caller can act on (scoring, unavailable) win over
// internal ones; ties go to the highest priority dependency.
func firstDependencyError(plan *AssessmentPlan, ref assess.Reference, depErrs map[data.DependencyKey]error) error {
	if len(depErrs) == 0 {
		return nil
	}
	var internal error
	for _, key := range plan.SortedDependencies() {
		depErr, ok := depErrs[key]
		if !ok || depErr == nil {
			continue
		}
		classified := classifyDependencyError(key, ref, depErr)
		if assess.Classify(classified).Kind != assess.KindInternal {
			return classified
		}
		if internal == nil {
			internal = classified
		}
	}
	return internal
}

// evaluateRules runs every planned rule over the fetched data. A rule that
// errors, or reads a dependency it did not declare, fails the assessment.
func evaluateRules(ctx context.Context, plan *AssessmentPlan, res RepoExecutionResult) ([]rules.Result, error) {
	dc := res.Data
	if dc == nil {
		dc = data.NewMapDataContext(map[data.DependencyKey]any{})
	}
	repo := plan.Repo.Repo

	out := make([]rules.Result, 0, len(plan.Rules))
	for _, rule := range plan.Rules {
		deps, err := rule.Dependencies(ctx, repo)
		if err != nil {
			return nil, fmt.Errorf("rule %s: failed to determine dependencies: %w", rule.ID(), err)
		}
		if missing := missingDependencies(dc, deps); len(missing) > 0 {
			return nil, fmt.Errorf("rule %s: missing dependencies: %s", rule.ID(), strings.Join(missing, ", "))
		}

		// Enforce the rules contract: a rule must not read dependency keys it did
		// not declare in Dependencies(). This prevents rules from implicitly relying
		// on other rules' dependencies.
		tracked := data.NewTrackingDataContext(dc)
		ruleRes, err := rule.Evaluate(ctx, repo, tracked)
		if undeclared := undeclaredDependencyAccesses(tracked.AccessedKeys(), deps); len(undeclared) > 0 {
			return nil, fmt.Errorf("rule %s accessed undeclared dependencies: %s", rule.ID(), strings.Join(undeclared, ", "))
		}
		if err != nil {
			return nil, fmt.Errorf("rule %s: evaluation failed: %w", rule.ID(), err)
		}

		// Backfill identifiers so results stay consistent and well-formed.
		if ruleRes.Repo == "" {
			ruleRes.Repo = plan.Repo.FullName()
		}
		if ruleRes.RuleID == "" {
			ruleRes.RuleID = rule.ID()
		}
		if ruleRes.Status == rules.StatusError {
			return nil, fmt.Errorf("rule %s: %s", rule.ID(), ruleRes.Message)
		}
		out = append(out, ruleRes)
	}
	return out, nil
}

func missingDependencies(dc data.DataContext, deps []data.DependencyKey) []string {
	var missing []string
	for _, d := range deps {
		if _, ok := dc.Get(d); !ok {
			missing = append(missing, string(d))
		}
	}
	return missing
}

func undeclaredDependencyAccesses(accessed []data.DependencyKey, declared []data.DependencyKey) []string {
	if len(accessed) == 0 {
		return nil
	}
	decl := make(map[data.DependencyKey]struct{}, len(declared))
	for _, d := range declared {
		decl[d] = struct{}{}
	}

	var out []string
	for _, k := range accessed {
		if _, ok := decl[k]; ok {
			continue
		}
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}
