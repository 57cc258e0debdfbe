package engine

import (
	"context"
	"fmt"
	"sort"

	"fairapi/internal/data"
	"fairapi/internal/rules"
)

// AssessmentPlan is the set of dependencies the selected rules need for one
// repository at one revision.
type AssessmentPlan struct {
	Repo RepositoryRef
	// Params are passed to every dependency fetch (ref and path).
	Params       map[string]string
	Dependencies map[data.DependencyKey]data.DependencyRequest
	Rules        []rules.Rule
}

func NewAssessmentPlan(ctx context.Context, repo RepositoryRef, params map[string]string, selectedRules []rules.Rule) (*AssessmentPlan, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}
	if repo.Repo == nil {
		return nil, fmt.Errorf("repo object is nil for %s/%s", repo.Owner, repo.Name)
	}

	p := &AssessmentPlan{
		Repo:         repo,
		Params:       params,
		Dependencies: make(map[data.DependencyKey]data.DependencyRequest),
		Rules:        selectedRules,
	}

	for _, r := range selectedRules {
		deps, err := r.Dependencies(ctx, repo.Repo)
		if err != nil {
			return nil, fmt.Errorf("failed to get dependencies for rule %s: %w", r.ID(), err)
		}
		for _, d := range deps {
			if _, exists := p.Dependencies[d]; !exists {
				p.Dependencies[d] = data.DependencyRequest{Key: d, Params: params}
			}
		}
	}

	return p, nil
}

// SortedDependencies returns the list of dependency keys sorted by priority (P0 first).
func (p *AssessmentPlan) SortedDependencies() []data.DependencyKey {
	keys := make([]data.DependencyKey, 0, len(p.Dependencies))
	for k := range p.Dependencies {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		p1 := data.Priority(keys[i])
		p2 := data.Priority(keys[j])
		if p1 != p2 {
			return p1 < p2
		}
		return keys[i] < keys[j] // Stable sort for same priority
	})

	return keys
}

// Tiers groups SortedDependencies by priority.
func (p *AssessmentPlan) Tiers() [][]data.DependencyKey {
	var tiers [][]data.DependencyKey
	last := -1
	for _, k := range p.SortedDependencies() {
		prio := data.Priority(k)
		if len(tiers) == 0 || prio != last {
			tiers = append(tiers, nil)
			last = prio
		}
		tiers[len(tiers)-1] = append(tiers[len(tiers)-1], k)
	}
	return tiers
}
