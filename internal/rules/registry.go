package rules

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"fairapi/internal/assess"
)

var (
	registry = make(map[string]Rule)
	mu       sync.RWMutex
)

// Register adds a rule to the registry, wrapped so that a skip reason from the
// repository config turns a failure into a pass.
func Register(r Rule) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[r.ID()]; exists {
		panic(fmt.Sprintf("rule %s already registered", r.ID()))
	}
	registry[r.ID()] = &SkipReasonWrapper{Rule: r}
}

// List returns all rules in canonical criterion order; unknown IDs sort last
// alphabetically.
func List() []Rule {
	mu.RLock()
	defer mu.RUnlock()
	return listLocked()
}

func listLocked() []Rule {
	ids := make(map[string]bool, len(registry))
	for id := range registry {
		ids[id] = true
	}
	ordered := assess.OrderedCriteria(ids)

	out := make([]Rule, 0, len(ordered))
	for _, id := range ordered {
		out = append(out, registry[id])
	}
	return out
}

// Get returns the rule registered under id.
func Get(id string) (Rule, bool) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := registry[strings.TrimSpace(id)]
	return r, ok
}

// Resolve selects rules from a comma-separated list of IDs. An empty selector
// selects every rule.
func Resolve(selector string) ([]Rule, error) {
	mu.RLock()
	defer mu.RUnlock()

	if strings.TrimSpace(selector) == "" {
		return listLocked(), nil
	}

	seen := make(map[string]bool)
	var selected []Rule
	var unknown []string
	for _, id := range strings.Split(selector, ",") {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if r, ok := registry[id]; ok {
			selected = append(selected, r)
		} else {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("rule not found: %s", strings.Join(unknown, ", "))
	}
	return selected, nil
}
