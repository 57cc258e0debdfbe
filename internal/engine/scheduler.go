package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fairapi/internal/data"
	"fairapi/internal/fetcher"

	"golang.org/x/sync/errgroup"
)

type Scheduler struct {
	fetcher     *fetcher.Fetcher
	concurrency int
}

func NewScheduler(f *fetcher.Fetcher, concurrency int) (*Scheduler, error) {
	if f == nil {
		return nil, errors.New("fetcher is nil")
	}
	if concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be >= 1, got %d", concurrency)
	}
	return &Scheduler{fetcher: f, concurrency: concurrency}, nil
}

// Execute fetches every planned dependency.
//
// Dependencies of one priority tier are fetched concurrently, at most
// concurrency at a time. A tier starts only after the previous one finished,
// so inputs shared by later dependencies are already in the fetcher cache.
// Per-dependency failures are recorded on RepoExecutionResult.DepErrs; the
// returned error is reserved for invalid input and cancellation.
func (s *Scheduler) Execute(ctx context.Context, plan *AssessmentPlan) (RepoExecutionResult, error) {
	if ctx == nil {
		return RepoExecutionResult{}, errors.New("context is nil")
	}
	if plan == nil {
		return RepoExecutionResult{}, errors.New("assessment plan is nil")
	}
	if s == nil || s.fetcher == nil {
		return RepoExecutionResult{}, errors.New("scheduler fetcher is nil")
	}
	if plan.Repo.Repo == nil {
		return RepoExecutionResult{}, errors.New("assessment plan has no repository")
	}

	var mu sync.Mutex
	dataMap := make(map[data.DependencyKey]any)
	depErrs := make(map[data.DependencyKey]error)

	for _, tier := range plan.Tiers() {
		var g errgroup.Group
		g.SetLimit(s.concurrency)

		for _, key := range tier {
			req := plan.Dependencies[key]
			g.Go(func() error {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				val, err := s.fetcher.Fetch(ctx, plan.Repo.Repo, req.Key, req.Params)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					depErrs[req.Key] = err
					return nil
				}
				dataMap[req.Key] = val
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return RepoExecutionResult{}, err
		}
		if err := ctx.Err(); err != nil {
			return RepoExecutionResult{}, err
		}
	}

	return RepoExecutionResult{
		Data:    data.NewMapDataContext(dataMap),
		DepErrs: depErrs,
	}, nil
}
