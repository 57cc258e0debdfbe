package assess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"
)

// Scorer evaluates one repository reference. Implementations report
// unscorable references with *ScoringError and unreachable collaborators with
// *UnavailableError; any other error is treated as an internal fault.
type Scorer interface {
	Score(ctx context.Context, ref Reference) (Result, error)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(ctx context.Context, ref Reference) (Result, error)

func (f ScorerFunc) Score(ctx context.Context, ref Reference) (Result, error) {
	return f(ctx, ref)
}

var errNoCriteria = errors.New("scorer returned no criteria")

// Service is the single entry point for assessments. It validates the
// reference, delegates to the Scorer and converts panics into internal errors.
// It keeps no state between calls.
type Service struct {
	scorer  Scorer
	logger  *slog.Logger
	timeout time.Duration
}

type Option func(*Service)

// WithTimeout bounds each Score call. Zero means no service-level bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// WithLogger sets the logger used for scorer panics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(scorer Scorer, opts ...Option) (*Service, error) {
	if scorer == nil {
		return nil, errors.New("assess: scorer is nil")
	}
	s := &Service{scorer: scorer, logger: slog.Default()}
	for _, apply := range opts {
		if apply != nil {
			apply(s)
		}
	}
	return s, nil
}

// Assess parses raw (and an optional branch) and scores it. Input errors
// short-circuit before the scorer is called.
func (s *Service) Assess(ctx context.Context, raw, branch string) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("assess: ctx is nil")
	}
	ref, err := ParseReference(raw, branch)
	if err != nil {
		return Result{}, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.score(ctx, ref)
	if err != nil {
		return Result{}, err
	}
	if res.Criteria == nil {
		return Result{}, errNoCriteria
	}
	if res.URL == "" {
		res.URL = ref.URL()
	}
	if res.Branch == "" {
		res.Branch = ref.Branch
	}
	return res, nil
}

func (s *Service) score(ctx context.Context, ref Reference) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scorer panicked", "repo", ref.FullName(), "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			res = Result{}
			err = fmt.Errorf("scorer panic: %v", r)
		}
	}()
	return s.scorer.Score(ctx, ref)
}
