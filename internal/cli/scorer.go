package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"fairapi/internal/assess"
	"fairapi/internal/config"
	"fairapi/internal/engine"
	gh "fairapi/internal/github"
	"fairapi/internal/logging"
)

// newLogger builds the process logger from cfg. Diagnostics go to w (stderr)
// so stdout stays clean for results.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	return logging.New(w, cfg.Log.Level, cfg.Log.Format)
}

// newService wires the GitHub client, the FAIR engine and the assessment
// service. The token is optional: without one the GitHub API is used
// anonymously at a lower rate limit.
func newService(ctx context.Context, cfg *config.Config, logger *slog.Logger, criteria string) (*assess.Service, *engine.Engine, error) {
	token, source, err := gh.ResolveAuthToken(ctx, cfg.GitHub.Token, cfg.GitHub.BaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve GitHub auth token: %w", err)
	}
	if token == "" {
		logger.Warn("no GitHub token found, using unauthenticated access (60 requests/hour)")
	} else {
		logger.Debug("using GitHub token", "source", string(source))
	}

	client, err := gh.NewClient(ctx, token,
		gh.WithVerbose(cfg.Verbose, logger),
		gh.WithBaseURL(cfg.GitHub.BaseURL),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	eng, err := engine.NewEngine(client,
		engine.WithConcurrency(cfg.Scorer.Concurrency),
		engine.WithCriteria(criteria),
		engine.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}

	svc, err := assess.NewService(eng,
		assess.WithTimeout(cfg.Scorer.Timeout),
		assess.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}
	return svc, eng, nil
}
