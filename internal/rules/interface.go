package rules

import (
	"context"

	"fairapi/internal/data"

	"github.com/google/go-github/v81/github"
)

// Rule evaluates one FAIR criterion. The rule ID is the criterion name used
// in assessment results.
type Rule interface {
	ID() string
	Title() string
	Description() string

	// Dependencies declares required repository data for this repo.
	Dependencies(ctx context.Context, repo *github.Repository) ([]data.DependencyKey, error)

	// Evaluate runs rule logic using only DataContext.
	// Rules MUST NOT call GitHub APIs.
	Evaluate(ctx context.Context, repo *github.Repository, data data.DataContext) (Result, error)
}
