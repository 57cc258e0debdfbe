package engine

import "fairapi/internal/data"

// RepoExecutionResult represents the outcome of executing (fetching) all planned
// dependencies for the assessed repository.
//
// It is produced by the scheduler and consumed by the engine when evaluating
// rules.
type RepoExecutionResult struct {
	Data    data.DataContext
	DepErrs map[data.DependencyKey]error
}
