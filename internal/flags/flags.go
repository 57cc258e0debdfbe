package flags

// Package flags defines canonical CLI flag names shared across the CLI and the
// viper key bindings. Keeping these as constants avoids drift between Cobra
// flag wiring and the config keys they override.
// IMPORTANT: These are flag *names* without leading dashes.
// Example usage:
//
//	cmd.Flags().Int(flags.FlagPort, 80, "...")
//	_ = v.BindPFlag("server.port", cmd.Flags().Lookup(flags.FlagPort))
const (
	// Global
	FlagConfig    = "config"
	FlagVerbose   = "verbose"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"

	// GitHub
	FlagGitHubToken   = "github-token"
	FlagGitHubBaseURL = "github-base-url"

	// Serve
	FlagHost = "host"
	FlagPort = "port"

	// Scorer
	FlagTimeout     = "timeout"
	FlagConcurrency = "concurrency"

	// Assess
	FlagBranch     = "branch"
	FlagFormat     = "format"
	FlagCriteria   = "criteria"
	FlagOut        = "out"
	FlagOutFormat  = "out-format"
	FlagReport     = "report"
	FlagFailedOnly = "failed-only"

	// Criteria
	FlagQuiet = "quiet"
)
