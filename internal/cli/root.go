package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"fairapi/internal/config"
	"fairapi/internal/flags"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// Process exit codes.
const (
	ExitCompliant       = 0
	ExitNotCompliant    = 1
	ExitAssessmentError = 2
	ExitFatal           = 3
)

// defaultConfigName is looked up in the working directory when --config is
// not given.
const defaultConfigName = "fairapi"

// ExitError carries a process exit code out of a command. The command has
// already reported the outcome; Execute only exits.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

var rootCmd = &cobra.Command{
	Use:   "fairapi",
	Short: "Assess repositories against the FAIR software recommendations",
	Long: `fairapi assesses source repositories against the five FAIR software
recommendations (repository, license, registry, citation, checklist).

It runs as an HTTP service ("fairapi serve") or assesses repositories
directly from the command line ("fairapi assess").

Examples:
	# Start the HTTP API on port 8080
	fairapi serve --port 8080

	# Assess a repository
	fairapi assess https://github.com/fair-software/howfairis

	# List criteria
	fairapi criteria list

	# Print build info
	fairapi version

Configuration:
	Settings are read from fairapi.yaml in the working directory (or --config),
	then FAIRAPI_* environment variables (FAIRAPI_SERVER_PORT, FAIRAPI_GITHUB_TOKEN,
	...), then command-line flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// viperKeys maps config keys to the flags that override them.
var viperKeys = map[string]string{
	"verbose":            flags.FlagVerbose,
	"log.level":          flags.FlagLogLevel,
	"log.format":         flags.FlagLogFormat,
	"github.token":       flags.FlagGitHubToken,
	"github.base_url":    flags.FlagGitHubBaseURL,
	"scorer.timeout":     flags.FlagTimeout,
	"scorer.concurrency": flags.FlagConcurrency,
	"server.host":        flags.FlagHost,
	"server.port":        flags.FlagPort,
}

func init() {
	d := config.New()
	pf := rootCmd.PersistentFlags()
	pf.String(flags.FlagConfig, "", "Config file (default ./fairapi.yaml)")
	pf.Bool(flags.FlagVerbose, false, "Enable verbose logging (logs every GitHub API call)")
	pf.String(flags.FlagLogLevel, d.Log.Level, "Log level: debug|info|warn|error")
	pf.String(flags.FlagLogFormat, d.Log.Format, "Log format: text|json")
	pf.String(flags.FlagGitHubToken, "", "GitHub access token (default: GITHUB_TOKEN, GH_TOKEN or gh auth token)")
	pf.String(flags.FlagGitHubBaseURL, "", "GitHub API base URL (GitHub Enterprise)")
	pf.Duration(flags.FlagTimeout, d.Scorer.Timeout, "Timeout for a single assessment")
	pf.Int(flags.FlagConcurrency, d.Scorer.Concurrency, "Concurrent GitHub requests per assessment")
}

// loadConfig resolves the effective configuration for cmd: defaults, config
// file, FAIRAPI_* environment and flags, in increasing precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	config.SetDefaults(v)

	path, _ := cmd.Flags().GetString(flags.FlagConfig)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, name := range viperKeys {
		if f := lookupFlag(cmd, name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}
	return config.Load(v)
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.InheritedFlags().Lookup(name)
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	os.Exit(exitCode(rootCmd.Execute(), os.Stderr))
}

// exitCode maps a command error to a process exit code. Errors other than
// *ExitError are fatal and printed to stderr.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return ExitCompliant
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitFatal
}
