package models

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the repository config file name read from the assessed path.
const DefaultConfigFile = ".howfairis.yml"

// RepoConfig is the optional per-repository assessment config.
type RepoConfig struct {
	// Found is false when the repository carries no config file.
	Found bool   `yaml:"-"`
	Path  string `yaml:"-"`

	SkipRepositoryChecksReason string `yaml:"skip_repository_checks_reason"`
	SkipLicenseChecksReason    string `yaml:"skip_license_checks_reason"`
	SkipRegistryChecksReason   string `yaml:"skip_registry_checks_reason"`
	SkipCitationChecksReason   string `yaml:"skip_citation_checks_reason"`
	SkipChecklistChecksReason  string `yaml:"skip_checklist_checks_reason"`

	// IgnoreCommentedBadges is nil when unset; see ShouldIgnoreCommentedBadges.
	IgnoreCommentedBadges *bool `yaml:"ignore_commented_badges"`
}

// ConfigError reports a repository config file that could not be decoded.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ParseRepoConfig decodes a config file. Unknown keys are rejected so typos in
// skip reasons do not silently pass.
func ParseRepoConfig(path string, content []byte) (RepoConfig, error) {
	cfg := RepoConfig{Found: true, Path: path}
	if strings.TrimSpace(string(content)) == "" {
		return cfg, nil
	}
	dec := yaml.NewDecoder(strings.NewReader(string(content)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return RepoConfig{}, &ConfigError{Path: path, Err: err}
	}
	cfg.Found = true
	cfg.Path = path
	return cfg, nil
}

// SkipReason returns the trimmed skip reason configured for a criterion id.
func (c RepoConfig) SkipReason(criterion string) string {
	var reason string
	switch criterion {
	case "repository":
		reason = c.SkipRepositoryChecksReason
	case "license":
		reason = c.SkipLicenseChecksReason
	case "registry":
		reason = c.SkipRegistryChecksReason
	case "citation":
		reason = c.SkipCitationChecksReason
	case "checklist":
		reason = c.SkipChecklistChecksReason
	}
	return strings.TrimSpace(reason)
}

// ShouldIgnoreCommentedBadges defaults to true.
func (c RepoConfig) ShouldIgnoreCommentedBadges() bool {
	if c.IgnoreCommentedBadges == nil {
		return true
	}
	return *c.IgnoreCommentedBadges
}
