package data

const (
	// DepRepoMetadata represents the repository metadata (visibility, default
	// branch, archived flag). Usually fetched during discovery.
	DepRepoMetadata DependencyKey = "repo.metadata"

	// DepRepoBranch represents an explicitly requested branch. Fetching it
	// validates that the branch exists.
	DepRepoBranch DependencyKey = "repo.branch"

	// DepRepoLicense represents the license GitHub detected for the repository.
	DepRepoLicense DependencyKey = "repo.license"

	// DepRepoReadme represents the README resolved at the assessed ref and path,
	// including its decoded content.
	DepRepoReadme DependencyKey = "repo.readme"

	// DepRepoReadmeBadges represents the badge and link URLs found in the README.
	//
	// Built on top of DepRepoReadme and DepRepoConfigFile, since the config
	// decides whether commented-out badges count.
	DepRepoReadmeBadges DependencyKey = "repo.readme_badges"

	// DepRepoRootFiles represents the file names at the root of the assessed
	// ref and path.
	DepRepoRootFiles DependencyKey = "repo.root_files"

	// DepRepoConfigFile represents the parsed .howfairis.yml, if present.
	DepRepoConfigFile DependencyKey = "repo.config_file"
)

// Priority returns the fetch priority for a dependency key (lower is higher priority).
func Priority(key DependencyKey) int {
	switch key {
	case DepRepoMetadata, DepRepoBranch:
		return 0 // Highest priority (P0)
	case DepRepoConfigFile, DepRepoReadme:
		return 1 // Inputs to other dependencies (P1)
	default:
		return 2 // Everything else (P2)
	}
}
