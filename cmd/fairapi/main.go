package main

import (
	"fairapi/internal/cli"
	_ "fairapi/internal/fetcher/providers"
	_ "fairapi/internal/rules/checks"
)

// Set at build time via -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetBuildInfo(version, commit, date)
	cli.Execute()
}
